package repository

import (
	"context"
	"errors"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/pkg/apperror"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	// GetOrCreateHashtag resolves a hashtag name to its row, creating it
	// on first use. Safe under concurrent first use: the unique index on
	// name plus an insert-conflict reread make it a single atomic
	// get-or-create from the caller's point of view.
	GetOrCreateHashtag(ctx context.Context, name string) (*entity.Hashtag, error)
	FindHashtagByName(ctx context.Context, name string) (*entity.Hashtag, error)
	HashtagsByPostID(ctx context.Context, postID uint) ([]entity.Hashtag, error)

	FindTypeByID(ctx context.Context, id uint) (*entity.VehicleType, error)
	FindTypeByName(ctx context.Context, name string) (*entity.VehicleType, error)
	FindModelByID(ctx context.Context, id uint) (*entity.VehicleModel, error)
	FindModelByName(ctx context.Context, name string) (*entity.VehicleModel, error)
	AllTypesWithModels(ctx context.Context) ([]entity.VehicleType, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) GetOrCreateHashtag(ctx context.Context, name string) (*entity.Hashtag, error) {
	tag := &entity.Hashtag{Name: name}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(tag).Error
	if err != nil {
		return nil, err
	}

	// DoNothing leaves the ID zero when another writer got there first.
	if tag.ID == 0 {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(tag).Error; err != nil {
			return nil, err
		}
	}

	return tag, nil
}

func (r *tagRepository) FindHashtagByName(ctx context.Context, name string) (*entity.Hashtag, error) {
	var tag entity.Hashtag
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &tag, nil
}

func (r *tagRepository) HashtagsByPostID(ctx context.Context, postID uint) ([]entity.Hashtag, error) {
	var tags []entity.Hashtag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_hashtags ON post_hashtags.hashtag_id = hashtags.id").
		Where("post_hashtags.post_id = ?", postID).
		Order("hashtags.name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepository) FindTypeByID(ctx context.Context, id uint) (*entity.VehicleType, error) {
	var vType entity.VehicleType
	if err := r.db.WithContext(ctx).First(&vType, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &vType, nil
}

func (r *tagRepository) FindTypeByName(ctx context.Context, name string) (*entity.VehicleType, error) {
	var vType entity.VehicleType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&vType).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &vType, nil
}

func (r *tagRepository) FindModelByID(ctx context.Context, id uint) (*entity.VehicleModel, error) {
	var model entity.VehicleModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &model, nil
}

func (r *tagRepository) FindModelByName(ctx context.Context, name string) (*entity.VehicleModel, error) {
	var model entity.VehicleModel
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &model, nil
}

func (r *tagRepository) AllTypesWithModels(ctx context.Context) ([]entity.VehicleType, error) {
	var types []entity.VehicleType
	err := r.db.WithContext(ctx).
		Preload("Models").
		Order("name ASC").
		Find(&types).Error
	return types, err
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
