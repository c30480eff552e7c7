package repository

import (
	"context"
	"errors"
	"time"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/pkg/apperror"
	"gorm.io/gorm"
)

// UploadFunc performs the external image upload once the post id is
// known and returns the stored URL. It runs inside the surrounding
// transaction window so a failed upload rolls the post row back.
type UploadFunc func(postID uint) (string, error)

type PostRepository interface {
	CreateWithImage(ctx context.Context, post *entity.Post, tags []entity.Hashtag, upload UploadFunc) error
	UpdateWithImage(ctx context.Context, post *entity.Post, tags []entity.Hashtag, upload UploadFunc) error
	DeleteCascade(ctx context.Context, post *entity.Post) error
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// Per-dimension search lookups. Each returns post ids matching a
	// single criterion, most recent post first.
	SearchIDsByHashtag(ctx context.Context, name string) ([]uint, error)
	SearchIDsByType(ctx context.Context, name string) ([]uint, error)
	SearchIDsByModel(ctx context.Context, name string) ([]uint, error)

	// PopularIDsSince ranks posts created after since by like count,
	// ties broken by newest post id first.
	PopularIDsSince(ctx context.Context, since time.Time, limit, offset int) ([]uint, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) CreateWithImage(ctx context.Context, post *entity.Post, tags []entity.Hashtag, upload UploadFunc) error {
	post.Hashtags = tags
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}

		// The upload key embeds the post id, so the row has to exist
		// first. Running it inside the transaction means a failed
		// upload leaves no orphaned post behind.
		url, err := upload(post.ID)
		if err != nil {
			return err
		}

		return tx.Create(&entity.Image{PostID: post.ID, URL: url}).Error
	})
}

func (r *postRepository) UpdateWithImage(ctx context.Context, post *entity.Post, tags []entity.Hashtag, upload UploadFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Updates(map[string]interface{}{
			"content":  post.Content,
			"type_id":  post.TypeID,
			"model_id": post.ModelID,
		}).Error; err != nil {
			return err
		}

		// Reconcile the hashtag set: stale associations out, new ones in.
		if err := tx.Model(post).Association("Hashtags").Replace(&tags); err != nil {
			return err
		}

		url, err := upload(post.ID)
		if err != nil {
			return err
		}

		return tx.Model(&entity.Image{}).
			Where("post_id = ?", post.ID).
			Update("url", url).Error
	})
}

func (r *postRepository) DeleteCascade(ctx context.Context, post *entity.Post) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Association("Hashtags").Clear(); err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&entity.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&entity.Image{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Post{}, post.ID).Error
	})
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	var post entity.Post
	if err := r.db.WithContext(ctx).
		Preload("Image").
		Preload("User").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SearchIDsByHashtag(ctx context.Context, name string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Joins("JOIN hashtags ON hashtags.id = post_hashtags.hashtag_id").
		Where("hashtags.name = ?", name).
		Order("posts.created_at DESC").
		Pluck("posts.id", &ids).Error
	return ids, err
}

func (r *postRepository) SearchIDsByType(ctx context.Context, name string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Joins("JOIN vehicle_types ON vehicle_types.id = posts.type_id").
		Where("vehicle_types.name = ?", name).
		Order("posts.created_at DESC").
		Pluck("posts.id", &ids).Error
	return ids, err
}

func (r *postRepository) SearchIDsByModel(ctx context.Context, name string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Joins("JOIN vehicle_models ON vehicle_models.id = posts.model_id").
		Where("vehicle_models.name = ?", name).
		Order("posts.created_at DESC").
		Pluck("posts.id", &ids).Error
	return ids, err
}

func (r *postRepository) PopularIDsSince(ctx context.Context, since time.Time, limit, offset int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&entity.Post{}).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("posts.created_at > ?", since).
		Group("posts.id").
		Order("COUNT(likes.user_id) DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Pluck("posts.id", &ids).Error
	return ids, err
}
