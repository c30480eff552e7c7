package repository

import (
	"context"
	"errors"
	"time"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/pkg/apperror"
	"gorm.io/gorm"
)

type ImageRepository interface {
	// GetByPostID resolves the single image of a post. Absence is a
	// violated invariant and surfaces as ErrNotFound.
	GetByPostID(ctx context.Context, postID uint) (*entity.Image, error)
	RecentImages(ctx context.Context, size, offset int) ([]entity.Image, error)
	RecentFollowingImages(ctx context.Context, size, offset int, userID uint, since time.Time) ([]entity.Image, error)
	ImagesByUserID(ctx context.Context, userID uint) ([]entity.Image, error)
	ImagesByNickname(ctx context.Context, nickname string) ([]entity.Image, error)
}

type imageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) GetByPostID(ctx context.Context, postID uint) (*entity.Image, error) {
	var image entity.Image
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).First(&image).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) RecentImages(ctx context.Context, size, offset int) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).Model(&entity.Image{}).
		Select("images.post_id, images.url").
		Joins("JOIN posts ON posts.id = images.post_id").
		Order("posts.created_at DESC").
		Limit(size).
		Offset(offset).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) RecentFollowingImages(ctx context.Context, size, offset int, userID uint, since time.Time) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).Model(&entity.Image{}).
		Select("images.post_id, images.url").
		Joins("JOIN posts ON posts.id = images.post_id").
		Joins("JOIN follows ON follows.followee_id = posts.user_id").
		Where("follows.follower_id = ? AND posts.created_at > ?", userID, since).
		Order("posts.created_at DESC").
		Limit(size).
		Offset(offset).
		Find(&images).Error
	return images, err
}

func (r *imageRepository) ImagesByUserID(ctx context.Context, userID uint) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).Model(&entity.Image{}).
		Select("images.post_id, images.url").
		Joins("JOIN posts ON posts.id = images.post_id").
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC").
		Find(&images).Error
	return images, err
}

func (r *imageRepository) ImagesByNickname(ctx context.Context, nickname string) ([]entity.Image, error) {
	var images []entity.Image
	err := r.db.WithContext(ctx).Model(&entity.Image{}).
		Select("images.post_id, images.url").
		Joins("JOIN posts ON posts.id = images.post_id").
		Joins("JOIN users ON users.id = posts.user_id").
		Where("users.nickname = ?", nickname).
		Order("posts.created_at DESC").
		Find(&images).Error
	return images, err
}
