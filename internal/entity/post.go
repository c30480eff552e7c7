package entity

import (
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text" json:"content"`
	TypeID    uint      `gorm:"not null" json:"type_id"`
	ModelID   uint      `gorm:"not null" json:"model_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User     User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Image    *Image    `gorm:"foreignKey:PostID" json:"image,omitempty"`
	Hashtags []Hashtag `gorm:"many2many:post_hashtags" json:"hashtags,omitempty"`
}

// Image holds the display URL for a post. Exactly one row per post.
type Image struct {
	PostID uint   `gorm:"primaryKey;autoIncrement:false" json:"post_id"`
	URL    string `gorm:"type:text;not null" json:"image_url"`
}

type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
