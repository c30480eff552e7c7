package entity

import (
	"time"
)

const (
	NotificationLike   = "like"
	NotificationFollow = "follow"
)

// Notification is delivered to UserID; ActorID is who triggered it.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	ActorID   uint      `gorm:"not null" json:"actor_id"`
	Kind      string    `gorm:"size:20;not null" json:"kind"`
	PostID    *uint     `json:"post_id,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Actor User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}
