package dto

import (
	"mime/multipart"
	"time"
)

type CreatePostForm struct {
	Content  string                `form:"content" binding:"max=2000"`
	Type     string                `form:"type" binding:"required"`
	Model    string                `form:"model" binding:"required"`
	Hashtags string                `form:"hashtags"`
	Image    *multipart.FileHeader `form:"image" binding:"required"`
}

type ModifyPostForm struct {
	Content  string                `form:"content" binding:"max=2000"`
	Type     string                `form:"type" binding:"required"`
	Model    string                `form:"model" binding:"required"`
	Hashtags string                `form:"hashtags"`
	Image    *multipart.FileHeader `form:"image" binding:"required"`
}

// ImageSummary is one feed cell: the post it belongs to and its URL.
type ImageSummary struct {
	PostID uint   `json:"postId"`
	URL    string `json:"imageUrl"`
}

// FeedResponse is the assembled page for every feed and search variant.
type FeedResponse struct {
	IsLogin bool           `json:"isLogin"`
	Images  []ImageSummary `json:"images"`
}

type PostDetailResponse struct {
	PostID    uint      `json:"postId"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	ImageURL  string    `json:"imageUrl"`
	Type      string    `json:"type"`
	Model     string    `json:"model"`
	Hashtags  []string  `json:"hashtags"`
	LikeCount int64     `json:"likeCount"`
	IsLiked   bool      `json:"isLiked"`
	IsMyPost  bool      `json:"isMyPost"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
