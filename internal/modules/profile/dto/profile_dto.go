package dto

import (
	postDto "carbook.dev/carbook/internal/modules/post/dto"
)

type MyProfileResponse struct {
	Nickname  string                 `json:"nickname"`
	Email     string                 `json:"email"`
	Follower  int64                  `json:"follower"`
	Following int64                  `json:"following"`
	Images    []postDto.ImageSummary `json:"images"`
}

type OtherProfileResponse struct {
	Nickname  string                 `json:"nickname"`
	Email     string                 `json:"email"`
	IsFollow  bool                   `json:"follow"`
	Follower  int64                  `json:"follower"`
	Following int64                  `json:"following"`
	Images    []postDto.ImageSummary `json:"images"`
}
