package profile

import (
	"context"

	"carbook.dev/carbook/internal/entity"
	followRepo "carbook.dev/carbook/internal/modules/follow/repository"
	postDto "carbook.dev/carbook/internal/modules/post/dto"
	postRepo "carbook.dev/carbook/internal/modules/post/repository"
	"carbook.dev/carbook/internal/modules/profile/dto"
	userRepo "carbook.dev/carbook/internal/modules/user/repository"
)

type ProfileService interface {
	MyProfile(ctx context.Context, userID uint) (*dto.MyProfileResponse, error)
	OtherProfile(ctx context.Context, viewerID uint, nickname string) (*dto.OtherProfileResponse, error)
}

type profileService struct {
	userRepo   userRepo.UserRepository
	followRepo followRepo.FollowRepository
	imageRepo  postRepo.ImageRepository
}

func NewProfileService(users userRepo.UserRepository, follows followRepo.FollowRepository, images postRepo.ImageRepository) ProfileService {
	return &profileService{
		userRepo:   users,
		followRepo: follows,
		imageRepo:  images,
	}
}

func (s *profileService) MyProfile(ctx context.Context, userID uint) (*dto.MyProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	follower, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ImagesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.MyProfileResponse{
		Nickname:  user.Nickname,
		Email:     user.Email,
		Follower:  follower,
		Following: following,
		Images:    toSummaries(images),
	}, nil
}

func (s *profileService) OtherProfile(ctx context.Context, viewerID uint, nickname string) (*dto.OtherProfileResponse, error) {
	user, err := s.userRepo.FindByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	isFollow, err := s.followRepo.Exists(ctx, viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	follower, err := s.followRepo.CountFollowers(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.CountFollowing(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	images, err := s.imageRepo.ImagesByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}

	return &dto.OtherProfileResponse{
		Nickname:  user.Nickname,
		Email:     user.Email,
		IsFollow:  isFollow,
		Follower:  follower,
		Following: following,
		Images:    toSummaries(images),
	}, nil
}

func toSummaries(images []entity.Image) []postDto.ImageSummary {
	summaries := make([]postDto.ImageSummary, 0, len(images))
	for _, image := range images {
		summaries = append(summaries, postDto.ImageSummary{PostID: image.PostID, URL: image.URL})
	}
	return summaries
}
