package follow

import (
	"context"

	"carbook.dev/carbook/internal/entity"
	followRepo "carbook.dev/carbook/internal/modules/follow/repository"
	notification "carbook.dev/carbook/internal/modules/notification/service"
	userRepo "carbook.dev/carbook/internal/modules/user/repository"
	"carbook.dev/carbook/pkg/apperror"
)

type FollowService interface {
	Follow(ctx context.Context, followerID uint, followeeNickname string) error
	Unfollow(ctx context.Context, followerID uint, followeeNickname string) error
}

type followService struct {
	repo         followRepo.FollowRepository
	userRepo     userRepo.UserRepository
	notifService notification.NotificationService
}

func NewFollowService(repo followRepo.FollowRepository, userRepo userRepo.UserRepository, notifService notification.NotificationService) FollowService {
	return &followService{
		repo:         repo,
		userRepo:     userRepo,
		notifService: notifService,
	}
}

func (s *followService) Follow(ctx context.Context, followerID uint, followeeNickname string) error {
	followee, err := s.userRepo.FindByNickname(ctx, followeeNickname)
	if err != nil {
		return err
	}

	if followee.ID == followerID {
		return apperror.ErrInvalidInput
	}

	if err := s.repo.Create(ctx, followerID, followee.ID); err != nil {
		return err
	}

	notif := &entity.Notification{
		UserID:  followee.ID,
		ActorID: followerID,
		Kind:    entity.NotificationFollow,
	}
	if err := s.notifService.CreateNotification(ctx, notif); err != nil {
		// Follow already persisted; notification delivery is best effort.
		return nil
	}

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID uint, followeeNickname string) error {
	followee, err := s.userRepo.FindByNickname(ctx, followeeNickname)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, followerID, followee.ID)
}
