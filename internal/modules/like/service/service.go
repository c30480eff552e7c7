package like

import (
	"context"

	"carbook.dev/carbook/internal/entity"
	likeRepo "carbook.dev/carbook/internal/modules/like/repository"
	notification "carbook.dev/carbook/internal/modules/notification/service"
	postRepo "carbook.dev/carbook/internal/modules/post/repository"
)

type LikeService interface {
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
}

type likeService struct {
	repo         likeRepo.LikeRepository
	postRepo     postRepo.PostRepository
	notifService notification.NotificationService
}

func NewLikeService(repo likeRepo.LikeRepository, postRepo postRepo.PostRepository, notifService notification.NotificationService) LikeService {
	return &likeService{
		repo:         repo,
		postRepo:     postRepo,
		notifService: notifService,
	}
}

func (s *likeService) Like(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, userID, postID); err != nil {
		return err
	}

	if post.UserID != userID {
		notif := &entity.Notification{
			UserID:  post.UserID,
			ActorID: userID,
			Kind:    entity.NotificationLike,
			PostID:  &postID,
		}
		// Best effort; the like itself is already persisted.
		_ = s.notifService.CreateNotification(ctx, notif)
	}

	return nil
}

func (s *likeService) Unlike(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.FindByID(ctx, postID); err != nil {
		return err
	}

	return s.repo.Delete(ctx, userID, postID)
}
