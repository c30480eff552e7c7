package post

import (
	"context"
	"time"

	"carbook.dev/carbook/internal/entity"
	postDto "carbook.dev/carbook/internal/modules/post/dto"
)

// feedPageSize bounds every feed page.
const feedPageSize = 10

// followingFeedWindow is the trailing window applied to the following
// feed and the popularity ranking. Date-granular: the boundary is
// midnight seven days ago, posts at the exact instant excluded.
const followingFeedWindow = 7

func (s *postService) RecentFeed(ctx context.Context, index int) (*postDto.FeedResponse, error) {
	images, err := s.imageRepo.RecentImages(ctx, feedPageSize, index)
	if err != nil {
		return nil, err
	}

	return &postDto.FeedResponse{IsLogin: false, Images: toSummaries(images)}, nil
}

func (s *postService) RecentFollowingFeed(ctx context.Context, index int, userID uint) (*postDto.FeedResponse, error) {
	images, err := s.imageRepo.RecentFollowingImages(ctx, feedPageSize, index, userID, lastWeek())
	if err != nil {
		return nil, err
	}

	return &postDto.FeedResponse{IsLogin: true, Images: toSummaries(images)}, nil
}

func (s *postService) PopularFeed(ctx context.Context, index int, userID uint) (*postDto.FeedResponse, error) {
	ids, err := s.postRepo.PopularIDsSince(ctx, lastWeek(), feedPageSize, index)
	if err != nil {
		return nil, err
	}

	// The ranking order is authoritative; one image per ranked id. A
	// missing image breaks the one-image-per-post invariant and fails
	// the whole request.
	images := make([]postDto.ImageSummary, 0, len(ids))
	for _, id := range ids {
		image, err := s.imageRepo.GetByPostID(ctx, id)
		if err != nil {
			return nil, err
		}
		images = append(images, postDto.ImageSummary{PostID: image.PostID, URL: image.URL})
	}

	return &postDto.FeedResponse{IsLogin: true, Images: images}, nil
}

func lastWeek() time.Time {
	now := time.Now()
	boundary := now.AddDate(0, 0, -followingFeedWindow)
	return time.Date(boundary.Year(), boundary.Month(), boundary.Day(), 0, 0, 0, 0, boundary.Location())
}

func toSummaries(images []entity.Image) []postDto.ImageSummary {
	summaries := make([]postDto.ImageSummary, 0, len(images))
	for _, image := range images {
		summaries = append(summaries, postDto.ImageSummary{PostID: image.PostID, URL: image.URL})
	}
	return summaries
}
