package post

import (
	"context"
	"strings"

	postDto "carbook.dev/carbook/internal/modules/post/dto"
)

// SearchByTags intersects the match sets of every supplied dimension:
// the vehicle type, the vehicle model, and each hashtag. Zero supplied
// dimensions yield an empty result, never all posts. The index argument
// is accepted for pagination but unused; the full intersection is
// returned.
func (s *postService) SearchByTags(ctx context.Context, hashtags, typeName, modelName string, index int) (*postDto.FeedResponse, error) {
	_ = index

	names := strings.Fields(hashtags)
	dimensions := make([][]uint, 0, len(names)+2)

	if typeName != "" {
		ids, err := s.postRepo.SearchIDsByType(ctx, typeName)
		if err != nil {
			return nil, err
		}
		dimensions = append(dimensions, ids)
	}

	if modelName != "" {
		ids, err := s.postRepo.SearchIDsByModel(ctx, modelName)
		if err != nil {
			return nil, err
		}
		dimensions = append(dimensions, ids)
	}

	for _, name := range names {
		ids, err := s.postRepo.SearchIDsByHashtag(ctx, name)
		if err != nil {
			return nil, err
		}
		dimensions = append(dimensions, ids)
	}

	if len(dimensions) == 0 {
		return &postDto.FeedResponse{Images: []postDto.ImageSummary{}}, nil
	}

	images := make([]postDto.ImageSummary, 0)
	for _, id := range intersect(dimensions) {
		image, err := s.imageRepo.GetByPostID(ctx, id)
		if err != nil {
			return nil, err
		}
		images = append(images, postDto.ImageSummary{PostID: image.PostID, URL: image.URL})
	}

	return &postDto.FeedResponse{Images: images}, nil
}

// intersect keeps the ids present in every set, deduplicated, in the
// order of the first set. Ordering by the first-queried dimension keeps
// results deterministic for identical inputs.
func intersect(sets [][]uint) []uint {
	rest := make([]map[uint]struct{}, 0, len(sets)-1)
	for _, set := range sets[1:] {
		members := make(map[uint]struct{}, len(set))
		for _, id := range set {
			members[id] = struct{}{}
		}
		rest = append(rest, members)
	}

	seen := make(map[uint]struct{}, len(sets[0]))
	result := make([]uint, 0, len(sets[0]))
	for _, id := range sets[0] {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		inAll := true
		for _, members := range rest {
			if _, ok := members[id]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			result = append(result, id)
		}
	}

	return result
}
