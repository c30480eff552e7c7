package tag

import (
	"context"
	"errors"

	"carbook.dev/carbook/internal/entity"
	tagRepo "carbook.dev/carbook/internal/modules/tag/repository"
	"carbook.dev/carbook/pkg/apperror"
)

type TagService interface {
	// ResolveHashtags maps each name to a hashtag row, creating unseen
	// names. Resolution is idempotent.
	ResolveHashtags(ctx context.Context, names []string) ([]entity.Hashtag, error)
	// ResolveTaxonomy looks up the vehicle type and model by name.
	// Unknown names fail with ErrTagNotExist; taxonomy entries are never
	// auto-created.
	ResolveTaxonomy(ctx context.Context, typeName, modelName string) (*entity.VehicleType, *entity.VehicleModel, error)
	TaxonomyNames(ctx context.Context, typeID, modelID uint) (string, string, error)
	HashtagsOfPost(ctx context.Context, postID uint) ([]entity.Hashtag, error)
	ListTaxonomy(ctx context.Context) ([]entity.VehicleType, error)
}

type tagService struct {
	repo tagRepo.TagRepository
}

func NewTagService(repo tagRepo.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) ResolveHashtags(ctx context.Context, names []string) ([]entity.Hashtag, error) {
	tags := make([]entity.Hashtag, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		tag, err := s.repo.GetOrCreateHashtag(ctx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *tagService) ResolveTaxonomy(ctx context.Context, typeName, modelName string) (*entity.VehicleType, *entity.VehicleModel, error) {
	vType, err := s.repo.FindTypeByName(ctx, typeName)
	if err != nil {
		return nil, nil, tagNotExistOr(err)
	}

	model, err := s.repo.FindModelByName(ctx, modelName)
	if err != nil {
		return nil, nil, tagNotExistOr(err)
	}

	return vType, model, nil
}

func (s *tagService) TaxonomyNames(ctx context.Context, typeID, modelID uint) (string, string, error) {
	vType, err := s.repo.FindTypeByID(ctx, typeID)
	if err != nil {
		return "", "", err
	}
	model, err := s.repo.FindModelByID(ctx, modelID)
	if err != nil {
		return "", "", err
	}
	return vType.Name, model.Name, nil
}

func (s *tagService) HashtagsOfPost(ctx context.Context, postID uint) ([]entity.Hashtag, error) {
	return s.repo.HashtagsByPostID(ctx, postID)
}

func (s *tagService) ListTaxonomy(ctx context.Context) ([]entity.VehicleType, error) {
	return s.repo.AllTypesWithModels(ctx)
}

func tagNotExistOr(err error) error {
	if errors.Is(err, apperror.ErrNotFound) {
		return apperror.ErrTagNotExist
	}
	return err
}
