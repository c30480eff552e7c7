package tag

import (
	"context"
	"testing"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTagRepo struct {
	nextID   uint
	hashtags map[string]*entity.Hashtag
	types    map[string]*entity.VehicleType
	models   map[string]*entity.VehicleModel

	createCalls int
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{
		hashtags: map[string]*entity.Hashtag{},
		types: map[string]*entity.VehicleType{
			"sedan": {ID: 1, Name: "sedan"},
		},
		models: map[string]*entity.VehicleModel{
			"sonata": {ID: 24, TypeID: 1, Name: "sonata"},
		},
	}
}

func (f *fakeTagRepo) GetOrCreateHashtag(ctx context.Context, name string) (*entity.Hashtag, error) {
	f.createCalls++
	if tag, ok := f.hashtags[name]; ok {
		return tag, nil
	}
	f.nextID++
	tag := &entity.Hashtag{ID: f.nextID, Name: name}
	f.hashtags[name] = tag
	return tag, nil
}

func (f *fakeTagRepo) FindHashtagByName(ctx context.Context, name string) (*entity.Hashtag, error) {
	tag, ok := f.hashtags[name]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return tag, nil
}

func (f *fakeTagRepo) HashtagsByPostID(ctx context.Context, postID uint) ([]entity.Hashtag, error) {
	return nil, nil
}

func (f *fakeTagRepo) FindTypeByID(ctx context.Context, id uint) (*entity.VehicleType, error) {
	for _, vType := range f.types {
		if vType.ID == id {
			return vType, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeTagRepo) FindTypeByName(ctx context.Context, name string) (*entity.VehicleType, error) {
	vType, ok := f.types[name]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return vType, nil
}

func (f *fakeTagRepo) FindModelByID(ctx context.Context, id uint) (*entity.VehicleModel, error) {
	for _, model := range f.models {
		if model.ID == id {
			return model, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeTagRepo) FindModelByName(ctx context.Context, name string) (*entity.VehicleModel, error) {
	model, ok := f.models[name]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return model, nil
}

func (f *fakeTagRepo) AllTypesWithModels(ctx context.Context) ([]entity.VehicleType, error) {
	types := make([]entity.VehicleType, 0, len(f.types))
	for _, vType := range f.types {
		types = append(types, *vType)
	}
	return types, nil
}

func TestResolveHashtagsCreatesAndReuses(t *testing.T) {
	repo := newFakeTagRepo()
	service := NewTagService(repo)

	first, err := service.ResolveHashtags(context.Background(), []string{"sunny", "cloudy"})
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := service.ResolveHashtags(context.Background(), []string{"sunny"})
	require.NoError(t, err)
	require.Len(t, second, 1)

	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Len(t, repo.hashtags, 2)
}

func TestResolveHashtagsDeduplicatesInput(t *testing.T) {
	repo := newFakeTagRepo()
	service := NewTagService(repo)

	tags, err := service.ResolveHashtags(context.Background(), []string{"rain", "rain", "rain"})
	require.NoError(t, err)

	assert.Len(t, tags, 1)
	assert.Equal(t, 1, repo.createCalls)
}

func TestResolveTaxonomyUnknownNameFails(t *testing.T) {
	repo := newFakeTagRepo()
	service := NewTagService(repo)

	_, _, err := service.ResolveTaxonomy(context.Background(), "boat", "sonata")
	assert.ErrorIs(t, err, apperror.ErrTagNotExist)

	_, _, err = service.ResolveTaxonomy(context.Background(), "sedan", "cybertruck")
	assert.ErrorIs(t, err, apperror.ErrTagNotExist)
}

func TestResolveTaxonomyReturnsRows(t *testing.T) {
	repo := newFakeTagRepo()
	service := NewTagService(repo)

	vType, model, err := service.ResolveTaxonomy(context.Background(), "sedan", "sonata")
	require.NoError(t, err)
	assert.Equal(t, uint(1), vType.ID)
	assert.Equal(t, uint(24), model.ID)
	assert.Equal(t, vType.ID, model.TypeID)
}

func TestTaxonomyNames(t *testing.T) {
	repo := newFakeTagRepo()
	service := NewTagService(repo)

	typeName, modelName, err := service.TaxonomyNames(context.Background(), 1, 24)
	require.NoError(t, err)
	assert.Equal(t, "sedan", typeName)
	assert.Equal(t, "sonata", modelName)

	_, _, err = service.TaxonomyNames(context.Background(), 99, 24)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
