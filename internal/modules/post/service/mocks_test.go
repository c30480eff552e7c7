package post

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"carbook.dev/carbook/internal/entity"
	postRepo "carbook.dev/carbook/internal/modules/post/repository"
	search "carbook.dev/carbook/internal/modules/search/service"
	"carbook.dev/carbook/pkg/apperror"
	"github.com/stretchr/testify/require"
)

// Hand-written fakes, one per collaborator interface. State is plain
// maps so tests can seed and inspect it directly.

type fakePostRepo struct {
	nextID     uint
	posts      map[uint]*entity.Post
	tagsByPost map[uint][]entity.Hashtag

	hashtagHits map[string][]uint
	typeHits    map[string][]uint
	modelHits   map[string][]uint
	popularIDs  []uint

	searchCalls []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		nextID:      0,
		posts:       map[uint]*entity.Post{},
		tagsByPost:  map[uint][]entity.Hashtag{},
		hashtagHits: map[string][]uint{},
		typeHits:    map[string][]uint{},
		modelHits:   map[string][]uint{},
	}
}

func (f *fakePostRepo) CreateWithImage(ctx context.Context, post *entity.Post, tags []entity.Hashtag, upload postRepo.UploadFunc) error {
	f.nextID++
	post.ID = f.nextID

	url, err := upload(post.ID)
	if err != nil {
		// Transactional create: a failed upload leaves nothing behind.
		post.ID = 0
		f.nextID--
		return err
	}

	post.Image = &entity.Image{PostID: post.ID, URL: url}
	f.posts[post.ID] = post
	f.tagsByPost[post.ID] = tags
	return nil
}

func (f *fakePostRepo) UpdateWithImage(ctx context.Context, post *entity.Post, tags []entity.Hashtag, upload postRepo.UploadFunc) error {
	url, err := upload(post.ID)
	if err != nil {
		return err
	}
	post.Image = &entity.Image{PostID: post.ID, URL: url}
	f.posts[post.ID] = post
	f.tagsByPost[post.ID] = tags
	return nil
}

func (f *fakePostRepo) DeleteCascade(ctx context.Context, post *entity.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return apperror.ErrNotFound
	}
	delete(f.posts, post.ID)
	delete(f.tagsByPost, post.ID)
	return nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return post, nil
}

func (f *fakePostRepo) SearchIDsByHashtag(ctx context.Context, name string) ([]uint, error) {
	f.searchCalls = append(f.searchCalls, "hashtag:"+name)
	return f.hashtagHits[name], nil
}

func (f *fakePostRepo) SearchIDsByType(ctx context.Context, name string) ([]uint, error) {
	f.searchCalls = append(f.searchCalls, "type:"+name)
	return f.typeHits[name], nil
}

func (f *fakePostRepo) SearchIDsByModel(ctx context.Context, name string) ([]uint, error) {
	f.searchCalls = append(f.searchCalls, "model:"+name)
	return f.modelHits[name], nil
}

func (f *fakePostRepo) PopularIDsSince(ctx context.Context, since time.Time, limit, offset int) ([]uint, error) {
	return f.popularIDs, nil
}

type fakeImageRepo struct {
	byPost    map[uint]string
	recent    []entity.Image
	following []entity.Image
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{byPost: map[uint]string{}}
}

func (f *fakeImageRepo) GetByPostID(ctx context.Context, postID uint) (*entity.Image, error) {
	url, ok := f.byPost[postID]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &entity.Image{PostID: postID, URL: url}, nil
}

func (f *fakeImageRepo) RecentImages(ctx context.Context, size, offset int) ([]entity.Image, error) {
	return page(f.recent, size, offset), nil
}

func (f *fakeImageRepo) RecentFollowingImages(ctx context.Context, size, offset int, userID uint, since time.Time) ([]entity.Image, error) {
	return page(f.following, size, offset), nil
}

func (f *fakeImageRepo) ImagesByUserID(ctx context.Context, userID uint) ([]entity.Image, error) {
	return f.recent, nil
}

func (f *fakeImageRepo) ImagesByNickname(ctx context.Context, nickname string) ([]entity.Image, error) {
	return f.recent, nil
}

func page(images []entity.Image, size, offset int) []entity.Image {
	if offset >= len(images) {
		return []entity.Image{}
	}
	end := offset + size
	if end > len(images) {
		end = len(images)
	}
	return images[offset:end]
}

type fakeLikeRepo struct {
	likes map[[2]uint]bool
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{likes: map[[2]uint]bool{}}
}

func (f *fakeLikeRepo) Create(ctx context.Context, userID, postID uint) error {
	f.likes[[2]uint{userID, postID}] = true
	return nil
}

func (f *fakeLikeRepo) Delete(ctx context.Context, userID, postID uint) error {
	delete(f.likes, [2]uint{userID, postID})
	return nil
}

func (f *fakeLikeRepo) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	return f.likes[[2]uint{userID, postID}], nil
}

func (f *fakeLikeRepo) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	for key := range f.likes {
		if key[1] == postID {
			count++
		}
	}
	return count, nil
}

type fakeTagService struct {
	nextHashtagID uint
	hashtags      map[string]uint
	types         map[string]uint
	models        map[string]uint

	typeNames  map[uint]string
	modelNames map[uint]string
}

func newFakeTagService() *fakeTagService {
	return &fakeTagService{
		hashtags:   map[string]uint{},
		types:      map[string]uint{"sedan": 1, "suv": 2},
		models:     map[string]uint{"sonata": 24, "avante": 25},
		typeNames:  map[uint]string{1: "sedan", 2: "suv"},
		modelNames: map[uint]string{24: "sonata", 25: "avante"},
	}
}

func (f *fakeTagService) ResolveHashtags(ctx context.Context, names []string) ([]entity.Hashtag, error) {
	tags := make([]entity.Hashtag, 0, len(names))
	for _, name := range names {
		id, ok := f.hashtags[name]
		if !ok {
			f.nextHashtagID++
			id = f.nextHashtagID
			f.hashtags[name] = id
		}
		tags = append(tags, entity.Hashtag{ID: id, Name: name})
	}
	return tags, nil
}

func (f *fakeTagService) ResolveTaxonomy(ctx context.Context, typeName, modelName string) (*entity.VehicleType, *entity.VehicleModel, error) {
	typeID, ok := f.types[typeName]
	if !ok {
		return nil, nil, apperror.ErrTagNotExist
	}
	modelID, ok := f.models[modelName]
	if !ok {
		return nil, nil, apperror.ErrTagNotExist
	}
	return &entity.VehicleType{ID: typeID, Name: typeName},
		&entity.VehicleModel{ID: modelID, TypeID: typeID, Name: modelName}, nil
}

func (f *fakeTagService) TaxonomyNames(ctx context.Context, typeID, modelID uint) (string, string, error) {
	return f.typeNames[typeID], f.modelNames[modelID], nil
}

func (f *fakeTagService) HashtagsOfPost(ctx context.Context, postID uint) ([]entity.Hashtag, error) {
	return nil, nil
}

func (f *fakeTagService) ListTaxonomy(ctx context.Context) ([]entity.VehicleType, error) {
	return nil, nil
}

type fakeStorage struct {
	uploads []string
	deletes []string
	failAll bool
}

func (f *fakeStorage) UploadImage(ctx context.Context, r io.Reader, folder, fileName string) (string, error) {
	if f.failAll {
		return "", fmt.Errorf("storage unavailable")
	}
	f.uploads = append(f.uploads, fileName)
	return "https://cdn.example.com/" + folder + "/" + fileName, nil
}

func (f *fakeStorage) DeleteImage(ctx context.Context, fileURL string) error {
	f.deletes = append(f.deletes, fileURL)
	return nil
}

type fakeSearchService struct {
	indexed []uint
	deleted []uint
}

func (f *fakeSearchService) IndexPost(post *entity.Post, nickname string) error {
	f.indexed = append(f.indexed, post.ID)
	return nil
}

func (f *fakeSearchService) DeletePost(postID uint) error {
	f.deleted = append(f.deleted, postID)
	return nil
}

func (f *fakeSearchService) SearchPosts(query string) ([]search.PostDoc, error) {
	return []search.PostDoc{}, nil
}

// fileHeader builds a real multipart.FileHeader the way gin would after
// parsing a form upload.
func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(int64(len(data)) + 4096)
	require.NoError(t, err)
	return form.File["image"][0]
}
