package post

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"carbook.dev/carbook/internal/entity"
	likeRepo "carbook.dev/carbook/internal/modules/like/repository"
	postDto "carbook.dev/carbook/internal/modules/post/dto"
	postRepo "carbook.dev/carbook/internal/modules/post/repository"
	search "carbook.dev/carbook/internal/modules/search/service"
	tag "carbook.dev/carbook/internal/modules/tag/service"
	"carbook.dev/carbook/pkg/apperror"
	"carbook.dev/carbook/pkg/ratelimiter"
	"carbook.dev/carbook/pkg/storage"
	"github.com/redis/go-redis/v9"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint, form postDto.CreatePostForm) error
	ModifyPost(ctx context.Context, userID, postID uint, form postDto.ModifyPostForm) error
	DeletePost(ctx context.Context, userID, postID uint) error
	GetPostDetails(ctx context.Context, postID uint, viewerID *uint) (*postDto.PostDetailResponse, error)

	RecentFeed(ctx context.Context, index int) (*postDto.FeedResponse, error)
	RecentFollowingFeed(ctx context.Context, index int, userID uint) (*postDto.FeedResponse, error)
	PopularFeed(ctx context.Context, index int, userID uint) (*postDto.FeedResponse, error)
	SearchByTags(ctx context.Context, hashtags, typeName, modelName string, index int) (*postDto.FeedResponse, error)
	SearchContent(ctx context.Context, query string) ([]search.PostDoc, error)
}

type postService struct {
	postRepo      postRepo.PostRepository
	imageRepo     postRepo.ImageRepository
	likeRepo      likeRepo.LikeRepository
	tagService    tag.TagService
	fileStorage   storage.ImageStorage
	searchService search.SearchService
	redisClient   *redis.Client
	uploadFolder  string
}

func NewPostService(
	posts postRepo.PostRepository,
	images postRepo.ImageRepository,
	likes likeRepo.LikeRepository,
	tagService tag.TagService,
	fileStorage storage.ImageStorage,
	searchService search.SearchService,
	redisClient *redis.Client,
	uploadFolder string,
) PostService {
	return &postService{
		postRepo:      posts,
		imageRepo:     images,
		likeRepo:      likes,
		tagService:    tagService,
		fileStorage:   fileStorage,
		searchService: searchService,
		redisClient:   redisClient,
		uploadFolder:  uploadFolder,
	}
}

func (s *postService) CreatePost(ctx context.Context, userID uint, form postDto.CreatePostForm) error {
	postLimit := ratelimiter.GetDurationFromEnv("RATE_LIMIT_POST", 15*time.Second)
	allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, s.redisClient, userID, "post", postLimit)
	if err != nil {
		return fmt.Errorf("failed to check rate limit: %w", err)
	}
	if !allowed {
		ttl, _ := ratelimiter.GetRateLimitTTL(ctx, s.redisClient, userID, "post")
		return &ratelimiter.RateLimitError{
			Message:    fmt.Sprintf("you can only create one post every %.0f seconds. Please wait %.0f seconds", postLimit.Seconds(), ttl.Seconds()),
			RetryAfter: ttl,
		}
	}

	creationFailed := true
	defer func() {
		if creationFailed {
			_ = ratelimiter.ClearRateLimit(ctx, s.redisClient, userID, "post")
		}
	}()

	vType, model, err := s.tagService.ResolveTaxonomy(ctx, form.Type, form.Model)
	if err != nil {
		return err
	}

	tags, err := s.tagService.ResolveHashtags(ctx, strings.Fields(form.Hashtags))
	if err != nil {
		return err
	}

	post := &entity.Post{
		UserID:  userID,
		Content: form.Content,
		TypeID:  vType.ID,
		ModelID: model.ID,
	}

	if err := s.postRepo.CreateWithImage(ctx, post, tags, s.uploadFunc(ctx, form.Image)); err != nil {
		return err
	}
	creationFailed = false

	s.indexPost(ctx, post)
	return nil
}

func (s *postService) ModifyPost(ctx context.Context, userID, postID uint, form postDto.ModifyPostForm) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return apperror.ErrInvalidAccess
	}

	vType, model, err := s.tagService.ResolveTaxonomy(ctx, form.Type, form.Model)
	if err != nil {
		return err
	}

	tags, err := s.tagService.ResolveHashtags(ctx, strings.Fields(form.Hashtags))
	if err != nil {
		return err
	}

	oldURL := ""
	if post.Image != nil {
		oldURL = post.Image.URL
	}

	post.Content = form.Content
	post.TypeID = vType.ID
	post.ModelID = model.ID

	if err := s.postRepo.UpdateWithImage(ctx, post, tags, s.uploadFunc(ctx, form.Image)); err != nil {
		return err
	}

	// Old binary is unreachable now; removal is best effort.
	if oldURL != "" {
		if err := s.fileStorage.DeleteImage(ctx, oldURL); err != nil {
			log.Printf("failed to delete replaced image: %v", err)
		}
	}

	s.indexPost(ctx, post)
	return nil
}

func (s *postService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return apperror.ErrInvalidAccess
	}

	if err := s.postRepo.DeleteCascade(ctx, post); err != nil {
		return err
	}

	if post.Image != nil {
		if err := s.fileStorage.DeleteImage(ctx, post.Image.URL); err != nil {
			log.Printf("failed to delete image of post %d: %v", postID, err)
		}
	}

	if err := s.searchService.DeletePost(postID); err != nil {
		log.Printf("failed to drop post %d from search index: %v", postID, err)
	}

	return nil
}

func (s *postService) GetPostDetails(ctx context.Context, postID uint, viewerID *uint) (*postDto.PostDetailResponse, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	image, err := s.imageRepo.GetByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	typeName, modelName, err := s.tagService.TaxonomyNames(ctx, post.TypeID, post.ModelID)
	if err != nil {
		return nil, err
	}

	hashtags, err := s.tagService.HashtagsOfPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(hashtags))
	for _, h := range hashtags {
		names = append(names, h.Name)
	}

	likeCount, err := s.likeRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	isLiked := false
	isMyPost := false
	if viewerID != nil {
		isLiked, err = s.likeRepo.Exists(ctx, *viewerID, postID)
		if err != nil {
			return nil, err
		}
		isMyPost = post.UserID == *viewerID
	}

	return &postDto.PostDetailResponse{
		PostID:    post.ID,
		Nickname:  post.User.Nickname,
		Content:   post.Content,
		ImageURL:  image.URL,
		Type:      typeName,
		Model:     modelName,
		Hashtags:  names,
		LikeCount: likeCount,
		IsLiked:   isLiked,
		IsMyPost:  isMyPost,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}, nil
}

func (s *postService) SearchContent(ctx context.Context, query string) ([]search.PostDoc, error) {
	return s.searchService.SearchPosts(query)
}

// uploadFunc adapts the multipart file into the repository's two-phase
// upload hook: the storage key embeds the post id handed in by the
// repository once the row exists.
func (s *postService) uploadFunc(ctx context.Context, file *multipart.FileHeader) postRepo.UploadFunc {
	return func(postID uint) (string, error) {
		f, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperror.ErrUploadFailed, err)
		}
		defer f.Close()

		fileName := fmt.Sprintf("post-%d-%s", postID, file.Filename)
		url, err := s.fileStorage.UploadImage(ctx, f, s.uploadFolder, fileName)
		if err != nil {
			return "", fmt.Errorf("%w: %v", apperror.ErrUploadFailed, err)
		}
		return url, nil
	}
}

func (s *postService) indexPost(ctx context.Context, post *entity.Post) {
	nickname := post.User.Nickname
	if nickname == "" {
		if fresh, err := s.postRepo.FindByID(ctx, post.ID); err == nil {
			nickname = fresh.User.Nickname
		}
	}

	if err := s.searchService.IndexPost(post, nickname); err != nil {
		log.Printf("failed to index post %d: %v", post.ID, err)
	}
}
