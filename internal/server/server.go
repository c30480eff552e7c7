package server

import (
	"log"
	"os"
	"strings"
	"time"

	"carbook.dev/carbook/internal/middleware"
	"carbook.dev/carbook/pkg/storage"

	followHttp "carbook.dev/carbook/internal/modules/follow/delivery/http"
	followRepo "carbook.dev/carbook/internal/modules/follow/repository"
	followService "carbook.dev/carbook/internal/modules/follow/service"

	likeHttp "carbook.dev/carbook/internal/modules/like/delivery/http"
	likeRepo "carbook.dev/carbook/internal/modules/like/repository"
	likeService "carbook.dev/carbook/internal/modules/like/service"

	notiHttp "carbook.dev/carbook/internal/modules/notification/delivery/http"
	notifRepo "carbook.dev/carbook/internal/modules/notification/repository"
	notifService "carbook.dev/carbook/internal/modules/notification/service"

	postHttp "carbook.dev/carbook/internal/modules/post/delivery/http"
	postRepo "carbook.dev/carbook/internal/modules/post/repository"
	postService "carbook.dev/carbook/internal/modules/post/service"

	profileHttp "carbook.dev/carbook/internal/modules/profile/delivery/http"
	profileService "carbook.dev/carbook/internal/modules/profile/service"

	searchService "carbook.dev/carbook/internal/modules/search/service"

	tagHttp "carbook.dev/carbook/internal/modules/tag/delivery/http"
	tagRepo "carbook.dev/carbook/internal/modules/tag/repository"
	tagService "carbook.dev/carbook/internal/modules/tag/service"

	userHttp "carbook.dev/carbook/internal/modules/user/delivery/http"
	userRepo "carbook.dev/carbook/internal/modules/user/repository"
	userService "carbook.dev/carbook/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(db *gorm.DB, redisClient *redis.Client) *Server {
	imageStorage, err := storage.NewCloudinaryStorage()
	if err != nil {
		log.Fatalf("failed to initialize cloudinary storage: %v", err)
	}

	uploadFolder := os.Getenv("CLOUDINARY_UPLOAD_FOLDER")
	if uploadFolder == "" {
		uploadFolder = "carbook"
	}

	// Meilisearch backs the free-text content search; everything else
	// runs against postgres.
	meiliHost := os.Getenv("MEILISEARCH_HOST")
	if meiliHost == "" {
		meiliHost = "http://localhost:7700"
	}
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}

	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(os.Getenv("MEILI_MASTER_KEY")))
	searchSvc := searchService.NewSearchService(meiliClient)

	users := userRepo.NewUserRepository(db)
	tags := tagRepo.NewTagRepository(db)
	posts := postRepo.NewPostRepository(db)
	images := postRepo.NewImageRepository(db)
	follows := followRepo.NewFollowRepository(db)
	likes := likeRepo.NewLikeRepository(db)
	notifications := notifRepo.NewNotificationRepository(db)

	authSvc := userService.NewAuthService(users)
	authHandler := userHttp.NewAuthHandler(authSvc)

	tagSvc := tagService.NewTagService(tags)
	tagHandler := tagHttp.NewTagHandler(tagSvc)

	notificationSvc := notifService.NewNotificationService(notifications, redisClient)
	notificationHandler := notiHttp.NewNotificationHandler(notificationSvc, redisClient)

	postSvc := postService.NewPostService(posts, images, likes, tagSvc, imageStorage, searchSvc, redisClient, uploadFolder)
	postHandler := postHttp.NewPostHandler(postSvc)

	followSvc := followService.NewFollowService(follows, users, notificationSvc)
	followHandler := followHttp.NewFollowHandler(followSvc)

	likeSvc := likeService.NewLikeService(likes, posts, notificationSvc)
	likeHandler := likeHttp.NewLikeHandler(likeSvc)

	profileSvc := profileService.NewProfileService(users, follows, images)
	profileHandler := profileHttp.NewProfileHandler(profileSvc)

	router := gin.New()

	setupCORS(router)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware()

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/users")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
	}

	// Feed and search are public; a valid token upgrades the feed to
	// the following variant.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/posts/feed", postHandler.Feed)
		public.GET("/posts/search", postHandler.SearchByTags)
		public.GET("/posts/search/content", postHandler.SearchContent)
		public.GET("/posts/:post_id", postHandler.GetPostDetails)
		public.GET("/tags", tagHandler.ListTaxonomy)
	}

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Post routes
		protected.POST("/posts", postHandler.CreatePost)
		protected.PUT("/posts/:post_id", postHandler.ModifyPost)
		protected.DELETE("/posts/:post_id", postHandler.DeletePost)
		protected.GET("/posts/popular", postHandler.PopularFeed)

		// Like routes
		protected.POST("/posts/:post_id/like", likeHandler.Like)
		protected.DELETE("/posts/:post_id/like", likeHandler.Unlike)

		// Follow routes
		protected.POST("/follows", followHandler.Follow)
		protected.DELETE("/follows", followHandler.Unfollow)

		// Profile routes
		protected.GET("/profile/me", profileHandler.GetMyProfile)
		protected.GET("/profile/:nickname", profileHandler.GetProfileByNickname)

		// Notification routes
		protected.GET("/notifications", notificationHandler.GetNotifications)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine) {
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
