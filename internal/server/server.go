package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"lull/internal/config"
	"lull/internal/handler"
	authHandler "lull/internal/handler/auth"
	storyHandler "lull/internal/handler/story"
	"lull/internal/pkg/cache"
	"lull/internal/pkg/hume"
	"lull/internal/pkg/jwt"
	"lull/internal/pkg/llm"
	"lull/internal/pkg/mongodb"
	"lull/internal/pkg/secretbox"
	"lull/internal/pkg/storagefactory"
	authRepo "lull/internal/repository/auth"
	storyRepo "lull/internal/repository/story"
	"lull/internal/server/middleware"
	"lull/internal/service"
	storyService "lull/internal/service/story"
)

// Server HTTP server
type Server struct {
	cfg    *config.Config
	engine *gin.Engine
	mongo  *mongodb.Client
	redis  *cache.RedisCache
}

// New creates the server and wires every service.
// MongoDB and blob storage are required; redis is optional and only costs
// presigned-URL caching when absent.
func New(cfg *config.Config) (*Server, error) {
	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	mongoClient, err := mongodb.New(&cfg.Mongo)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to MongoDB")

	if err := mongodb.EnsureIndexes(mongoClient.Database()); err != nil {
		log.Warn().Err(err).Msg("failed to ensure indexes")
	}

	var redisCache *cache.RedisCache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to connect to Redis, continuing without URL caching")
		} else {
			redisCache = rc
			log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis")
		}
	}

	srv := &Server{
		cfg:    cfg,
		engine: engine,
		mongo:  mongoClient,
		redis:  redisCache,
	}

	if err := srv.setupRoutes(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (s *Server) setupRoutes() error {
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS())

	healthHandler := handler.NewHealthHandler()
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	db := s.mongo.Database()
	userRepo := authRepo.NewUserRepo(db)
	refreshTokenRepo := authRepo.NewRefreshTokenRepo(db)
	profileRepo := storyRepo.NewChildProfileRepo(db)
	presetRepo := storyRepo.NewVoicePresetRepo(db)
	storiesRepo := storyRepo.NewStoryRepo(db)

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "default-secret-key-change-in-production"
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}

	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}

	refreshTokenExpiry := s.cfg.Auth.RefreshTokenExpiry
	if refreshTokenExpiry == 0 {
		refreshTokenExpiry = 7 * 24 * time.Hour
	}

	box, err := secretbox.New(s.cfg.Secrets.EncryptionSecret)
	if err != nil {
		return fmt.Errorf("failed to create secretbox: %w", err)
	}

	store, err := storagefactory.NewStorage(&s.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	log.Info().Str("type", store.GetStorageType()).Msg("storage initialized")

	authSvc := service.NewAuthService(
		userRepo,
		refreshTokenRepo,
		jwtSecret,
		accessTokenExpiry,
		refreshTokenExpiry,
	)
	credSvc := service.NewCredentialService(userRepo, box)

	ttsClient := hume.NewClient(hume.Config{
		BaseURL:          s.cfg.TTS.BaseURL,
		SynthesisTimeout: s.cfg.TTS.SynthesisTimeout,
	})

	var urlCache storyService.URLCache
	if s.redis != nil {
		urlCache = s.redis
	}

	storySvc := storyService.New(
		storyService.Repos{
			Stories:  storiesRepo,
			Profiles: profileRepo,
			Presets:  presetRepo,
		},
		credSvc,
		llm.NewClient(&s.cfg.AI),
		ttsClient,
		store,
		urlCache,
		s.presignExpiry(),
	)

	authHdl := authHandler.NewHandler(authSvc, credSvc)
	storyHdl := storyHandler.NewHandler(storySvc)

	jwtUtil := jwt.NewJWT(jwtSecret, accessTokenExpiry)

	v1 := s.engine.Group("/api/v1")
	{
		v1.POST("/auth/register", authHdl.Register)
		v1.POST("/auth/login", authHdl.Login)
		v1.POST("/auth/refresh", authHdl.Refresh)
		v1.POST("/auth/logout", authHdl.Logout)

		authed := v1.Group("")
		authed.Use(middleware.Auth(jwtUtil))
		{
			authed.GET("/auth/me", authHdl.GetMe)

			authed.PUT("/credentials/openai", authHdl.StoreOpenAIKey)
			authed.PUT("/credentials/hume", authHdl.StoreHumeKey)
			authed.GET("/credentials", authHdl.GetCredentialStatus)

			authed.POST("/child-profiles", storyHdl.CreateProfile)
			authed.GET("/child-profiles", storyHdl.ListProfiles)
			authed.GET("/child-profiles/:id", storyHdl.GetProfile)
			authed.PATCH("/child-profiles/:id", storyHdl.UpdateProfile)
			authed.DELETE("/child-profiles/:id", storyHdl.DeleteProfile)

			authed.POST("/voice-presets", storyHdl.CreatePreset)
			authed.GET("/voice-presets", storyHdl.ListPresets)
			authed.GET("/voice-presets/:id", storyHdl.GetPreset)
			authed.PATCH("/voice-presets/:id", storyHdl.UpdatePreset)
			authed.DELETE("/voice-presets/:id", storyHdl.DeletePreset)

			authed.POST("/stories/ideas", storyHdl.GenerateIdeas)
			authed.POST("/stories/generate", storyHdl.GenerateStory)
			authed.GET("/stories", storyHdl.ListStories)
			authed.GET("/stories/favorites", storyHdl.ListFavorites)
			authed.GET("/stories/:id", storyHdl.GetStory)
			authed.DELETE("/stories/:id", storyHdl.DeleteStory)
			authed.POST("/stories/:id/voice", storyHdl.SynthesizeAudio)
			authed.POST("/stories/:id/favorite", storyHdl.ToggleFavorite)

			authed.GET("/children/:child_id/stories", storyHdl.ListStoriesByChild)
		}
	}

	return nil
}

// presignExpiry reads the configured presign lifetime of the active backend
func (s *Server) presignExpiry() time.Duration {
	seconds := 0
	switch s.cfg.Storage.Type {
	case "local":
		if s.cfg.Storage.Local != nil {
			seconds = s.cfg.Storage.Local.PresignExpiry
		}
	case "oss":
		if s.cfg.Storage.OSS != nil {
			seconds = s.cfg.Storage.OSS.PresignExpiry
		}
	}
	if seconds <= 0 {
		return time.Hour
	}
	return time.Duration(seconds) * time.Second
}

// Run starts the server and blocks until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")

		if err := s.mongo.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close MongoDB connection")
		}
		if s.redis != nil {
			if err := s.redis.Close(); err != nil {
				log.Error().Err(err).Msg("failed to close Redis connection")
			}
		}

		return srv.Shutdown(context.Background())
	case err := <-errCh:
		return err
	}
}

// Engine returns the gin engine (for tests)
func (s *Server) Engine() *gin.Engine {
	return s.engine
}
