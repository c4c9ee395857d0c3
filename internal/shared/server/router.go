package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coverletter-backend/internal/letters"
	"coverletter-backend/internal/llm/gemini"
	"coverletter-backend/internal/resumes"
	"coverletter-backend/internal/shared/config"
	"coverletter-backend/internal/shared/server/middleware"
	"coverletter-backend/internal/shared/storage/object"
	"coverletter-backend/internal/shared/storage/object/local"
	"coverletter-backend/internal/shared/storage/object/s3"
)

const generateGroup = "GENERATE"

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(ctx context.Context, cfg config.Config) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, time.Duration(cfg.GenTimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	letterSvc := &letters.Service{
		LLM:           llmClient,
		Model:         cfg.LLMModel,
		FallbackModel: cfg.LLMFallbackModel,
		Store:         store,
		Repo:          letters.NewMemoryRepo(),
	}
	resumeSvc := resumes.NewService(store)

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				middleware.DefaultGroup: {Rate: 5, Burst: 20},
				generateGroup:           {Rate: 0.2, Burst: 3},
			},
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodPost && strings.HasSuffix(c.FullPath(), "/letters") {
					return generateGroup
				}
				return middleware.DefaultGroup
			},
		}),
	)

	api := engine.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	resumes.NewHandler(resumeSvc, cfg.MaxUploadBytes).RegisterRoutes(api)
	letters.NewHandler(letterSvc).RegisterRoutes(api)

	return engine, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return local.New(cfg.LocalStoreDir), nil
	}
}

// Addr returns a normalized listen address for the given port.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
