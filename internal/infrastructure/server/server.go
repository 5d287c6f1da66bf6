package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/clio-assist/clio/internal/api/http"
	"github.com/clio-assist/clio/internal/api/middleware"
	"github.com/clio-assist/clio/internal/domain/history"
	"github.com/clio-assist/clio/internal/domain/router"
	"github.com/clio-assist/clio/internal/domain/session"
	"github.com/clio-assist/clio/internal/infrastructure/config"
	"github.com/clio-assist/clio/internal/infrastructure/logging"
	"github.com/clio-assist/clio/internal/infrastructure/monitoring"
	"github.com/clio-assist/clio/internal/providers/genai"
	"github.com/clio-assist/clio/internal/providers/lookup"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	engine   *gin.Engine
	sessions *session.Manager
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("Initializing clio assistant",
		zap.String("port", cfg.Server.Port),
		zap.String("model", cfg.Gemini.Model),
	)

	metrics := monitoring.NewMetrics()

	// Upstream answer collaborators.
	lookupClient := lookup.New(cfg.Lookup.BaseURL, logger)
	model, err := genai.New(genai.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}

	// Core pipeline.
	extractor := history.NewExtractor(logger)
	queryRouter := router.New(lookupClient, model, extractor, logger).
		WithMetrics(metrics)
	if cfg.History.OverridePath != "" {
		logger.Info("history store override active",
			zap.String("path", cfg.History.OverridePath))
		queryRouter.WithOverridePath(cfg.History.OverridePath)
	}

	sessions := session.NewManager(cfg.Session.TTL)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(monitoring.Middleware(metrics))
	engine.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(sessions, queryRouter, logger, metrics)

	engine.GET("/", handlers.Root)
	engine.GET("/health", handlers.Health)

	engine.POST("/search", handlers.Search)
	engine.POST("/privacy", handlers.Privacy)
	engine.POST("/enable-history", handlers.EnableHistory)

	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		engine:   engine,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.engine.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")
	s.sessions.Close()
	s.logger.Sync()
	return nil
}
