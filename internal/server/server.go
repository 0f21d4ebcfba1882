package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"platform-auth/internal/config"
	"platform-auth/internal/handler"
	"platform-auth/internal/middleware"
	"platform-auth/internal/repository"
	"platform-auth/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	cfg    *config.Config
	log    *logrus.Logger
	zlog   *zap.Logger
}

func NewServer(db *sqlx.DB, cfg *config.Config, zlog *zap.Logger, log *logrus.Logger) (*Server, error) {
	s := &Server{
		router: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		zlog:   zlog,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	// Initialize Auth components
	userRepo := repository.NewUserRepository(s.db, s.zlog)
	sessionRepo := repository.NewSessionRepository(s.db, s.zlog)
	sessionService := service.NewSessionService(sessionRepo, s.zlog)

	codec, err := service.NewTokenCodec(s.cfg.Auth.SecretKey, s.cfg.Auth.Algorithm)
	if err != nil {
		return err
	}

	tokenTTL := time.Duration(s.cfg.Auth.TokenExpMinutes) * time.Minute
	authService := service.NewAuthService(userRepo, sessionService, service.NewPasswordHasher(), codec, tokenTTL, s.zlog)

	authHandler := handler.NewAuthHandler(authService, s.log)
	healthHandler := handler.NewHealthHandler(s.db, s.log)

	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.zlog))
	s.router.Use(middleware.Metrics())
	s.router.Use(middleware.AuthMiddleware(authService, s.zlog))

	// Health check and metrics, both on the auth allow-list
	s.router.GET("/healthz", healthHandler.Health)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Authentication routes
	authGroup := s.router.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout)

	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("Server shutdown failed: %v", err)
		}
	}()

	s.log.Infof("Server starting on port %s...", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
