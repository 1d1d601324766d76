package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/artvault/artvault/internal/httpapi/handlers"
	"github.com/artvault/artvault/internal/httpapi/middleware"
	"github.com/artvault/artvault/pkg/config"
	"github.com/artvault/artvault/pkg/telemetry"
)

const defaultShutdownTimeout = 10 * time.Second

type APIServer struct {
	config   *config.AppConfig
	router   *gin.Engine
	server   *http.Server
	handlers *handlers.Handlers
	metrics  *telemetry.HTTPMetrics
}

// NewAPIServer builds the router. metrics may be nil.
func NewAPIServer(cfg *config.AppConfig, h *handlers.Handlers, metrics *telemetry.HTTPMetrics) *APIServer {
	if cfg.App.Environment == "local" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	s := &APIServer{
		config:   cfg,
		router:   router,
		handlers: h,
		metrics:  metrics,
	}

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(s.metrics))
	router.Use(middleware.CORS(&s.config.APIServer))

	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) setupRoutes() {
	s.router.GET("/status", s.handlers.Status)

	v1 := s.router.Group("/api/v1")
	v1.Use(middleware.APIKeyAuth(s.config))
	v1.Use(middleware.SanitizeInput())

	artworkCache := v1.Group("/artwork-cache")
	artworkCache.GET("", s.handlers.ListArtworkDetails)
	artworkCache.GET("/:id", s.handlers.GetArtworkDetail)
	artworkCache.PUT("/:id", s.handlers.PutArtworkDetail)
	artworkCache.DELETE("/:id", s.handlers.DeleteArtworkDetail)

	productive := v1.Group("/productive-artists")
	productive.GET("", s.handlers.ListProductiveArtists)
	productive.GET("/:artistId/:artistName", s.handlers.GetProductiveArtist)
	productive.PUT("/:artistId/:artistName", s.handlers.PutProductiveArtist)
	productive.DELETE("/:artistId/:artistName", s.handlers.DeleteProductiveArtist)

	artists := v1.Group("/artists")
	artists.GET("", s.handlers.ListArtists)
	artists.POST("", s.handlers.CreateArtist)
	artists.GET("/:id", s.handlers.GetArtist)
	artists.PUT("/:id", s.handlers.UpdateArtist)
	artists.DELETE("/:id", s.handlers.DeleteArtist)
	artists.GET("/:id/artworks", s.handlers.ListArtistArtworks)

	artworks := v1.Group("/artworks")
	artworks.GET("", s.handlers.ListArtworks)
	artworks.POST("", s.handlers.CreateArtwork)
	artworks.GET("/:id", s.handlers.GetArtwork)
	artworks.PUT("/:id", s.handlers.UpdateArtwork)
	artworks.DELETE("/:id", s.handlers.DeleteArtwork)

	admin := v1.Group("/admin")
	admin.Use(middleware.BasicAuth(s.config))
	admin.POST("/sync", s.handlers.TriggerSync)
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *APIServer) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.APIServer.Host, s.config.APIServer.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.StopServer(ctx)
	logrus.WithField("address", s.server.Addr).Info("starting http API server")
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			logrus.Info("http API server stopped")
			return nil
		}
		return fmt.Errorf("failed to start http API server : %w", err)
	}
	return nil
}

// StopServer waits for ctx to end and shuts the server down.
func (s *APIServer) StopServer(ctx context.Context) {
	<-ctx.Done()
	logrus.Info("turning down http API server")

	timeout := s.config.APIServer.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Error during HTTP API server shutdown")
	}
}
