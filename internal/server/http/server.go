// Package http exposes the files manager API over HTTP with gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/metrics"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
	Connect(ctx context.Context, email, password string) (string, error)
	Disconnect(ctx context.Context, token string) error
}

type UserManager interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type FileManager interface {
	Create(ctx context.Context, userID string, req services.UploadRequest) (*models.File, error)
	Get(ctx context.Context, userID, id string) (*models.File, error)
	List(ctx context.Context, userID string, parent models.ParentRef, page int) ([]*models.File, error)
}

type StatusReporter interface {
	Status(ctx context.Context) services.Status
	Stats(ctx context.Context) (*services.Stats, error)
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	auth    Authenticator
	users   UserManager
	files   FileManager
	status  StatusReporter
	metrics *metrics.Metrics
	engine  *gin.Engine
}

func NewHTTPServer(a string, l logging.Logger, auth Authenticator, users UserManager, files FileManager, status StatusReporter, m *metrics.Metrics) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		auth:    auth,
		users:   users,
		files:   files,
		status:  status,
		metrics: m,
	}
	s.engine = s.routes()
	return s
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger), observe(s.metrics))

	r.GET("/status", s.getStatus)
	r.GET("/stats", s.getStats)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	r.POST("/users", s.postUser)
	r.GET("/connect", s.connect)

	authed := r.Group("/", authGate(s.auth, s.logger))
	authed.GET("/disconnect", s.disconnect)
	authed.GET("/users/me", s.getMe)
	authed.POST("/files", s.postFile)
	authed.GET("/files/:id", s.getFile)
	authed.GET("/files", s.listFiles)

	return r
}

// Handler returns the routed engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
