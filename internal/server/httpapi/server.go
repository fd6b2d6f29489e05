// Package httpapi exposes the storage service over HTTP. Handlers are thin
// glue: decode, call a service, map the error class to a status code.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LeadConsult/alx-files-manager/internal/logging"
	"github.com/LeadConsult/alx-files-manager/internal/server/models"
	"github.com/LeadConsult/alx-files-manager/internal/server/services"
)

type userSvc interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Connect(ctx context.Context, email, password string) (string, error)
	Disconnect(ctx context.Context, token string) error
	Identify(ctx context.Context, token string) (*models.User, error)
}

type fileSvc interface {
	Upload(ctx context.Context, ownerID string, in services.UploadInput) (*models.File, error)
	GetOwned(ctx context.Context, userID, fileID string) (*models.File, error)
	List(ctx context.Context, userID, parentID string, page int) ([]*models.File, error)
	SetPublication(ctx context.Context, userID, fileID string, isPublic bool) (*models.File, error)
	GetContent(ctx context.Context, viewerID, fileID string, size int) ([]byte, *models.File, error)
}

type statsSvc interface {
	Stats(ctx context.Context) (*services.Stats, error)
	Status(ctx context.Context) *services.Status
}

type HTTPServer struct {
	address string
	users   userSvc
	files   fileSvc
	stats   statsSvc
	logger  logging.Logger
}

func NewHTTPServer(a string, l logging.Logger, us userSvc, fs fileSvc, ss statsSvc) (*HTTPServer, error) {
	return &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		users:   us,
		files:   fs,
		stats:   ss,
	}, nil
}

// Run serves until ctx is done, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
