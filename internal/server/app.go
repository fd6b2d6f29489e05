// Package server initializes and runs the files-manager application.
// It wires the database, Redis, object storage, the HTTP endpoint and the
// thumbnail worker pool, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/LeadConsult/alx-files-manager/internal/logging"
	"github.com/LeadConsult/alx-files-manager/internal/server/blob"
	"github.com/LeadConsult/alx-files-manager/internal/server/config"
	"github.com/LeadConsult/alx-files-manager/internal/server/httpapi"
	"github.com/LeadConsult/alx-files-manager/internal/server/queue"
	"github.com/LeadConsult/alx-files-manager/internal/server/repositories/repomanager"
	"github.com/LeadConsult/alx-files-manager/internal/server/services"
	"github.com/LeadConsult/alx-files-manager/internal/server/sessions"
	"github.com/LeadConsult/alx-files-manager/internal/server/thumbs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config *config.Config
	logger logging.Logger
}

func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	return &App{config: c, logger: logger}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc,
	us *services.UserService, fs *services.FileService, ss *services.StatsService) {

	s, err := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, us, fs, ss)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	} else {

		if err := s.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	db, err := sql.Open("pgx", app.config.DatabaseDSN)
	if err != nil {
		app.logger.Error(ctx, "db init error", "error", err.Error())
		return
	}
	defer db.Close()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.logger.Error(ctx, "migration error", "error", err.Error())
		return
	}

	redisClient := redis.NewClient(&redis.Options{Addr: app.config.RedisAddr})
	defer redisClient.Close()

	s3Client, err := blob.NewS3Client(ctx, app.config.S3RootUser, app.config.S3RootPassword,
		app.config.S3Region, app.config.S3BaseEndpoint)
	if err != nil {
		app.logger.Error(ctx, "object storage init error", "error", err.Error())
		return
	}
	blobs := blob.NewS3Storage(s3Client, app.config.S3Bucket)

	sessionStore := sessions.NewRedisStore(redisClient, app.config.SessionTTL)
	jobQueue := queue.NewRedisQueue(redisClient)

	userService := services.NewUserService(db, rm, sessionStore)
	fileService := services.NewFileService(db, rm, blobs, jobQueue, app.logger)
	statsService := services.NewStatsService(db, rm, redisClient)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc, userService, fileService, statsService)
	}()

	for i := 0; i < app.config.ThumbnailWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			thumbs.NewWorker(rm.Files(db), blobs, jobQueue, app.logger).Run(ctx)
		}()
	}

	wg.Wait()

	app.logger.Info(ctx, "App stopped")
}
