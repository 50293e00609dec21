// Package server initializes and runs the files manager API: it opens the
// metadata database and Redis, wires services into the HTTP and gRPC
// servers and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/redisx"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/metrics"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/filesmanager/internal/server/services"
	"github.com/redis/go-redis/v9"

	gs "github.com/dmitrijs2005/filesmanager/internal/server/grpc"
	hs "github.com/dmitrijs2005/filesmanager/internal/server/http"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	redis  *redis.Client
	http   *hs.HTTPServer
	grpc   *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogBackend, logging.Output(c.LogFile))

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	rdb, err := redisx.Open(ctx, redisx.Options{Addr: c.RedisAddr, Password: c.RedisPassword, DB: c.RedisDB})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	blobs, err := blobstore.FromConfig(ctx, c)
	if err != nil {
		db.Close()
		rdb.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	m := metrics.New()
	sessionRepo := sessions.NewRedisRepository(rdb)
	jobs := queue.NewRedisQueue(rdb, c.QueueName)

	auth := services.NewAuthService(db, rm, sessionRepo, c.SessionValidityDuration)
	users := services.NewUserService(db, rm)
	files := services.NewFileService(db, rm, blobs, jobs, logger, m.EnqueueFailures)
	status := services.NewStatusService(db, rm, sessionRepo)

	httpServer := hs.NewHTTPServer(c.EndpointAddrHTTP, logger, auth, users, files, status, m)
	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, map[string]gs.Check{
		"db":    db.PingContext,
		"redis": sessionRepo.Ping,
	})

	return &App{
		config: c,
		logger: logger,
		db:     db,
		redis:  rdb,
		http:   httpServer,
		grpc:   grpcServer,
	}, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.grpc.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.close(ctx)
}

func (app *App) close(ctx context.Context) {
	if err := app.redis.Close(); err != nil {
		app.logger.Error(ctx, "redis close", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
