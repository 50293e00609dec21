// Package worker runs the thumbnail consumer pool and its metrics endpoint.
package worker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/filesmanager/internal/common"
	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/redisx"
	"github.com/dmitrijs2005/filesmanager/internal/server/blobstore"
	"github.com/dmitrijs2005/filesmanager/internal/server/config"
	"github.com/dmitrijs2005/filesmanager/internal/server/metrics"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"github.com/dmitrijs2005/filesmanager/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/filesmanager/internal/server/thumbnail"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	redis   *redis.Client
	pool    *thumbnail.Pool
	metrics *metrics.Metrics
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(c.LogBackend, logging.Output(c.LogFile)).With("app", "worker")

	db, err := repomanager.OpenDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
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
	rm := repomanager.NewPostgresRepositoryManager()
	processor := thumbnail.NewProcessor(rm.Files(db), blobs, common.ThumbnailWidths)
	pool := thumbnail.NewPool(queue.NewRedisQueue(rdb, c.QueueName), processor, c.WorkerConcurrency, logger, m)

	return &App{config: c, logger: logger, db: db, redis: rdb, pool: pool, metrics: m}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting worker...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := app.pool.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		app.logger.Info(ctx, "Starting metrics endpoint", "address", app.config.EndpointAddrMetrics)
		if err := app.metrics.Serve(ctx, app.config.EndpointAddrMetrics); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.redis.Close(); err != nil {
		app.logger.Error(ctx, "redis close", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close", "error", err)
	}
	app.logger.Info(ctx, "Worker stopped")
}
