package thumbnail

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/filesmanager/internal/logging"
	"github.com/dmitrijs2005/filesmanager/internal/server/models"
	"github.com/dmitrijs2005/filesmanager/internal/server/queue"
	"golang.org/x/sync/errgroup"
)

const (
	retryDelay = time.Second
	ackTimeout = 5 * time.Second
)

// Consumer is the dequeue side of the job queue.
type Consumer interface {
	Dequeue(ctx context.Context) (*queue.Delivery, error)
	Ack(ctx context.Context, d *queue.Delivery) error
	Recover(ctx context.Context) (int, error)
}

// JobProcessor handles one job.
type JobProcessor interface {
	Process(ctx context.Context, job models.ThumbnailJob) (models.ThumbnailResult, error)
}

// Observer receives job and rendition outcomes; *metrics.Metrics satisfies it.
type Observer interface {
	ObserveJob(failed bool, d time.Duration)
	ObserveThumbnail(width int, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveJob(bool, time.Duration) {}
func (nopObserver) ObserveThumbnail(int, error)    {}

// Pool runs a fixed number of consumers against the queue.
type Pool struct {
	consumer    Consumer
	processor   JobProcessor
	concurrency int
	logger      logging.Logger
	observer    Observer
}

func NewPool(c Consumer, p JobProcessor, concurrency int, logger logging.Logger, o Observer) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	if o == nil {
		o = nopObserver{}
	}
	return &Pool{
		consumer:    c,
		processor:   p,
		concurrency: concurrency,
		logger:      logger.With("module", "thumbnail"),
		observer:    o,
	}
}

// Run requeues jobs abandoned by a previous run, then consumes until ctx is
// done. A failing job never stops the pool.
func (p *Pool) Run(ctx context.Context) error {
	n, err := p.consumer.Recover(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		p.logger.Warn(ctx, "requeued abandoned jobs", "count", n)
	}

	p.logger.Info(ctx, "starting thumbnail workers", "concurrency", p.concurrency)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < p.concurrency; i++ {
		g.Go(func() error {
			p.consume(ctx, i)
			return nil
		})
	}
	return g.Wait()
}

func (p *Pool) consume(ctx context.Context, worker int) {
	logger := p.logger.With("worker", worker)

	for ctx.Err() == nil {
		d, err := p.consumer.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, queue.ErrEmpty) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "dequeue failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}

		p.handle(ctx, logger, d)
	}
}

func (p *Pool) handle(ctx context.Context, logger logging.Logger, d *queue.Delivery) {
	start := time.Now()
	failed := p.process(ctx, logger, d)
	if failed && ctx.Err() != nil {
		// Left in the processing list; Recover requeues it on the next start.
		logger.Warn(ctx, "thumbnail job interrupted by shutdown")
		return
	}
	p.observer.ObserveJob(failed, time.Since(start))

	ackCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ackTimeout)
	defer cancel()
	if err := p.consumer.Ack(ackCtx, d); err != nil {
		logger.Error(ctx, "ack failed", "error", err)
	}
}

func (p *Pool) process(ctx context.Context, logger logging.Logger, d *queue.Delivery) bool {
	job, err := d.Job()
	if err != nil {
		logger.Error(ctx, "thumbnail job failed", "error", err)
		return true
	}

	result, err := p.processor.Process(ctx, job)
	if err != nil {
		logger.Error(ctx, "thumbnail job failed", "fileId", job.FileID, "userId", job.UserID, "error", err)
		return true
	}

	for _, o := range result.Outcomes {
		p.observer.ObserveThumbnail(o.Width, o.Err)
		if o.Err != nil {
			logger.Warn(ctx, "thumbnail failed", "fileId", job.FileID, "width", o.Width, "error", o.Err)
		}
	}

	failed := result.Succeeded() < len(result.Outcomes)
	logger.Info(ctx, "thumbnail job finished",
		"fileId", result.FileID,
		"succeeded", result.Succeeded(),
		"total", len(result.Outcomes),
	)
	return failed
}
