package scheduler

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultInterval  = 30 * time.Second
	defaultBatchSize = 100
)

// Scheduler drains the document_events outbox in the background. Events are
// claimed per batch with row locks so multiple instances can run safely.
type Scheduler struct {
	db  *gorm.DB
	log *zap.Logger

	interval  time.Duration
	batchSize int

	cancel context.CancelFunc
	done   chan struct{}
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func New(p Params) *Scheduler {
	return &Scheduler{
		db:        p.DB,
		log:       p.Log.Named("scheduler"),
		interval:  defaultInterval,
		batchSize: defaultBatchSize,
	}
}

var Module = fx.Module("scheduler",
	fx.Provide(New),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, s *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			s.Stop(ctx)
			return nil
		},
	})
}

func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.DispatchPending(ctx); err != nil {
					s.log.Warn("event dispatch pass failed", zap.Error(err))
				}
			}
		}
	}()
}

func (s *Scheduler) Stop(ctx context.Context) {
	if s.cancel == nil {
		return
	}
	s.cancel()
	select {
	case <-s.done:
	case <-ctx.Done():
	}
}
