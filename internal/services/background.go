package services

import (
	"context"
	"sync"
	"time"

	"github.com/tangentdigitalagency/mount-sinai-backend/internal/logger"
)

// BackgroundTasks tracks detached work spawned off the request path so it
// can be drained at shutdown instead of being orphaned mid-write.
type BackgroundTasks struct {
	log    *logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBackgroundTasks(log *logger.Logger) *BackgroundTasks {
	ctx, cancel := context.WithCancel(context.Background())
	return &BackgroundTasks{
		log:    log.With("service", "BackgroundTasks"),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Go runs fn detached from the caller. The function receives a context
// tied to process lifetime, not to the originating request, so the task
// survives the response being sent.
func (bt *BackgroundTasks) Go(name string, fn func(ctx context.Context)) {
	bt.wg.Add(1)
	go func() {
		defer bt.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				bt.log.Error("Background task panicked", "task", name, "panic", r)
			}
		}()
		fn(bt.ctx)
	}()
}

// Shutdown waits for in-flight tasks up to the given grace period, then
// cancels whatever is left.
func (bt *BackgroundTasks) Shutdown(grace time.Duration) {
	done := make(chan struct{})
	go func() {
		bt.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(grace):
		bt.log.Warn("Background tasks did not drain before deadline", "grace", grace.String())
	}
	bt.cancel()
}
