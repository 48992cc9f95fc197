package payments

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task applies one payment event to a ledger.
type Task func() error

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

// WorkerPool bounds how many payment events are applied concurrently. Close
// stops intake and drains everything already queued, so a consumer shutdown
// never drops a fetched payment.
type WorkerPool struct {
	tasks     chan Task
	workers   sync.WaitGroup
	closeOnce sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{tasks: make(chan Task, size)}
	wp.workers.Add(size)
	for i := 0; i < size; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.workers.Done()
	for task := range wp.tasks {
		if err := task(); err != nil {
			zap.L().Error("payment task failed", zap.Error(err))
		}
	}
}

// AddTask queues a task, blocking while all workers are busy and the queue is
// full. Must not be called after Close.
func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

// Close stops intake and blocks until every queued task has run.
func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.tasks)
	})
	wp.workers.Wait()
}
