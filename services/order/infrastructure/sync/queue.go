// Package sync implements the best-effort background reconciliation between
// the primary order store and an optional remote mirror.
//
// Mirror work runs on a supervised task queue instead of bare goroutines:
// every task is named, failures are retried with backoff and logged, and
// nothing ever propagates back to the caller that scheduled the task.
package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"github.com/ghuser/orderflow/pkg/logger"
)

const taskTimeout = 30 * time.Second

// Task is one unit of background work.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Queue runs tasks on a fixed pool of workers over a bounded channel.
// Enqueue never blocks; when the queue is full the task is dropped and
// logged, which is acceptable because every mirror task is re-derivable
// from the next write or read.
type Queue struct {
	tasks   chan Task
	wg      gosync.WaitGroup
	mu      gosync.Mutex
	closed  bool
	retries int
	delay   time.Duration
	log     logger.Logger
}

// NewQueue starts workers goroutines draining a queue of the given size.
// retries is the number of additional attempts after the first failure.
func NewQueue(size, workers, retries int, log logger.Logger) *Queue {
	if size <= 0 {
		size = 64
	}
	if workers <= 0 {
		workers = 1
	}
	q := &Queue{
		tasks:   make(chan Task, size),
		retries: retries,
		delay:   time.Second,
		log:     log,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Enqueue schedules t and returns immediately. Reports whether the task was
// accepted; a full or closed queue drops the task.
func (q *Queue) Enqueue(t Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	select {
	case q.tasks <- t:
		return true
	default:
		q.log.Warn("sync: queue full, dropping task", "task", t.Name)
		return false
	}
}

// Close stops accepting tasks and waits for in-flight work to finish.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.tasks)
	q.mu.Unlock()
	q.wg.Wait()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for t := range q.tasks {
		q.run(t)
	}
}

// run executes one task with a deadline and bounded retries. Failures are
// logged and swallowed; there is no caller left to report them to.
func (q *Queue) run(t Task) {
	var err error
	delay := q.delay
	for attempt := 0; attempt <= q.retries; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}
		err = q.attempt(t)
		if err == nil {
			return
		}
		q.log.Warn("sync: task failed",
			"task", t.Name,
			"attempt", attempt+1,
			"max_attempts", q.retries+1,
			"error", err,
		)
	}
	q.log.Error("sync: task abandoned", "task", t.Name, "error", err)
}

func (q *Queue) attempt(t Task) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return t.Run(ctx)
}
