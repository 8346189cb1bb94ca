// Package workerpool runs submitted tasks on a fixed number of goroutines
// fed from a bounded queue.
package workerpool

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("worker pool closed")

// Task is one unit of work. Fn must be safe to run concurrently with other
// tasks. If ResultC is non-nil it receives exactly one Result, so it should
// be buffered or actively read.
type Task struct {
	Fn      func() (any, error)
	ResultC chan Result
}

type Result struct {
	Value any
	Err   error
}

type WorkerPool struct {
	tasks chan Task
	done  chan struct{}
	once  sync.Once
	wg    sync.WaitGroup
}

// New starts workerCount workers behind a queue of queueSize tasks.
// Counts below one are raised to one.
func New(workerCount, queueSize int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	wp := &WorkerPool{
		tasks: make(chan Task, queueSize),
		done:  make(chan struct{}),
	}
	wp.wg.Add(workerCount)
	for i := 0; i < workerCount; i++ {
		go wp.worker()
	}
	return wp
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for {
		select {
		case <-wp.done:
			return
		case task := <-wp.tasks:
			res, err := task.Fn()
			if task.ResultC != nil {
				task.ResultC <- Result{Value: res, Err: err}
			}
		}
	}
}

// Submit queues a task, blocking while the queue is full. It gives up when
// ctx is cancelled or the pool is closed.
func (wp *WorkerPool) Submit(ctx context.Context, task Task) error {
	select {
	case <-wp.done:
		return ErrClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wp.done:
		return ErrClosed
	case wp.tasks <- task:
		return nil
	}
}

// Done is closed once Close has been called. Tasks still queued at that
// point are dropped and never report a Result.
func (wp *WorkerPool) Done() <-chan struct{} {
	return wp.done
}

// Close stops the workers and waits for running tasks to finish.
// It is safe to call more than once.
func (wp *WorkerPool) Close() {
	wp.once.Do(func() { close(wp.done) })
	wp.wg.Wait()
}
