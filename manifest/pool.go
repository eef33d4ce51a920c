package manifest

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

// workerPool runs jobs on a bounded number of goroutines.
type workerPool struct {
	// semaphore bounds the number of jobs running at once.
	semaphore *semaphore.Weighted
	// ctx is a helper variable used by the semaphore.
	ctx context.Context
	// maxWorkers is the maximum number of workers we can have in the worker pool.
	maxWorkers int64

	wg sync.WaitGroup
}

// newWorkerPool returns a pool of maxWorkers workers, or GOMAXPROCS workers when
// maxWorkers is not positive.
func newWorkerPool(ctx context.Context, maxWorkers int) *workerPool {
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{
		semaphore:  semaphore.NewWeighted(int64(maxWorkers)),
		ctx:        ctx,
		maxWorkers: int64(maxWorkers),
	}
}

// Go blocks until a worker is free and runs job on it. It fails only when the
// context is done.
func (pool *workerPool) Go(job func()) error {
	if err := pool.ctx.Err(); err != nil {
		return errors.Wrapf(err, "workerPool.Go: Context done")
	}
	// First check if we can add another worker to the worker pool by trying to increment the semaphore.
	if err := pool.semaphore.Acquire(pool.ctx, 1); err != nil {
		return errors.Wrapf(err, "workerPool.Go: Problem acquiring semaphore")
	}

	pool.wg.Add(1)
	go func() {
		defer pool.wg.Done()
		defer pool.semaphore.Release(1)

		job()
	}()
	return nil
}

// Wait blocks until every started job has returned.
func (pool *workerPool) Wait() {
	pool.wg.Wait()
}
