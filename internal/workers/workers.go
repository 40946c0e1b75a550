package workers

import (
	"context"
	"errors"
	"sync"
)

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Len reports the number of managed workers.
func (w *Workers) Len() int {
	return len(w.workers)
}

// Run starts every worker in its own goroutine and blocks until all of
// them returned. The errors of the workers are joined.
func (w *Workers) Run(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, worker := range w.workers {
		wg.Go(func() {
			if err := worker.Run(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
	}

	wg.Wait()
	return errors.Join(errs...)
}
