package workers

import (
	"context"
	"sync"
)

type Workers struct {
	workers []Worker
}

// NewWorkers groups ws, skipping nil entries so disabled jobs can be passed
// in directly.
func NewWorkers(ws ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range ws {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

// Run starts every worker and waits for all of them to return.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() { worker.Run(ctx) })
	}
	wg.Wait()
}
