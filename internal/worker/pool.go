// Package worker parallelizes batch verification across persons. One
// verify run stays fully sequential internally; workers only fan out
// across person files, and they share the verifier's provider limiter
// so the per-provider request budget holds regardless of worker count.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of batch work
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job
type Result interface {
	GetError() error
}

// Pool executes jobs with a bounded number of workers
type Pool struct {
	workers int
}

// NewPool creates a pool; workers below 1 are clamped to 1
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns their results in completion
// order. Cancellation stops dispatching new jobs; in-flight jobs see
// the cancelled context and wind down on their own.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	queue := make(chan Job)
	resultCh := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range queue {
				resultCh <- job.Execute(ctx)
			}
		}()
	}

dispatch:
	for _, job := range jobs {
		select {
		case <-ctx.Done():
			break dispatch
		case queue <- job:
		}
	}
	close(queue)

	wg.Wait()
	close(resultCh)

	results := make([]Result, 0, len(jobs))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}
