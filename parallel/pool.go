package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	CloseFunc  func()
)

// Pool runs submitted functions on a fixed set of goroutines. With a single
// worker everything runs inline on the caller's goroutine. Do and Rows must
// not be called after Close.
type Pool struct {
	wg      sync.WaitGroup
	workers int
	Do      WorkerFunc
	Close   CloseFunc
}

func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Close: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		pool.Do = func(f func()) {
			workChan <- f
		}
		pool.Close = sync.OnceFunc(func() {
			close(workChan)
			pool.wg.Wait()
		})
	}

	return pool
}

func (p *Pool) Workers() int {
	return p.workers
}

// Rows splits [0, height) into at most Workers() contiguous, disjoint bands
// and calls fn once per band. It returns after every call has finished, so
// whatever fn wrote is visible to the caller.
func (p *Pool) Rows(height int, fn func(y0, y1 int)) {
	if height <= 0 {
		return
	}

	bands := min(p.workers, height)
	if bands <= 1 {
		fn(0, height)
		return
	}

	var done sync.WaitGroup
	for i := range bands {
		y0 := i * height / bands
		y1 := (i + 1) * height / bands
		done.Add(1)
		p.Do(func() {
			defer done.Done()
			fn(y0, y1)
		})
	}
	done.Wait()
}
