package worker

import (
	"context"
	"sync"
)

// Task represents a unit of work executed by the pool.
type Task func()

// Pool runs submitted tasks on a fixed set of goroutines.
type Pool interface {
	// Submit blocks until a worker accepts t. It returns false without
	// running t once the pool's context is done.
	Submit(Task) bool
	// Stop waits for accepted tasks to finish.
	Stop()
}

// NewPool starts n workers bound to ctx. n<=0 defaults to 1.
func NewPool(ctx context.Context, n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{ctx: ctx, jobs: make(chan Task)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					job()
				}
			}
		}()
	}
	return p
}

type pool struct {
	ctx  context.Context
	jobs chan Task
	wg   sync.WaitGroup
}

func (p *pool) Submit(t Task) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobs <- t:
		return true
	case <-p.ctx.Done():
		return false
	}
}

func (p *pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}
