package pool

import "sync"

// Pool is a fixed-size worker pool for detached side effects: post-create
// stock fan-out and cache purges that the response must not wait on. Tasks
// report nothing back and are expected to log their own failures.
type Pool struct {
	jobs chan func()
	wg   sync.WaitGroup
}

func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{jobs: make(chan func(), workers*2)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer p.wg.Done()
			for f := range p.jobs {
				if f != nil {
					f()
				}
			}
		}()
	}
	return p
}

func (p *Pool) Submit(f func()) {
	p.jobs <- f
}

// Close stops intake; Wait blocks until queued tasks drain. Shutdown calls
// both so in-flight cache writes and stock events get a chance to land.
func (p *Pool) Close() {
	close(p.jobs)
}

func (p *Pool) Wait() {
	p.wg.Wait()
}
