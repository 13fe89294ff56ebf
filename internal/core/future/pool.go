package future

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/mirrorbrook/trickle/internal/infrastructure/metrics"
	"github.com/mirrorbrook/trickle/pkg/validation"
)

// PoolConfig tunes a Pool's worker count and per-worker queue depth.
type PoolConfig struct {
	// Workers is the number of goroutines dispatching submitted tasks.
	// Defaults to runtime.NumCPU() when zero.
	Workers int `json:"workers" validate:"omitempty,min=1"`
	// QueueCapacity bounds each worker's task queue. Defaults to 100 when zero.
	QueueCapacity int `json:"queue_capacity" validate:"omitempty,min=1"`
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
		if c.Workers < 1 {
			c.Workers = 1
		}
	}
	if c.QueueCapacity <= 0 {
		c.QueueCapacity = 100
	}
	return c
}

// Pool is a work-stealing, goroutine-backed ExecutionContext: tasks are
// assigned round-robin to per-worker queues, and an idle worker steals from
// its peers before blocking. A single-threaded graph run degenerates to
// strictly sequential dispatch; a Pool with Workers > 1 runs independent
// branches of the graph concurrently.
type Pool struct {
	queues  []chan func()
	counter int64
	wg      sync.WaitGroup
	stop    chan struct{}
}

// NewPool validates cfg and starts a running Pool. Callers should Stop it
// once the graph runs it backs are done.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if err := validation.Struct(cfg); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	p := &Pool{
		queues: make([]chan func(), cfg.Workers),
		stop:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), cfg.QueueCapacity)
	}
	for i := 0; i < cfg.Workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
	metrics.SetSchedulerWorkers(cfg.Workers)
	return p, nil
}

// Submit dispatches task to a worker queue, round-robin.
func (p *Pool) Submit(task func()) {
	worker := atomic.AddInt64(&p.counter, 1) % int64(len(p.queues))
	metrics.AddSchedulerQueued(1)
	p.queues[worker] <- task
}

// Stop signals every worker to exit, and waits for them. Queued tasks are not
// drained: a task still waiting in a queue when Stop is called may never run.
func (p *Pool) Stop() {
	close(p.stop)
	p.wg.Wait()
}

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for {
		select {
		case <-p.stop:
			return
		case task := <-p.queues[id]:
			task()
		default:
			if !p.steal(id) {
				select {
				case <-p.stop:
					return
				case task := <-p.queues[id]:
					task()
				}
			}
		}
	}
}

func (p *Pool) steal(from int) bool {
	for i := range p.queues {
		if i == from {
			continue
		}
		select {
		case task := <-p.queues[i]:
			metrics.AddSchedulerStolen(1)
			task()
			return true
		default:
		}
	}
	return false
}
