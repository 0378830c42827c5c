package worker

import (
	"runtime"
	"sync"
)

const (
	MaxWorkersCountNumCPU    = -1
	MaxWorkersCountUnlimited = 0
)

type SimpleJob func()

// Pool runs jobs concurrently, at most maxWorkers at a time.
type Pool interface {
	Do(SimpleJob)
	Wait()
}

type pool struct {
	running sync.WaitGroup
	slots   chan struct{}
}

func NewPool(maxWorkers int) Pool {
	if maxWorkers <= MaxWorkersCountNumCPU {
		maxWorkers = runtime.NumCPU()
	}

	p := &pool{}
	if maxWorkers > MaxWorkersCountUnlimited {
		p.slots = make(chan struct{}, maxWorkers)
	}

	return p
}

// Do blocks while every worker is busy.
func (p *pool) Do(job SimpleJob) {
	p.running.Add(1)
	if p.slots != nil {
		p.slots <- struct{}{}
	}

	go func() {
		defer p.running.Done()
		if p.slots != nil {
			defer func() { <-p.slots }()
		}

		job()
	}()
}

func (p *pool) Wait() {
	p.running.Wait()
}
