// Package workers owns the process-wide execution runtime that the
// sketching and distance engine runs on. It is configured once, before any
// work starts, with the thread count resolved from the command line.
package workers

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

var (
	ErrAlreadyConfigured = errors.New("worker runtime already configured")
	ErrInvalidThreads    = errors.New("thread count must be positive")
)

type Config struct {
	Threads int
}

type Runtime struct {
	threads   int
	prevProcs int
}

var (
	mu      sync.Mutex
	current *Runtime
)

// Configure sizes the global runtime. Only one runtime may be live at a time.
func Configure(cfg Config) (*Runtime, error) {
	if cfg.Threads <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidThreads, cfg.Threads)
	}

	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return nil, fmt.Errorf("%w with %d threads", ErrAlreadyConfigured, current.threads)
	}

	current = &Runtime{
		threads:   cfg.Threads,
		prevProcs: runtime.GOMAXPROCS(cfg.Threads),
	}
	return current, nil
}

func (r *Runtime) Threads() int {
	return r.threads
}

// Release restores the previous GOMAXPROCS and frees the slot for a new Configure.
func (r *Runtime) Release() {
	mu.Lock()
	defer mu.Unlock()

	if current != r {
		return
	}
	runtime.GOMAXPROCS(r.prevProcs)
	current = nil
}
