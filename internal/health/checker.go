// Package health tracks the reachability of the search backend.
package health

import (
	"context"
	"sync"
	"time"

	"productsearch/internal/logger"
)

// Pinger reports whether the backend answers. *search.Client implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// State is the last known health of the backend.
// Healthy is nil until the first check completes.
type State struct {
	Healthy     *bool
	Checking    bool
	Err         string
	LastChecked time.Time
}

// Checker runs at most one health check at a time.
type Checker struct {
	pinger Pinger
	log    *logger.Logger
	now    func() time.Time

	mu    sync.Mutex
	state State
}

// NewChecker creates a checker for pinger.
func NewChecker(pinger Pinger, log *logger.Logger) *Checker {
	if log == nil {
		log = logger.Discard()
	}

	return &Checker{
		pinger: pinger,
		log:    log.With("component", "health"),
		now:    time.Now,
	}
}

// Check pings the backend once and records the outcome. A call made while
// another check is in flight returns false immediately without pinging.
func (c *Checker) Check(ctx context.Context) bool {
	c.mu.Lock()
	if c.state.Checking {
		c.mu.Unlock()

		return false
	}

	c.state.Checking = true
	c.state.Err = ""
	c.mu.Unlock()

	err := c.pinger.Ping(ctx)
	healthy := err == nil

	c.mu.Lock()
	c.state = State{
		Healthy:     &healthy,
		LastChecked: c.now(),
	}

	if err != nil {
		c.state.Err = err.Error()
	}
	c.mu.Unlock()

	if healthy {
		c.log.Info("backend health check successful")
	} else {
		c.log.Warn("backend health check failed", "error", err)
	}

	return healthy
}

// State returns a copy of the current state.
func (c *Checker) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	if s.Healthy != nil {
		v := *s.Healthy
		s.Healthy = &v
	}

	return s
}
