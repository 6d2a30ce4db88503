// Package lifecycle coordinates startup and teardown hooks for long-running
// processes: the processing server and interactive client sessions.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ReadinessChecker reports whether a subsystem is ready to serve traffic.
type ReadinessChecker interface {
	Ready() bool
}

// Coordinator manages startup and shutdown hooks. Hooks run concurrently.
// Errors and panics raised by hooks are collected rather than aborting
// the remaining hooks, so every registered teardown gets its chance to run.
type Coordinator struct {
	ctx        context.Context
	cancel     context.CancelFunc
	startupWg  sync.WaitGroup
	shutdownWg sync.WaitGroup

	mu       sync.Mutex
	ready    bool
	startErr []error
	stopErr  []error
}

// New creates a Coordinator with a cancellable context.
func New() *Coordinator {
	return WithParent(context.Background())
}

// WithParent creates a Coordinator whose context is derived from parent.
func WithParent(parent context.Context) *Coordinator {
	ctx, cancel := context.WithCancel(parent)
	return &Coordinator{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Context returns the coordinator's context, cancelled on shutdown.
func (c *Coordinator) Context() context.Context {
	return c.ctx
}

// OnStartup registers a function to run concurrently during startup.
func (c *Coordinator) OnStartup(fn func() error) {
	c.startupWg.Go(func() {
		if err := guard(fn); err != nil {
			c.mu.Lock()
			c.startErr = append(c.startErr, err)
			c.mu.Unlock()
		}
	})
}

// OnShutdown registers a function to run concurrently during shutdown.
// The hook is released once the coordinator context is cancelled.
func (c *Coordinator) OnShutdown(fn func() error) {
	c.shutdownWg.Go(func() {
		<-c.ctx.Done()
		if err := guard(fn); err != nil {
			c.mu.Lock()
			c.stopErr = append(c.stopErr, err)
			c.mu.Unlock()
		}
	})
}

// Ready returns true after all startup hooks have completed without error.
func (c *Coordinator) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ready
}

// WaitForStartup blocks until all startup hooks have completed. The ready
// flag is set only when none of them failed; the joined failures are returned.
func (c *Coordinator) WaitForStartup() error {
	c.startupWg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	err := errors.Join(c.startErr...)
	c.ready = err == nil
	return err
}

// Shutdown cancels the context and waits for shutdown hooks to complete
// within the given timeout. Hook failures are joined into the returned error.
func (c *Coordinator) Shutdown(timeout time.Duration) error {
	c.cancel()

	done := make(chan struct{})
	go func() {
		c.shutdownWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.mu.Lock()
		defer c.mu.Unlock()
		return errors.Join(c.stopErr...)
	case <-time.After(timeout):
		return fmt.Errorf("shutdown timeout after %v", timeout)
	}
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panic: %v", r)
		}
	}()
	return fn()
}
