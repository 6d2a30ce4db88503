// Package submission turns a staged workflow into one request against the
// processing endpoint and resolves it into either a published result or a
// single failure message.
package submission

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/JaimeStill/pdfdesk/internal/results"
)

// Controller runs submissions for one workflow instance. At most one
// submission is in flight; a concurrent Submit is refused with ErrInFlight.
type Controller struct {
	client *Client
	viewer *results.Viewer
	logger *slog.Logger
	notify func()

	mu      sync.Mutex
	busy    bool
	failure *Failure
}

// NewController creates a Controller that publishes into viewer. notify is
// called once after every state change, outside the controller lock.
func NewController(client *Client, viewer *results.Viewer, logger *slog.Logger, notify func()) *Controller {
	if notify == nil {
		notify = func() {}
	}
	return &Controller{
		client: client,
		viewer: viewer,
		logger: logger.With("system", "submission"),
		notify: notify,
	}
}

// Viewer returns the result viewer the controller publishes into.
func (c *Controller) Viewer() *results.Viewer {
	return c.viewer
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Failure returns the current failure, or nil.
func (c *Controller) Failure() *Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// Submit validates job, resets prior state, transmits, and resolves. Every
// failure terminates in the controller's failure state; the only error
// returned is ErrInFlight.
func (c *Controller) Submit(ctx context.Context, job Job) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrInFlight
	}

	if f := job.Validate(); f != nil {
		c.failure = f
		c.mu.Unlock()
		c.logger.Info("submission rejected", "endpoint", job.Endpoint(), "reason", f.Message)
		c.notify()
		return nil
	}

	c.busy = true
	c.failure = nil
	c.mu.Unlock()

	if err := c.viewer.Release(ctx); err != nil {
		c.logger.Warn("previous result release failed", "error", err)
	}
	c.notify()

	failure := c.transmit(ctx, job)

	c.mu.Lock()
	c.busy = false
	c.failure = failure
	c.mu.Unlock()
	c.notify()

	return nil
}

func (c *Controller) transmit(ctx context.Context, job Job) *Failure {
	form := &Form{}
	job.Encode(form)

	start := time.Now()
	outcome := c.client.Post(ctx, job.Endpoint(), form)
	if !outcome.OK() {
		f := Classify(outcome, job.TransportMessage())
		c.logger.Warn(
			"submission failed",
			"endpoint", job.Endpoint(),
			"kind", f.Kind.String(),
			"status", f.Status,
			"message", f.Message,
			"error", f.Err,
		)
		return f
	}

	h, err := c.viewer.Publish(ctx, bytes.NewReader(outcome.Body))
	if err != nil {
		c.logger.Error("result publish failed", "endpoint", job.Endpoint(), "error", err)
		return &Failure{Kind: KindTransport, Message: job.TransportMessage(), Err: err}
	}

	c.logger.Info(
		"submission complete",
		"endpoint", job.Endpoint(),
		"result", h.ID,
		"size", h.Size,
		"duration", time.Since(start),
	)
	return nil
}
