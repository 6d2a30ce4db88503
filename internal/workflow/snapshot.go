package workflow

import (
	"errors"
	"sync"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/submission"
)

// ErrClosed is returned by Submit after the workflow has been closed.
var ErrClosed = errors.New("workflow closed")

// Snapshot is an immutable view of a workflow instance, delivered to
// subscribers after every state change.
type Snapshot struct {
	Files     []staging.File
	SecretSet bool
	Busy      bool
	Failure   *submission.Failure
	Result    *results.Handle
}

// Message returns the failure message, or "".
func (s Snapshot) Message() string {
	if s.Failure == nil {
		return ""
	}
	return s.Failure.Message
}

type observers struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Snapshot)
}

func (o *observers) add(fn func(Snapshot)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.subs == nil {
		o.subs = make(map[int]func(Snapshot))
	}
	id := o.next
	o.next++
	o.subs[id] = fn

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

func (o *observers) emit(s Snapshot) {
	o.mu.Lock()
	subs := make([]func(Snapshot), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}

func (o *observers) reset() {
	o.mu.Lock()
	o.subs = nil
	o.mu.Unlock()
}

func resultOf(v *results.Viewer) *results.Handle {
	h, ok := v.Current()
	if !ok {
		return nil
	}
	return &h
}
