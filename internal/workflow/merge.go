// Package workflow composes staging, submission and result viewing into the
// merge and unlock workflows. Each instance notifies subscribers with a
// Snapshot after every state change.
package workflow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/submission"
)

// Merge stages many files, reorders them, and merges them server-side.
type Merge struct {
	ctrl   *submission.Controller
	viewer *results.Viewer
	logger *slog.Logger
	obs    observers

	mu     sync.Mutex
	stage  *staging.Stage
	closed bool
}

// NewMerge creates an empty merge workflow.
func NewMerge(rt *Runtime) *Merge {
	m := &Merge{
		stage:  staging.NewStage(),
		logger: rt.Logger.With("workflow", "merge"),
	}
	m.viewer = results.NewViewer(rt.Storage, MergeFilename, m.logger)
	m.ctrl = submission.NewController(rt.Client, m.viewer, m.logger, m.notify)
	return m
}

// Subscribe registers fn for every Snapshot and returns its cancel func.
func (m *Merge) Subscribe(fn func(Snapshot)) func() {
	return m.obs.add(fn)
}

// Snapshot returns the current state.
func (m *Merge) Snapshot() Snapshot {
	m.mu.Lock()
	files := m.stage.Files()
	m.mu.Unlock()

	return Snapshot{
		Files:   files,
		Busy:    m.ctrl.Busy(),
		Failure: m.ctrl.Failure(),
		Result:  resultOf(m.viewer),
	}
}

// Viewer exposes the result viewer for preview and download.
func (m *Merge) Viewer() *results.Viewer {
	return m.viewer
}

// Add appends inputs to the stage in the order given.
func (m *Merge) Add(inputs ...staging.Input) []staging.File {
	if len(inputs) == 0 {
		return nil
	}

	m.mu.Lock()
	added := m.stage.Add(inputs...)
	m.mu.Unlock()

	m.notify()
	return added
}

// RemoveAt deletes the file at index. Out-of-range is a no-op.
func (m *Merge) RemoveAt(index int) bool {
	return m.mutate(func(s *staging.Stage) bool { return s.RemoveAt(index) })
}

// Remove deletes the file with the given identity. Unknown ids are a no-op.
func (m *Merge) Remove(id uuid.UUID) bool {
	return m.mutate(func(s *staging.Stage) bool { return s.Remove(id) })
}

// IndexOf returns the current position of the file with id, or -1.
func (m *Merge) IndexOf(id uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stage.IndexOf(id)
}

// Move relocates the file at src to dst. Invalid positions are a no-op.
func (m *Merge) Move(src, dst int) bool {
	return m.mutate(func(s *staging.Stage) bool { return s.Move(src, dst) })
}

// Apply completes a reorder gesture. Cancelled drops are a no-op.
func (m *Merge) Apply(d staging.Drop) bool {
	return m.mutate(func(s *staging.Stage) bool { return s.Apply(d) })
}

// Clear empties the stage.
func (m *Merge) Clear() {
	m.mu.Lock()
	empty := m.stage.Len() == 0
	m.stage.Clear()
	m.mu.Unlock()

	if !empty {
		m.notify()
	}
}

// Submit merges the staged files in their current order. It returns
// ErrInFlight while a previous submission is pending and ErrClosed after
// Close; every other outcome is reported through the Snapshot.
func (m *Merge) Submit(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	files := m.stage.Files()
	m.mu.Unlock()

	return m.ctrl.Submit(ctx, submission.MergeJob{Files: files})
}

// Close revokes the live result and drops all subscribers.
func (m *Merge) Close(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	m.obs.reset()
	return m.viewer.Close(ctx)
}

func (m *Merge) mutate(fn func(*staging.Stage) bool) bool {
	m.mu.Lock()
	changed := fn(m.stage)
	m.mu.Unlock()

	if changed {
		m.notify()
	}
	return changed
}

func (m *Merge) notify() {
	m.obs.emit(m.Snapshot())
}
