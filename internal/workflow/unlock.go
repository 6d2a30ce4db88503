package workflow

import (
	"context"
	"log/slog"
	"sync"

	"github.com/JaimeStill/pdfdesk/internal/results"
	"github.com/JaimeStill/pdfdesk/internal/staging"
	"github.com/JaimeStill/pdfdesk/internal/submission"
)

// Unlock stages a single protected file and its password.
type Unlock struct {
	ctrl   *submission.Controller
	viewer *results.Viewer
	logger *slog.Logger
	obs    observers

	mu     sync.Mutex
	slot   *staging.Slot
	closed bool
}

// NewUnlock creates an empty unlock workflow.
func NewUnlock(rt *Runtime) *Unlock {
	u := &Unlock{
		slot:   staging.NewSlot(),
		logger: rt.Logger.With("workflow", "unlock"),
	}
	u.viewer = results.NewViewer(rt.Storage, UnlockFilename, u.logger)
	u.ctrl = submission.NewController(rt.Client, u.viewer, u.logger, u.notify)
	return u
}

// Subscribe registers fn for every Snapshot and returns its cancel func.
func (u *Unlock) Subscribe(fn func(Snapshot)) func() {
	return u.obs.add(fn)
}

// Snapshot returns the current state. Files holds at most one entry.
func (u *Unlock) Snapshot() Snapshot {
	u.mu.Lock()
	var files []staging.File
	if f, ok := u.slot.File(); ok {
		files = []staging.File{f}
	}
	secretSet := u.slot.Secret() != ""
	u.mu.Unlock()

	return Snapshot{
		Files:     files,
		SecretSet: secretSet,
		Busy:      u.ctrl.Busy(),
		Failure:   u.ctrl.Failure(),
		Result:    resultOf(u.viewer),
	}
}

// Viewer exposes the result viewer for preview and download.
func (u *Unlock) Viewer() *results.Viewer {
	return u.viewer
}

// Set replaces the staged file with the first input.
func (u *Unlock) Set(inputs ...staging.Input) (staging.File, bool) {
	u.mu.Lock()
	f, ok := u.slot.Set(inputs...)
	u.mu.Unlock()

	if ok {
		u.notify()
	}
	return f, ok
}

// ClearFile removes the staged file.
func (u *Unlock) ClearFile() {
	u.mu.Lock()
	_, had := u.slot.File()
	u.slot.ClearFile()
	u.mu.Unlock()

	if had {
		u.notify()
	}
}

// SetPassword stores the password submitted with the file.
func (u *Unlock) SetPassword(password string) {
	u.mu.Lock()
	changed := u.slot.Secret() != password
	u.slot.SetSecret(password)
	u.mu.Unlock()

	if changed {
		u.notify()
	}
}

// Submit unlocks the staged file. It returns ErrInFlight while a previous
// submission is pending and ErrClosed after Close.
func (u *Unlock) Submit(ctx context.Context) error {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return ErrClosed
	}
	job := submission.UnlockJob{Password: u.slot.Secret()}
	if f, ok := u.slot.File(); ok {
		job.File = &f
	}
	u.mu.Unlock()

	return u.ctrl.Submit(ctx, job)
}

// Close revokes the live result and drops all subscribers.
func (u *Unlock) Close(ctx context.Context) error {
	u.mu.Lock()
	u.closed = true
	u.mu.Unlock()

	u.obs.reset()
	return u.viewer.Close(ctx)
}

func (u *Unlock) notify() {
	u.obs.emit(u.Snapshot())
}
