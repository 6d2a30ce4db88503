package workflow

import (
	"log/slog"

	"github.com/JaimeStill/pdfdesk/internal/submission"
	"github.com/JaimeStill/pdfdesk/pkg/storage"
)

// Runtime bundles the dependencies a workflow instance requires.
// It is constructed by higher-level composition code from infrastructure.
type Runtime struct {
	Client  *submission.Client
	Storage storage.System
	Logger  *slog.Logger
}

// Suggested download filenames for each workflow's result.
const (
	MergeFilename  = "merged.pdf"
	UnlockFilename = "unlocked.pdf"
)
