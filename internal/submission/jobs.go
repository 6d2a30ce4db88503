package submission

import (
	"github.com/JaimeStill/pdfdesk/internal/staging"
)

// Endpoints of the processing server, relative to the client base URL.
const (
	MergeEndpoint  = "/api/merge"
	UnlockEndpoint = "/api/unlock"
)

// Precondition and transport messages shown to the user.
const (
	MsgMergeTooFew      = "Please select at least 2 files to merge"
	MsgUnlockNoFile     = "Please select a file to unlock"
	MsgUnlockNoPassword = "Please enter the PDF password"

	MsgMergeTransport  = "An error occurred while merging the files."
	MsgUnlockTransport = "An error occurred while unlocking the file."
)

// Job describes one submission: its preconditions, payload, and endpoint.
type Job interface {
	// Validate reports an unmet precondition as a KindValidation *Failure.
	Validate() *Failure
	Encode(f *Form)
	Endpoint() string
	TransportMessage() string
}

// MergeJob submits staged files in order under the repeated "files" field.
type MergeJob struct {
	Files []staging.File
}

func (j MergeJob) Validate() *Failure {
	if len(j.Files) < 2 {
		return validation(MsgMergeTooFew)
	}
	return nil
}

func (j MergeJob) Encode(f *Form) {
	for _, file := range j.Files {
		f.AddFile("files", file.Name, file.Blob)
	}
}

func (j MergeJob) Endpoint() string         { return MergeEndpoint }
func (j MergeJob) TransportMessage() string { return MsgMergeTransport }

// UnlockJob submits one file and its password.
type UnlockJob struct {
	File     *staging.File
	Password string
}

func (j UnlockJob) Validate() *Failure {
	if j.File == nil {
		return validation(MsgUnlockNoFile)
	}
	if j.Password == "" {
		return validation(MsgUnlockNoPassword)
	}
	return nil
}

func (j UnlockJob) Encode(f *Form) {
	f.AddFile("file", j.File.Name, j.File.Blob)
	f.AddField("password", j.Password)
}

func (j UnlockJob) Endpoint() string         { return UnlockEndpoint }
func (j UnlockJob) TransportMessage() string { return MsgUnlockTransport }
