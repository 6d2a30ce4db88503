package submission_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/pdfdesk/internal/submission"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		outcome  submission.Outcome
		wantKind submission.Kind
		wantMsg  string
	}{
		{
			name:     "structured message is verbatim",
			outcome:  submission.Outcome{Status: 400, Body: []byte(`{"error":"File is encrypted with an unsupported algorithm"}`)},
			wantKind: submission.KindServerRejection,
			wantMsg:  "File is encrypted with an unsupported algorithm",
		},
		{
			name:     "structured message wins over 5xx",
			outcome:  submission.Outcome{Status: 500, Body: []byte(`{"error":"cannot open broken document"}`)},
			wantKind: submission.KindServerRejection,
			wantMsg:  "cannot open broken document",
		},
		{
			name:     "empty error field falls back to status",
			outcome:  submission.Outcome{Status: 401, Body: []byte(`{"error":"  "}`)},
			wantKind: submission.KindServerRejectionUnstructured,
			wantMsg:  "Server error (status 401)",
		},
		{
			name:     "html body falls back to status",
			outcome:  submission.Outcome{Status: 502, Body: []byte("<html>Bad Gateway</html>")},
			wantKind: submission.KindServerRejectionUnstructured,
			wantMsg:  "Server error (status 502)",
		},
		{
			name:     "non-string error field falls back to status",
			outcome:  submission.Outcome{Status: 400, Body: []byte(`{"error":{"code":1}}`)},
			wantKind: submission.KindServerRejectionUnstructured,
			wantMsg:  "Server error (status 400)",
		},
		{
			name:     "no response at all",
			outcome:  submission.Outcome{Err: errors.New("dial tcp: connection refused")},
			wantKind: submission.KindTransport,
			wantMsg:  submission.MsgMergeTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := submission.Classify(tt.outcome, submission.MsgMergeTransport)
			if f.Kind != tt.wantKind {
				t.Errorf("kind: got %s, want %s", f.Kind, tt.wantKind)
			}
			if f.Message != tt.wantMsg {
				t.Errorf("message: got %q, want %q", f.Message, tt.wantMsg)
			}
			if f.Error() != f.Message {
				t.Errorf("Error() = %q, want message", f.Error())
			}
		})
	}
}

func TestFailureUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	f := submission.Classify(submission.Outcome{Err: cause}, submission.MsgUnlockTransport)

	if !errors.Is(f, cause) {
		t.Error("failure should unwrap to the transport cause")
	}

	var target *submission.Failure
	if !errors.As(error(f), &target) || target.Kind != submission.KindTransport {
		t.Error("errors.As should recover the failure")
	}
}
