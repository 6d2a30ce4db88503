package submission

import "errors"

// ErrInFlight is returned when Submit is called while a previous submission
// on the same controller has not resolved. State is left untouched.
var ErrInFlight = errors.New("submission already in flight")

// Kind classifies why a submission failed.
type Kind int

// Failure kinds, from local precondition checks to transport errors.
const (
	KindValidation Kind = iota + 1
	KindServerRejection
	KindServerRejectionUnstructured
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindServerRejection:
		return "server_rejection"
	case KindServerRejectionUnstructured:
		return "server_rejection_unstructured"
	case KindTransport:
		return "transport"
	}
	return "unknown"
}

// Failure is the single user-facing outcome of a failed submission.
// Message is what the user sees; Err keeps the underlying cause for logs.
type Failure struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func validation(message string) *Failure {
	return &Failure{Kind: KindValidation, Message: message}
}
