package submission

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Outcome is the raw result of one transmit step. Status is zero when no
// response was received.
type Outcome struct {
	Status int
	Body   []byte
	Err    error
}

// OK reports a successful response carrying a body to publish.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Status >= http.StatusOK && o.Status < http.StatusMultipleChoices
}

type errorBody struct {
	Error string `json:"error"`
}

// Classify maps a failed outcome to one message. A server-provided error
// message always wins, then a generic message naming the status, then
// transportMessage when nothing came back at all.
func Classify(o Outcome, transportMessage string) *Failure {
	if msg := serverMessage(o.Body); msg != "" {
		return &Failure{
			Kind:    KindServerRejection,
			Status:  o.Status,
			Message: msg,
			Err:     o.Err,
		}
	}

	if o.Status != 0 {
		return &Failure{
			Kind:    KindServerRejectionUnstructured,
			Status:  o.Status,
			Message: fmt.Sprintf("Server error (status %d)", o.Status),
			Err:     o.Err,
		}
	}

	return &Failure{
		Kind:    KindTransport,
		Message: transportMessage,
		Err:     o.Err,
	}
}

func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	return strings.TrimSpace(eb.Error)
}
