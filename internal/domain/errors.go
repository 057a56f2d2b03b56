package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	ErrNotFound = errors.New("not found")
)

// NetworkError is a failed call to the events API: either the transport
// failed or the server answered with a non-2xx status.
type NetworkError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// ValidationError maps draft field keys to their failure message.
type ValidationError map[string]string

// Error joins the messages in field order so output is stable.
func (v ValidationError) Error() string {
	return strings.Join(v.Messages(), "; ")
}

// Messages returns the messages in DraftFields order.
func (v ValidationError) Messages() []string {
	msgs := make([]string, 0, len(v))
	for _, f := range DraftFields {
		if m, ok := v[f]; ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
