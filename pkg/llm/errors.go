package llm

import (
	"fmt"
	"strings"
)

// ConfigError reports invalid or incomplete backend settings detected at
// construction time.
type ConfigError struct {
	// Backend is the selected backend name.
	Backend string

	// Fields lists the missing configuration fields, if any.
	Fields []string

	// Message describes the configuration problem.
	Message string
}

func (e *ConfigError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("backend %q configuration error: missing %s", e.Backend, strings.Join(e.Fields, ", "))
	}
	return fmt.Sprintf("backend %q configuration error: %s", e.Backend, e.Message)
}

// TransportError reports a network failure or non-2xx HTTP response from a
// backend. StatusCode is 0 when the request never produced a response.
type TransportError struct {
	Backend    string
	StatusCode int
	Body       string
	Cause      error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("backend %q request failed (status %d): %s", e.Backend, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("backend %q request failed: %v", e.Backend, e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ResponseError reports a reply that parsed as JSON but lacks the fields the
// backend contract promises (empty choices, missing message content).
type ResponseError struct {
	Backend string
	Message string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("backend %q returned unusable response: %s", e.Backend, e.Message)
}
