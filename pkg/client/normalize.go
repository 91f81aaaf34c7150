package client

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// NetworkErrorMessage replaces every failure that has no server envelope.
const NetworkErrorMessage = "Server error or network issue"

// Error is the single failure shape callers handle.
type Error struct {
	Status  int
	Message string
	Code    string
	Details map[string]any
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Status == 0:
		return e.Message
	case e.Message == "":
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized reports whether the server rejected the caller's identity.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

type wireEnvelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Message string         `json:"message"`
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

// Normalize unwraps a response envelope. Successful envelopes yield their
// data. Server error envelopes pass through as sent, even with an empty
// message. Anything else, including sendErr, becomes a generic *Error.
func Normalize(raw *RawResult, sendErr error) (json.RawMessage, error) {
	if sendErr != nil || raw == nil {
		return nil, &Error{Message: NetworkErrorMessage, Err: sendErr}
	}

	var env wireEnvelope
	if err := json.Unmarshal(raw.Body, &env); err != nil {
		return nil, &Error{Status: raw.StatusCode, Message: NetworkErrorMessage, Err: err}
	}
	if env.Error != nil {
		return nil, &Error{
			Status:  raw.StatusCode,
			Message: env.Error.Message,
			Code:    env.Error.Code,
			Details: env.Error.Details,
		}
	}
	if raw.StatusCode < 200 || raw.StatusCode >= 300 {
		return nil, &Error{Status: raw.StatusCode, Message: NetworkErrorMessage}
	}
	return env.Data, nil
}
