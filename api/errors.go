package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	apperrors "github.com/openshelf/go-inventory-console/internal/errors"
)

// StatusError is a non-2xx reply from the backend. It is an expected outcome,
// not an exceptional one: callers branch on it to surface the server-provided
// detail message inline.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Detail)
}

func (e *StatusError) Is(target error) bool {
	return target == apperrors.ErrRequestFailed
}

// Message returns the server detail when present, else the fallback text.
func (e *StatusError) Message(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	return fallback
}

// AsStatusError unwraps err into a StatusError if one is in its chain.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if apperrors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// ErrorMessage returns the server detail for a status error, or fallback for
// transport and decoding failures. It mirrors the frontend convention of
// `data.detail || genericMessage`.
func ErrorMessage(err error, fallback string) string {
	if statusErr, ok := AsStatusError(err); ok {
		return statusErr.Message(fallback)
	}
	return fallback
}

// errorDetail extracts the `detail` field from an error body. FastAPI-style
// backends send `{"detail": "..."}` but detail can also be a structured
// validation payload, in which case the raw JSON is used verbatim.
func errorDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return ""
	}
	if unquoted, err := strconv.Unquote(string(envelope.Detail)); err == nil {
		return unquoted
	}
	return string(envelope.Detail)
}
