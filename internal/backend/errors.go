package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrUnauthorized is matched by any 401 from the backend.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is matched by any 403 from the backend.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is matched by any 404 from the backend.
	ErrNotFound = errors.New("not found")
)

// APIError is a failed backend call. Message is safe to show to the user.
type APIError struct {
	Status  int
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend unreachable: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// Is maps HTTP statuses onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

// UserMessage returns the banner text for err.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// extractMessage pulls a human readable string out of an error body. It
// understands the shapes the backend and its frameworks produce:
// {"message": ...}, {"error": "..."}, {"error": {"message": ...}},
// {"detail": ...} and {"errors": ["..."]} or {"errors": [{"msg": ...}]}.
func extractMessage(body []byte, fallback string) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallback
	}

	for _, key := range []string{"message", "error", "detail", "msg"} {
		if msg := messageFrom(payload[key]); msg != "" {
			return msg
		}
	}

	if raw, ok := payload["errors"]; ok {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err == nil {
			for _, item := range list {
				if msg := messageFrom(item); msg != "" {
					return msg
				}
			}
		}
	}
	return fallback
}

func messageFrom(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, key := range []string{"message", "msg"} {
			if v, ok := obj[key]; ok {
				return messageFrom(v)
			}
		}
	}
	return ""
}
