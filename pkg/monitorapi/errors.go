package monitorapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx server response.
type Error struct {
	Code   int
	Status string
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d %s] %s", e.Code, e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 server response.
func IsNotFound(err error) bool {
	return codeForError(err) == http.StatusNotFound
}

// IsRateLimited reports whether err is a 429 server response. Callers only
// see these after the client exhausts its retries.
func IsRateLimited(err error) bool {
	return codeForError(err) == http.StatusTooManyRequests
}

func codeForError(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
