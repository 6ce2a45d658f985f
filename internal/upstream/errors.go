package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNoSession means the backend accepted a login but issued no `sid`.
var ErrNoSession = errors.New("upstream: login returned no session cookie")

// StatusError is a completed exchange with an unexpected status code.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s: status %d %s", e.Op, e.Code, http.StatusText(e.Code))
}

// StatusOf returns the backend status carried by err, or 0 when err is nil,
// a transport failure, or anything else without a status.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
