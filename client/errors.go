package client

import (
	"fmt"

	"github.com/pkg/errors"
)

// NetworkOrServerError is returned for any failed backend call: transport
// failures, non-2xx responses and bodies that cannot be decoded.
type NetworkOrServerError struct {
	Op         string
	StatusCode int
	// Message and Suggestions come from the backend's {"error": ..., "try": [...]} body, when present.
	Message     string
	Suggestions []string
	Err         error
}

func (e *NetworkOrServerError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *NetworkOrServerError) Unwrap() error {
	return e.Err
}

// IsNetworkOrServer reports whether err came from a failed backend call.
func IsNetworkOrServer(err error) bool {
	var target *NetworkOrServerError
	return errors.As(err, &target)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var target *NetworkOrServerError
	if errors.As(err, &target) {
		return target.StatusCode
	}
	return 0
}
