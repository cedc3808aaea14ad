package uldk

import (
	"errors"
	"fmt"
)

// NetworkError reports a transport failure or a non-200 response from the
// service.
type NetworkError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("uldk: request %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("uldk: request %s: status %d", e.URL, e.StatusCode)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFoundError reports the service's not-found sentinel in a geometry
// response status line.
type NotFoundError struct {
	Status string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("uldk: not found (status %q)", e.Status)
}

// DecodeError reports a malformed hex or WKB geometry blob. Line is the
// 1-based line number within the response.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("uldk: decode geometry at line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsDecode reports whether err is, or wraps, a DecodeError.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// IsNetwork reports whether err is, or wraps, a NetworkError.
func IsNetwork(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
