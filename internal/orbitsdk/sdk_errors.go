package orbitsdk

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// config
	ErrNoBaseURL      = errors.New("orbit: base url missing")
	ErrInvalidBaseURL = errors.New("orbit: invalid base url")
	ErrInvalidTimeout = errors.New("orbit: timeout must not be negative")

	// sync
	ErrInvalidDirection = errors.New("orbit: invalid sync direction")
	ErrSerialization    = errors.New("orbit: payload not serializable")
	ErrNilPayload       = errors.New("orbit: nil sync payload")
)

// StatusServiceUnavailable is reported by every client operation when the
// service could not be reached. It is never a status read off the wire.
const StatusServiceUnavailable = http.StatusServiceUnavailable

// SerializationError is returned when a payload holds a value with no JSON
// representation. Path locates the offending value, e.g. `$.sources[0].metadata.cb`.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("orbit: cannot serialize %s: %v", e.Path, e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

func (e *SerializationError) Is(target error) bool {
	return target == ErrSerialization
}
