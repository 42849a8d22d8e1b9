package adyen

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("adyen: api key not configured")
	ErrMalformedBody = errors.New("adyen: response body is not JSON")
)

type ErrorKind int

const (
	// KindRejected means the processor answered with a non-2xx status.
	KindRejected ErrorKind = iota + 1
	// KindUnavailable means no usable answer came back: DNS, dial, reset, timeout, a truncated
	// body or a 2xx body that is not JSON.
	KindUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindRejected:
		return "rejected"
	case KindUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Error is returned by Client for every failed exchange with the processor.
type Error struct {
	Kind      ErrorKind
	Operation Operation
	Status    int
	Body      []byte
	Err       error
}

func (e *Error) Error() string {
	if e.Kind == KindRejected {
		return fmt.Sprintf("adyen %s rejected: http=%d", e.Operation, e.Status)
	}
	return fmt.Sprintf("adyen %s unavailable: %v", e.Operation, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsRejected reports whether err carries a processor rejection and returns it.
func IsRejected(err error) (*Error, bool) {
	var aerr *Error
	if errors.As(err, &aerr) && aerr.Kind == KindRejected {
		return aerr, true
	}
	return nil, false
}

func IsUnavailable(err error) bool {
	var aerr *Error
	return errors.As(err, &aerr) && aerr.Kind == KindUnavailable
}
