package relay

import (
	"context"
	"errors"
	"net/http"

	"github.com/VighnaRajan/Adyen-Dropin-Applepay/internal/adyen"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
)

// ConfigurationError names a required setting that is absent. Its message is safe to show clients.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string { return e.Setting + " not configured" }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

var ErrPaymentDataRequired = &ValidationError{Message: "paymentData required"}

// Kind tags an outcome for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "ok"

	case errors.Is(err, ErrConfiguration):
		return "configuration"

	case errors.Is(err, ErrValidation):
		return "validation"

	case isRejected(err):
		return "upstream_rejected"

	case adyen.IsUnavailable(err),
		errors.Is(err, context.DeadlineExceeded):
		return "upstream_unavailable"

	default:
		return "internal"
	}
}

func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest

	case isRejected(err):
		aerr, _ := adyen.IsRejected(err)
		return aerr.Status

	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text a client may see for err. Only configuration, validation and
// processor rejections carry detail; everything else collapses to "internal".
func PublicMessage(err error) string {
	var cerr *ConfigurationError
	var verr *ValidationError
	switch {
	case errors.As(err, &cerr):
		return cerr.Error()
	case errors.As(err, &verr):
		return verr.Error()
	}
	if aerr, ok := adyen.IsRejected(err); ok {
		return string(aerr.Body)
	}
	return "internal"
}

func isRejected(err error) bool {
	_, ok := adyen.IsRejected(err)
	return ok
}
