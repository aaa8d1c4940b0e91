package errors

import (
	stderrors "errors"
	"net/http"
)

// HTTPStatus maps an error to the status code the transport should answer with.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var stdErr *StandardError
	if !stderrors.As(err, &stdErr) {
		return http.StatusInternalServerError
	}

	switch stdErr.Code {
	case ErrCodeInvalidInput, ErrCodeValidationFailed, ErrCodePincodeInvalid:
		return http.StatusBadRequest
	case ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeUpstreamTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeUpstreamUnavailable, ErrCodeDatabaseConnectionFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
