package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/outfit-assistant/pkg/errors"
)

const (
	codeInvalidRequest  = "invalid_request"
	codeViewUnavailable = "view_unavailable"
	codeRenderFailed    = "render_failed"
	codeRateLimited     = "rate_limit_exceeded"
	codeInternal        = "internal_error"
)

// HTTPError is the transport form of a failed request.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func viewUnavailable(err error) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, codeViewUnavailable, "view is not available", err)
}

// triggerError maps a rejected trigger to a response. Both a disabled button
// and an unsupported region surface as trigger_disabled; anything else means
// the UI loop could not take the call.
func triggerError(err error) *HTTPError {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeTriggerDisabled, apperrors.CodeUnsupported:
		return NewHTTPError(http.StatusConflict, apperrors.CodeTriggerDisabled, errMessage(err), err)
	default:
		return viewUnavailable(err)
	}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    codeInternal,
		Message: "something went wrong",
		Err:     err,
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
