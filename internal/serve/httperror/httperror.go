package httperror

import (
	"context"
	"fmt"
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/log"
)

// HTTPError is rendered as {"error": "<message>"}, the shape the reset-pin API uses.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	// Err is an optional field that can be used to wrap the original error to pass it forward.
	Err error `json:"-"`
}

// ReportErrorFunc is a function type used to report unexpected errors.
type ReportErrorFunc func(ctx context.Context, err error, msg string)

var defaultReportErrorFunc ReportErrorFunc = func(ctx context.Context, err error, msg string) {
	if msg != "" {
		err = fmt.Errorf("%s: %w", msg, err)
	}
	log.Ctx(ctx).WithStack(err).Errorf("%+v", err)
}

// SetDefaultReportErrorFunc sets the function used to report unexpected errors.
func SetDefaultReportErrorFunc(fn ReportErrorFunc) {
	defaultReportErrorFunc = fn
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) Render(w http.ResponseWriter) {
	RenderJSON(w, e.StatusCode, e)
}

func NewHTTPError(statusCode int, msg string, originalErr error) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    msg,
		Err:        originalErr,
	}
}

func NotFound(msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "Resource not found."
	}
	return NewHTTPError(http.StatusNotFound, msg, originalErr)
}

func BadRequest(msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "The request was invalid in some way."
	}
	return NewHTTPError(http.StatusBadRequest, msg, originalErr)
}

func TooManyRequests(msg string) *HTTPError {
	if msg == "" {
		msg = "Too many requests, please try again later."
	}
	return NewHTTPError(http.StatusTooManyRequests, msg, nil)
}

func InternalError(ctx context.Context, msg string, originalErr error) *HTTPError {
	if msg == "" {
		msg = "An internal error occurred while processing this request."
	}
	defaultReportErrorFunc(ctx, originalErr, msg)
	return NewHTTPError(http.StatusInternalServerError, msg, originalErr)
}
