package util

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries a detailed log message alongside a short user-facing one
type Error struct {
	LogMsg    string
	SimpleMsg string
	URL       string
}

// Log writes the error details and returns an error holding the simple message
func (e Error) Log(ctx LogContext, prefix string) error {
	msg := e.LogMsg
	if msg == "" {
		msg = e.SimpleMsg
	}
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	if e.URL != "" {
		msg = fmt.Sprintf("%s (url: %s)", msg, e.URL)
	}
	LogAlert(ctx, msg)
	if e.SimpleMsg != "" {
		return errors.New(e.SimpleMsg)
	}
	return errors.New(e.LogMsg)
}

// HTTPErr is an error carrying the HTTP status it should be reported with
type HTTPErr struct {
	Status  int
	Message string
}

func (err HTTPErr) Error() string {
	return fmt.Sprintf("%d: %v", err.Status, err.Message)
}

// HTTPError logs and writes an error response
func HTTPError(request *http.Request, writer http.ResponseWriter, ctx LogContext, message string, status int) {
	LogAudit(ctx, LogAuditInput{
		Actor:    request.URL.String(),
		Action:   request.Method,
		Actee:    "client",
		Message:  message,
		Severity: ERROR,
	})
	http.Error(writer, message, status)
}

// WriteHTTPErr writes an HTTPErr as the error response
func WriteHTTPErr(request *http.Request, writer http.ResponseWriter, ctx LogContext, err HTTPErr) {
	HTTPError(request, writer, ctx, err.Message, err.Status)
}
