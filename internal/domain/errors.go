package domain

import "errors"

var (
	ErrTransport        = errors.New("transport error")
	ErrBackend          = errors.New("backend error")
	ErrAuth             = errors.New("authentication failed")
	ErrSubmission       = errors.New("submission failed")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrKeyNotFound      = errors.New("storage key not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrInvalidItemTitle = errors.New("invalid item title")
	ErrInvalidRequest   = errors.New("invalid reservation request")
)

const (
	DefaultLoginError      = "login failed"
	DefaultSubmissionError = "request submission failed"
	DefaultSessionError    = "session rejected"
)

// TransportError reports a call that never produced a backend answer:
// network failure, timeout, or a response that did not invoke the
// expected callback.
type TransportError struct {
	Action string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport error during " + e.Action
	}
	return "transport error during " + e.Action + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}

// BackendError is an ok:false answer. Message is the backend text, or a
// default when the backend sent none.
type BackendError struct {
	Action  string
	Message string
	kind    error
}

func NewBackendError(action, message, fallback string) *BackendError {
	if message == "" {
		message = fallback
	}
	return &BackendError{Action: action, Message: message}
}

func NewAuthError(message string) *BackendError {
	err := NewBackendError("login", message, DefaultLoginError)
	err.kind = ErrAuth
	return err
}

func NewSessionRejectedError(message string) *BackendError {
	err := NewBackendError("me", message, DefaultSessionError)
	err.kind = ErrNotAuthenticated
	return err
}

func NewSubmissionError(message string) *BackendError {
	err := NewBackendError("submit_request", message, DefaultSubmissionError)
	err.kind = ErrSubmission
	return err
}

func (e *BackendError) Error() string {
	return e.Message
}

func (e *BackendError) Unwrap() []error {
	if e.kind == nil {
		return []error{ErrBackend}
	}
	return []error{ErrBackend, e.kind}
}
