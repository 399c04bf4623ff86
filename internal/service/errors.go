package service

import "errors"

// Error kinds. Handlers map them to HTTP classes with errors.Is:
// ErrClient is a bad or unfetchable symbol, ErrServer is everything else.
var (
	ErrClient = errors.New("client error")
	ErrServer = errors.New("server error")
)

// AnalysisError is returned by AnalysisService. Message is shown to the
// caller as-is.
type AnalysisError struct {
	Kind    error
	Message string
	Err     error
}

func (e *AnalysisError) Error() string { return e.Message }

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *AnalysisError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func clientError(message string, err error) *AnalysisError {
	return &AnalysisError{Kind: ErrClient, Message: message, Err: err}
}

func serverError(message string, err error) *AnalysisError {
	return &AnalysisError{Kind: ErrServer, Message: message, Err: err}
}
