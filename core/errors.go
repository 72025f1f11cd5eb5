package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// ConfigError is fatal: the application cannot start with it.
type ConfigError struct {
	Err error
}

func NewConfigError(err error) error {
	return &ConfigError{Err: err}
}

func (err ConfigError) Error() string {
	return "configuration error: " + err.Err.Error()
}

func (err ConfigError) Cause() error { return err.Err }

// IsConfigError reports whether a ConfigError is anywhere in err's chain.
func IsConfigError(err error) bool {
	for err != nil {
		if _, ok := err.(*ConfigError); ok {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
