package errors

import (
	"fmt"
	"reflect"
)

type Error interface {
	error
	New(args ...any) BaseError
}

type BaseError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"message"`

	messageFormat string
}

func (e BaseError) Error() string {
	return e.Message
}

// New returns a copy of the error with its message formatted from args.
// The registered error itself is never mutated so it is safe to share between goroutines.
func (e *BaseError) New(args ...any) BaseError {

	created := *e
	created.Message = fmt.Sprintf(e.messageFormat, args...)

	return created
}

func (e BaseError) IsNil() bool {
	return reflect.ValueOf(e).IsZero()
}

func TryAssertError(err error) (BaseError, bool) {

	switch asserted := err.(type) {
	case BaseError:
		return asserted, true
	case *BaseError:
		return *asserted, asserted != nil
	}

	return BaseError{}, false
}

func IsError(err error, expectedError BaseError) bool {

	asserted, ok := TryAssertError(err)
	if !ok {
		return false
	}

	return asserted.Code == expectedError.Code && asserted.Message == expectedError.Message
}

// HasCode reports whether err is a BaseError carrying the given code regardless of its message.
func HasCode(err error, code int) bool {

	asserted, ok := TryAssertError(err)
	return ok && asserted.Code == code
}

func new(errorCode int, name string, messageFormat string) Error {

	return &BaseError{Code: errorCode, Name: name, messageFormat: messageFormat}
}
