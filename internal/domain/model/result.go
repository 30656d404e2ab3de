package model

// UnknownErrorMessage is used when a failed call yields no usable message.
const UnknownErrorMessage = "An unknown error occurred"

// APIError carries the user-facing message of a failed backend call.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Result is the normalized outcome of a backend call: either Ok with a payload
// or Err with a message, never both.
type Result[T any] struct {
	payload T
	message string
	ok      bool
}

// Ok wraps a successful payload.
func Ok[T any](payload T) Result[T] {
	return Result[T]{payload: payload, ok: true}
}

// Err wraps a failure message. An empty message is replaced by UnknownErrorMessage.
func Err[T any](message string) Result[T] {
	if message == "" {
		message = UnknownErrorMessage
	}
	return Result[T]{message: message}
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.ok
}

// Payload returns the payload and true on success, or the zero value and false.
func (r Result[T]) Payload() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.payload, true
}

// ErrorMessage returns the failure message, or "" on success.
func (r Result[T]) ErrorMessage() string {
	if r.ok {
		return ""
	}
	return r.message
}

// Unwrap converts the result into Go's (value, error) form. The error is an *APIError.
func (r Result[T]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		return zero, &APIError{Message: r.message}
	}
	return r.payload, nil
}
