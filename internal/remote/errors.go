package remote

import (
	"errors"
	"fmt"
)

// ErrSubmitInFlight is returned when Submit is called while another submit
// on the same client has not finished.
var ErrSubmitInFlight = errors.New("submission already in progress")

// ConnectionErrorMessage is shown for auth and list calls that never reached
// the service.
const ConnectionErrorMessage = "서버에 연결할 수 없습니다. 잠시 후 다시 시도해주세요"

// RemoteError is a structured {status:"error"} answer from the service.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message == "" {
		return "요청을 처리하지 못했습니다"
	}
	return e.Message
}

// AuthError is a rejected register or login. Message is safe to show next
// to the sign-in form.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// TransportError wraps a request that could not be built, sent, or whose
// response could not be read.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// StatusError is an HTTP error status whose body was not a service answer.
// The request reached the service, so it is never resent blindly.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.StatusCode, e.Body)
}
