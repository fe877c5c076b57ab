package models

// ErrorKind classifies a failed operation.
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindNetwork          ErrorKind = "network"
	KindUnauthorized     ErrorKind = "unauthorized"
	KindValidation       ErrorKind = "validation"
	KindServer           ErrorKind = "server"
	KindClientValidation ErrorKind = "client_validation"
	// KindExpired marks an OTP or verification token the backend no longer
	// accepts; the caller has to restart the verification step.
	KindExpired ErrorKind = "expired"
	// KindState marks an operation invoked in a state that does not allow it,
	// including a second call while one is in flight.
	KindState ErrorKind = "state"
)

// DefaultFailureMessage is shown when neither the backend nor the client
// produced anything more specific.
const DefaultFailureMessage = "Something went wrong. Please try again."

// Result is the uniform return value of every session and registration
// operation. Failures are values: Message is always non-empty when Success
// is false.
type Result struct {
	Success     bool
	Message     string
	Kind        ErrorKind
	FieldErrors map[string]string
}

// OK builds a successful result.
func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// Fail builds a failed result, falling back to DefaultFailureMessage.
func Fail(kind ErrorKind, message string, fieldErrors map[string]string) Result {
	if message == "" {
		message = DefaultFailureMessage
	}
	return Result{Kind: kind, Message: message, FieldErrors: fieldErrors}
}
