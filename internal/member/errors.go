package member

import "fmt"

// Kind enumerates the closed failure taxonomy of the member service. Every
// store outcome is classified into exactly one of these before it leaves the
// service, so handlers switch on Kind instead of probing error strings.
type Kind int

const (
	// KindValidation: the document violated a field constraint.
	KindValidation Kind = iota + 1
	// KindDuplicateEmail: the store rejected a uniqueness constraint.
	KindDuplicateEmail
	// KindInvalidID: the identifier is not a well-formed ObjectID hex
	// string; detected before any store call.
	KindInvalidID
	// KindNotFound: no document matched.
	KindNotFound
	// KindStore: unexpected datastore failure, message preserved.
	KindStore
	// KindUnknown: datastore failure carrying no message.
	KindUnknown
)

// Error is the service-boundary error type. Message is the client-facing
// string placed verbatim in the response envelope.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errInvalidID() *Error {
	return &Error{Kind: KindInvalidID, Message: "Invalid member ID"}
}

func errNotFound() *Error {
	return &Error{Kind: KindNotFound, Message: "Member not found"}
}

func errDuplicateEmail(cause error) *Error {
	return &Error{
		Kind:    KindDuplicateEmail,
		Message: "Duplicate key error: A member with this email already exists",
		Err:     cause,
	}
}

func errValidation(reason error) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("Validation Error: %s", reason),
		Err:     reason,
	}
}

func errStore(cause error) *Error {
	if cause == nil || cause.Error() == "" {
		return &Error{Kind: KindUnknown, Message: "An unknown error occurred", Err: cause}
	}
	return &Error{Kind: KindStore, Message: cause.Error(), Err: cause}
}
