package codeforces

import "fmt"

// Kind classifies the outcome of one API call.
type Kind int

const (
	// KindUnreachable means no usable HTTP response: DNS, connect, timeout, cancellation or a
	// non-200 status. All of these look the same to callers.
	KindUnreachable Kind = iota

	// KindRejected means the API answered but declined the request (status FAILED).
	KindRejected

	// KindOK means the API answered with status OK and the payload was mapped.
	KindOK
)

func (k Kind) String() string {
	switch k {
	case KindUnreachable:
		return "unreachable"
	case KindRejected:
		return "rejected"
	case KindOK:
		return "ok"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the outcome of an endpoint call. Exactly one of the three states holds:
// Unreachable, Rejected (Comment set) or OK (Value set).
type Result[T any] struct {
	kind Kind

	// Value is the mapped payload. Only meaningful when OK() is true.
	Value T

	// Comment is the upstream rejection reason. Only meaningful when Rejected() is true.
	Comment string

	// Cause is the transport error or status line behind an Unreachable result. It is kept for
	// diagnostics; callers are not expected to branch on it.
	Cause error
}

// OKResult, RejectedResult and UnreachableResult build results, e.g. for fakes of Client.
func OKResult[T any](v T) Result[T] { return Result[T]{kind: KindOK, Value: v} }

func RejectedResult[T any](comment string) Result[T] {
	return Result[T]{kind: KindRejected, Comment: comment}
}

func UnreachableResult[T any](cause error) Result[T] {
	return Result[T]{kind: KindUnreachable, Cause: cause}
}

func (r Result[T]) Kind() Kind        { return r.kind }
func (r Result[T]) OK() bool          { return r.kind == KindOK }
func (r Result[T]) Rejected() bool    { return r.kind == KindRejected }
func (r Result[T]) Unreachable() bool { return r.kind == KindUnreachable }

// Unpack returns the result in the (ok, payload) form: on success the value; on rejection
// the comment; when unreachable neither.
func (r Result[T]) Unpack() (value T, ok bool, comment string) {
	return r.Value, r.kind == KindOK, r.Comment
}

func (r Result[T]) String() string {
	switch r.kind {
	case KindOK:
		return "ok"
	case KindRejected:
		return fmt.Sprintf("rejected: %s", r.Comment)
	default:
		if r.Cause != nil {
			return fmt.Sprintf("unreachable: %v", r.Cause)
		}
		return "unreachable"
	}
}

// mapResult converts a Result[T] into a Result[U] using f on the OK value.
func mapResult[T, U any](r Result[T], f func(T) U) Result[U] {
	switch r.kind {
	case KindOK:
		return OKResult(f(r.Value))
	case KindRejected:
		return RejectedResult[U](r.Comment)
	default:
		return UnreachableResult[U](r.Cause)
	}
}
