package peers

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a peer call did not produce a usable answer.
type FailureKind string

const (
	// KindNotFound: the peer answered 404.
	KindNotFound FailureKind = "not_found"
	// KindUnavailable: transport error, timeout or 5xx. The remote write may or may not have happened.
	KindUnavailable FailureKind = "unavailable"
	// KindRejected: the peer refused the request (4xx other than 404).
	KindRejected FailureKind = "rejected"
	// KindMalformed: the peer answered 2xx with a body we cannot use.
	KindMalformed FailureKind = "malformed"
)

// CallError is the only error type a gateway returns.
type CallError struct {
	Op     string
	Kind   FailureKind
	Status int
	Err    error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or "" when err is not a CallError.
func KindOf(err error) FailureKind {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

func IsNotFound(err error) bool  { return KindOf(err) == KindNotFound }
func IsMalformed(err error) bool { return KindOf(err) == KindMalformed }
