package entity

import (
	"errors"
	"fmt"
)

// FailureKind classifies an operational failure
type FailureKind string

const (
	// CapabilityUnavailable means the device has no geolocation capability
	CapabilityUnavailable FailureKind = "capability_unavailable"
	// DeniedOrTimeout means the device refused or timed out the position request
	DeniedOrTimeout FailureKind = "denied_or_timeout"
	// PersistenceFailure means the store rejected a history append or snapshot update
	PersistenceFailure FailureKind = "persistence_failure"
	// NotificationFailure means downstream email dispatch failed
	NotificationFailure FailureKind = "notification_failure"
	// ValidationFailure means input was malformed (coordinates out of range, missing fields)
	ValidationFailure FailureKind = "validation_failure"
)

// Failure is a typed operational error. Components return a Failure and do
// not retry; the caller decides whether to retry on the next scheduled tick.
type Failure struct {
	Kind FailureKind
	Op   string
	Msg  string
	Err  error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Op, f.Msg, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Op, f.Msg)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// NewFailure creates a Failure wrapping an optional cause
func NewFailure(kind FailureKind, op, msg string, err error) *Failure {
	return &Failure{Kind: kind, Op: op, Msg: msg, Err: err}
}

// FailureIs reports whether err carries the given kind
func FailureIs(err error, kind FailureKind) bool {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind == kind
	}
	return false
}
