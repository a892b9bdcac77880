package models

import "fmt"

// ValidationError rejects malformed input before anything is stored.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IllegalTransitionError means the (from, to, role, method) tuple is not in
// the transition table. The stored order is left untouched.
type IllegalTransitionError struct {
	From   OrderStatus
	To     OrderStatus
	Role   Role
	Reason string
}

func (e *IllegalTransitionError) Error() string {
	msg := fmt.Sprintf("illegal transition %s -> %s for role %s", e.From, e.To, e.Role)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// StorageUnavailableError wraps any fault of the persistence boundary.
type StorageUnavailableError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageUnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageUnavailableError) Unwrap() error {
	return e.Err
}
