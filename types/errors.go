package types

import (
	"errors"
	"fmt"
)

const (
	ErrInvalidInput         = "Invalid input"
	ErrDatabaseError        = "Database error"
	ErrInternalError        = "internal server error"
	ErrEmployeeNotFound     = "Employee not found"
	ErrCompensationNotFound = "Compensation not found"
	ErrCompensationRequired = "Compensation and Employee information must be provided."
	ErrReportingCycle       = "Reporting structure contains a cycle"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrPersistence   = errors.New("persistence failure")
	ErrCycleDetected = errors.New("cycle detected")
)

type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindValidation    Kind = "validation"
	KindPersistence   Kind = "persistence"
	KindCycleDetected Kind = "cycle_detected"
)

var kindSentinels = map[Kind]error{
	KindNotFound:      ErrNotFound,
	KindValidation:    ErrValidation,
	KindPersistence:   ErrPersistence,
	KindCycleDetected: ErrCycleDetected,
}

// Error wraps an underlying error with the operation that produced it.
type Error struct {
	Op   string
	Kind Kind
	ID   string // employee id the operation was keyed on, if any
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.ID != "" {
		base += fmt.Sprintf(" (id=%s)", e.ID)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is(err, types.ErrNotFound) match on kind alone.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	sentinel, ok := kindSentinels[e.Kind]
	return ok && sentinel == target
}

func NotFound(op, id string) error {
	return &Error{Op: op, Kind: KindNotFound, ID: id}
}

func Validation(op, msg string) error {
	return &Error{Op: op, Kind: KindValidation, Err: errors.New(msg)}
}

func Persistence(op, id string, err error) error {
	return &Error{Op: op, Kind: KindPersistence, ID: id, Err: err}
}

func CycleDetected(op, id string) error {
	return &Error{Op: op, Kind: KindCycleDetected, ID: id}
}

// IsKind helps callers classify errors without depending on store packages.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
