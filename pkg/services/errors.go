package services

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes why a submission failed
type ErrorKind int

const (
	KindConfiguration ErrorKind = iota + 1
	KindValidation
	KindConflict
	KindAuth
	KindLookup
	KindRead
	KindWrite
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindLookup:
		return "lookup"
	case KindRead:
		return "read"
	case KindWrite:
		return "write"
	default:
		return "unknown"
	}
}

// ClientError reports whether the caller can fix the failure by resubmitting
// different input.
func (k ErrorKind) ClientError() bool {
	return k == KindValidation || k == KindConflict
}

// Messages surfaced in the response error field
const (
	MsgNotConfigured   = "Google Sheets not configured"
	MsgAuthFailed      = "Google auth failed"
	MsgLookupFailed    = "Spreadsheet get failed"
	MsgReadFailed      = "Spreadsheet read failed"
	MsgAppendFailed    = "Google Sheets append failed"
	MsgEmailRegistered = "Email already registered"
	MsgPhoneRegistered = "Phone already registered"
)

// IntakeError is the only error type the intake pipeline returns.
type IntakeError struct {
	Kind    ErrorKind
	Message string
	Err     error

	// Missing and Settings are set for configuration errors only
	Missing  []string
	Settings map[string]bool
}

func (e *IntakeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *IntakeError) Unwrap() error {
	return e.Err
}

// Detail is the underlying error text, empty for client errors.
func (e *IntakeError) Detail() string {
	if e.Kind.ClientError() || e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// KindOf returns the kind of an IntakeError anywhere in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var ie *IntakeError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return 0
}

func validationError(reason string) *IntakeError {
	return &IntakeError{Kind: KindValidation, Message: reason}
}

func conflictError(reason string) *IntakeError {
	return &IntakeError{Kind: KindConflict, Message: reason}
}

func storeError(kind ErrorKind, msg string, err error) *IntakeError {
	return &IntakeError{Kind: kind, Message: msg, Err: err}
}
