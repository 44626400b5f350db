package service

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to handlers. Match with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation failed")
)

// ledgerError carries a client-facing message while unwrapping to its kind.
type ledgerError struct {
	kind error
	msg  string
}

func (e *ledgerError) Error() string { return e.msg }
func (e *ledgerError) Unwrap() error { return e.kind }

func notFoundf(format string, args ...any) error {
	return &ledgerError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func insufficientStockf(format string, args ...any) error {
	return &ledgerError{kind: ErrInsufficientStock, msg: fmt.Sprintf(format, args...)}
}

func invalidf(format string, args ...any) error {
	return &ledgerError{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}
