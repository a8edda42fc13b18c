package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds callers must tell apart. A rejected
// coupon is not the same as "no coupon applied", and a duplicate code is a
// conflict rather than a generic failure.
var (
	ErrInvalidCoupon = errors.New("invalid coupon")
	ErrDuplicateCode = errors.New("coupon code already exists")
	ErrOutOfStock    = errors.New("insufficient stock")
	ErrNotFound      = errors.New("not found")
)

// ValidationError reports malformed input. It is surfaced immediately and
// never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
