// Package coupon decides whether a coupon's validity window admits use at a
// given instant, and classifies coupons for display.
package coupon

import (
	"time"

	"github.com/pricewise/pricewise/internal/models"
)

// ExpiryWarningWindow is how close to expiry a coupon gets flagged as
// expiring soon.
const ExpiryWarningWindow = 7 * 24 * time.Hour

// Status classifies a coupon relative to its validity window.
type Status int

const (
	StatusActive Status = iota
	StatusExpiringSoon
	StatusExpired
	// StatusNotYetStarted marks a coupon whose window has not opened. It is
	// kept distinct so the classification is total, but display collapses it
	// into the expired bucket.
	StatusNotYetStarted
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusExpiringSoon:
		return "expiring_soon"
	case StatusExpired:
		return "expired"
	case StatusNotYetStarted:
		return "not_yet_started"
	}
	return "unknown"
}

// Applicable reports whether a coupon in this state may be applied at
// checkout. Expiring-soon coupons stay usable; only coupons outside their
// window are rejected.
func (s Status) Applicable() bool {
	return s == StatusActive || s == StatusExpiringSoon
}

// Display is the user-facing label. Not-yet-started renders as expired.
func (s Status) Display() string {
	if s == StatusNotYetStarted {
		return StatusExpired.String()
	}
	return s.String()
}

// IsActive reports whether now falls inside the coupon's validity window,
// boundaries included.
func IsActive(c models.Coupon, now time.Time) bool {
	return !now.Before(c.ValidFrom) && !now.After(c.ValidUntil)
}

// Classify resolves a coupon to exactly one status at the given instant.
func Classify(c models.Coupon, now time.Time) Status {
	if now.After(c.ValidUntil) {
		return StatusExpired
	}
	if now.Before(c.ValidFrom) {
		return StatusNotYetStarted
	}
	if c.ValidUntil.Sub(now) < ExpiryWarningWindow {
		return StatusExpiringSoon
	}
	return StatusActive
}
