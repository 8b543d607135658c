package constants

import "carrent/models"

// User roles
const (
	RoleUser  = 0
	RoleAdmin = 1
)

// User status
const (
	UserStatusBlocked = 0
	UserStatusActive  = 1
)

// Rental status. The canonical values live in models next to the state
// machine; these names exist for boundary checks.
const (
	RentalStatusActive    = models.RentalStatusActive
	RentalStatusEnded     = models.RentalStatusEnded
	RentalStatusCancelled = models.RentalStatusCancelled
)

// IsValidRentalStatus reports whether s is one of the recognized rental
// statuses. Anything else is rejected at the boundary, never persisted.
func IsValidRentalStatus(s int) bool {
	switch s {
	case RentalStatusActive, RentalStatusEnded, RentalStatusCancelled:
		return true
	}
	return false
}

// IsTerminalRentalStatus reports whether s closes the rental for good.
func IsTerminalRentalStatus(s int) bool {
	return s == RentalStatusEnded || s == RentalStatusCancelled
}
