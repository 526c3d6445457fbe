package enums

import "fmt"

// RentalStatus describes the lifecycle of a rental record.
type RentalStatus string

const (
	RentalStatusActive    RentalStatus = "active"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusDisputed  RentalStatus = "disputed"
)

var validRentalStatuses = []RentalStatus{
	RentalStatusActive,
	RentalStatusCompleted,
	RentalStatusDisputed,
}

// IsValid reports whether the value matches the canonical rental status enum.
func (s RentalStatus) IsValid() bool {
	for _, candidate := range validRentalStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRentalStatus converts the raw string to RentalStatus.
func ParseRentalStatus(value string) (RentalStatus, error) {
	for _, candidate := range validRentalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental status %q", value)
}
