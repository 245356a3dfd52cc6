package enums

import (
	"fmt"
	"strings"
)

// DriverStatus tracks whether a driver can take new deliveries.
type DriverStatus string

const (
	DriverStatusAvailable   DriverStatus = "available"
	DriverStatusUnavailable DriverStatus = "unavailable"
)

var validDriverStatuses = []DriverStatus{
	DriverStatusAvailable,
	DriverStatusUnavailable,
}

// String implements fmt.Stringer.
func (d DriverStatus) String() string {
	return string(d)
}

// IsValid reports whether the value is a known DriverStatus.
func (d DriverStatus) IsValid() bool {
	for _, candidate := range validDriverStatuses {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDriverStatus converts raw input into a DriverStatus, ignoring case.
func ParseDriverStatus(value string) (DriverStatus, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validDriverStatuses {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid driver status %q", value)
}
