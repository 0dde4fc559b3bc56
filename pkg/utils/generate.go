package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== BOOKING REFERENCE ====================

const bookingReferenceLength = 8

// GenerateBookingReference derives the short display code shown on tickets
// from the booking ID: its last 8 hex characters, upper-cased. It is only a
// display code and is never used to look bookings up.
func GenerateBookingReference(bookingID uuid.UUID) string {
	raw := strings.ReplaceAll(bookingID.String(), "-", "")
	return strings.ToUpper(raw[len(raw)-bookingReferenceLength:])
}

// ==================== QUERY PARAMS ====================

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}
