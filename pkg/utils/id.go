package utils

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Entity id prefixes. The prefix encodes the entity type, which the
// snapshot router uses to pick the right table for last-position updates.
const (
	AmbulancePrefix = "amb-"
	CasePrefix      = "case-"
)

// NewAmbulanceID generates an ambulance id of the form "amb-{epochMillis}-{suffix}"
func NewAmbulanceID() string {
	return newPrefixedID(AmbulancePrefix)
}

// NewCaseID generates a case id of the form "case-{epochMillis}-{suffix}"
func NewCaseID() string {
	return newPrefixedID(CasePrefix)
}

func newPrefixedID(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("%s%d-%s", prefix, time.Now().UnixMilli(), suffix)
}

// IsAmbulanceID reports whether id belongs to an ambulance
func IsAmbulanceID(id string) bool {
	return strings.HasPrefix(id, AmbulancePrefix)
}

// IsCaseID reports whether id belongs to a case
func IsCaseID(id string) bool {
	return strings.HasPrefix(id, CasePrefix)
}

// RoundCoordinate rounds a coordinate to the stored precision of 8 decimal places
func RoundCoordinate(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
