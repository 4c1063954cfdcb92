package entity

import "time"

// Ambulance Status
const (
	AmbulanceAvailable = "available"
	AmbulanceBusy      = "busy"
)

// Ambulance represents a tracked ambulance unit
type Ambulance struct {
	ID           string     `json:"id"`
	LicensePlate string     `json:"licensePlate"`
	DriverEmail  string     `json:"driverEmail"`
	Status       string     `json:"status"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	LastUpdated  *time.Time `json:"lastUpdated,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
