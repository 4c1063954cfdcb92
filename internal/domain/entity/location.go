package entity

import "time"

// LocationRecord is one timestamped position observation for a tracked
// entity (an ambulance or a case reporter). Records are append-only:
// nothing in the tracking subsystem ever mutates or deletes one.
type LocationRecord struct {
	ID        string    `json:"id"`
	EntityID  string    `json:"entityId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

// LatLng is a single polyline vertex in render order.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
