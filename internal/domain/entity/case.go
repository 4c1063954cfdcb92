package entity

import "time"

// Case Status
const (
	CaseActive = "active"
	CaseClosed = "closed"
)

// Case represents an emergency case opened by an operator
type Case struct {
	ID                  string     `json:"id"`
	OperatorID          string     `json:"operatorId"`
	ReporterEmail       string     `json:"reporterEmail"`
	Description         string     `json:"description"`
	Status              string     `json:"status"`
	AssignedAmbulanceID string     `json:"assignedAmbulanceId,omitempty"`
	Latitude            *float64   `json:"latitude,omitempty"`
	Longitude           *float64   `json:"longitude,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	LastUpdated         *time.Time `json:"lastUpdated,omitempty"`
}
