package entity

import "time"

// Notification Kind
const (
	NotificationReporterLink     = "reporter_link"
	NotificationDriverAssignment = "driver_assignment"
)

// Notification Status
const (
	NotificationSent   = "SENT"
	NotificationFailed = "FAILED"
)

// EmailMessage is the payload sent to the external mail relay.
type EmailMessage struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	TextPart string `json:"textPart"`
	HTMLPart string `json:"htmlPart"`
}

// NotificationLog records one dispatch attempt against the mail relay.
type NotificationLog struct {
	ID          string    `bson:"_id,omitempty"`
	Kind        string    `bson:"kind"`
	To          string    `bson:"to"`
	Subject     string    `bson:"subject"`
	CaseID      string    `bson:"caseId,omitempty"`
	MessageID   string    `bson:"messageId,omitempty"`
	Status      string    `bson:"status"`
	ErrorDetail string    `bson:"errorDetail,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
}
