package templates

import (
	"fmt"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
)

// ReporterLink builds the email asking a case reporter to share their
// location through the one-time link.
func ReporterLink(to, locationLink string) *entity.EmailMessage {
	return &entity.EmailMessage{
		To:       to,
		Subject:  "Emergency Response Link",
		TextPart: fmt.Sprintf("Please click on this link to share your location: %s", locationLink),
		HTMLPart: fmt.Sprintf(`<h3>Please click on this <a href="%s">link</a> to share your location.</h3>`, locationLink),
	}
}

// DriverAssignment builds the email telling an ambulance driver about a
// newly assigned case.
func DriverAssignment(to, caseID, description, trackingLink string) *entity.EmailMessage {
	return &entity.EmailMessage{
		To:      to,
		Subject: "New Emergency Case Assigned",
		TextPart: fmt.Sprintf(
			"You have been assigned a new emergency case. Case ID: %s. Description: %s. Tracking link: %s",
			caseID, description, trackingLink),
		HTMLPart: fmt.Sprintf(`
			<h3>New Emergency Case Assigned</h3>
			<p>You have been assigned a new emergency case.</p>
			<p><strong>Case ID:</strong> %s</p>
			<p><strong>Description:</strong> %s</p>
			<p>Open your <a href="%s">tracking page</a> to start sharing your position.</p>`,
			caseID, description, trackingLink),
	}
}
