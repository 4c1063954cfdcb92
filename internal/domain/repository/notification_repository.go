package repository

import (
	"context"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
)

// MailerRepository dispatches email through the external mail relay.
// Dispatch is fire-and-forget relative to case and location writes: a
// failure here must never roll back anything already committed.
type MailerRepository interface {
	Send(ctx context.Context, msg *entity.EmailMessage) (messageID string, err error)
}

// NotificationLogRepository persists an audit trail of dispatch attempts
type NotificationLogRepository interface {
	Save(ctx context.Context, log *entity.NotificationLog) error
	FindByCase(ctx context.Context, caseID string) ([]*entity.NotificationLog, error)
}
