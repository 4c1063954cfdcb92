package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
	"github.com/adityadutt29/EmeLoc/pkg/metrics"
	"github.com/adityadutt29/EmeLoc/pkg/utils"
	"github.com/adityadutt29/EmeLoc/templates"

	"github.com/go-playground/validator/v10"
)

// CreateCaseInput is the operator's new-case form
type CreateCaseInput struct {
	OperatorID    string `json:"operatorId"`
	ReporterEmail string `json:"email" validate:"required,email"`
	Description   string `json:"description" validate:"required"`
	AmbulanceID   string `json:"ambulanceId"`
}

// CreateCaseResult reports what actually happened. Issues collects partial
// failures that occurred after the case row was committed (ambulance status
// update, notification dispatch); those are reported, never rolled back.
type CreateCaseResult struct {
	CaseID       string
	LocationLink string
	TrackingLink string
	Issues       []error
}

// CaseService binds a new case to an ambulance and hands out the
// location-sharing link. Possession of the link is the entire authorization
// model for the tracking subsystem.
type CaseService struct {
	cases      repository.CaseRepository
	ambulances repository.AmbulanceRepository
	locations  repository.LocationRepository
	mailer     repository.MailerRepository
	notifLog   repository.NotificationLogRepository
	validate   *validator.Validate
	origin     string
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewCaseService creates a new case service. origin is the public base URL
// the shareable links are minted under.
func NewCaseService(
	cases repository.CaseRepository,
	ambulances repository.AmbulanceRepository,
	locations repository.LocationRepository,
	mailer repository.MailerRepository,
	notifLog repository.NotificationLogRepository,
	origin string,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *CaseService {
	return &CaseService{
		cases:      cases,
		ambulances: ambulances,
		locations:  locations,
		mailer:     mailer,
		notifLog:   notifLog,
		validate:   validator.New(),
		origin:     origin,
		logger:     logger,
		metrics:    metrics,
	}
}

// CreateCase persists a new active case and, when an ambulance was selected,
// flips it to busy and notifies its driver. The reporter always receives the
// location-sharing link. Only a failed case insert aborts the operation;
// everything downstream is causally dependent on it but deliberately not
// atomic with it.
func (s *CaseService) CreateCase(ctx context.Context, input CreateCaseInput) (*CreateCaseResult, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, entity.NewFailure(entity.ValidationFailure, "create_case", "invalid case input", err)
	}

	now := time.Now().UTC()
	caseID := utils.NewCaseID()

	newCase := &entity.Case{
		ID:                  caseID,
		OperatorID:          input.OperatorID,
		ReporterEmail:       input.ReporterEmail,
		Description:         input.Description,
		Status:              entity.CaseActive,
		AssignedAmbulanceID: input.AmbulanceID,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.cases.Create(ctx, newCase); err != nil {
		return nil, entity.NewFailure(entity.PersistenceFailure, "create_case", "case insert rejected by store", err)
	}

	result := &CreateCaseResult{
		CaseID:       caseID,
		LocationLink: fmt.Sprintf("%s/location/%s", s.origin, caseID),
	}
	if s.metrics != nil {
		s.metrics.CasesCreated.Inc()
	}

	if input.AmbulanceID != "" {
		s.assignAmbulance(ctx, input.AmbulanceID, newCase, result)
	}

	reporterMsg := templates.ReporterLink(input.ReporterEmail, result.LocationLink)
	s.dispatch(ctx, entity.NotificationReporterLink, caseID, reporterMsg, result)

	s.logger.Info("Case created",
		"caseId", caseID,
		"ambulanceId", input.AmbulanceID,
		"issues", len(result.Issues))
	return result, nil
}

// assignAmbulance flips the selected unit to busy and emails its driver the
// tracking link. Both steps are tolerated-and-reported on failure: the case
// row is already committed.
func (s *CaseService) assignAmbulance(ctx context.Context, ambulanceID string, c *entity.Case, result *CreateCaseResult) {
	amb, err := s.ambulances.FindByID(ctx, ambulanceID)
	if err != nil {
		result.Issues = append(result.Issues,
			entity.NewFailure(entity.PersistenceFailure, "assign_ambulance", "ambulance lookup failed", err))
		return
	}

	if err := s.ambulances.UpdateStatus(ctx, amb.ID, entity.AmbulanceBusy); err != nil {
		result.Issues = append(result.Issues,
			entity.NewFailure(entity.PersistenceFailure, "assign_ambulance", "status update rejected by store", err))
	}

	result.TrackingLink = fmt.Sprintf("%s/track/%s", s.origin, amb.ID)
	driverMsg := templates.DriverAssignment(amb.DriverEmail, c.ID, c.Description, result.TrackingLink)
	s.dispatch(ctx, entity.NotificationDriverAssignment, c.ID, driverMsg, result)
}

// dispatch sends one notification and records the attempt in the audit log.
// Failures are appended to result.Issues; nothing already committed is
// undone.
func (s *CaseService) dispatch(ctx context.Context, kind, caseID string, msg *entity.EmailMessage, result *CreateCaseResult) {
	logEntry := &entity.NotificationLog{
		Kind:      kind,
		To:        msg.To,
		Subject:   msg.Subject,
		CaseID:    caseID,
		CreatedAt: time.Now().UTC(),
	}

	messageID, err := s.mailer.Send(ctx, msg)
	if err != nil {
		logEntry.Status = entity.NotificationFailed
		logEntry.ErrorDetail = err.Error()
		if s.metrics != nil {
			s.metrics.NotificationFailures.WithLabelValues(kind).Inc()
		}
		result.Issues = append(result.Issues,
			entity.NewFailure(entity.NotificationFailure, "dispatch", fmt.Sprintf("%s email failed", kind), err))
	} else {
		logEntry.Status = entity.NotificationSent
		logEntry.MessageID = messageID
		if s.metrics != nil {
			s.metrics.NotificationsSent.WithLabelValues(kind).Inc()
		}
	}

	if s.notifLog != nil {
		if err := s.notifLog.Save(ctx, logEntry); err != nil {
			s.logger.Warn("Failed to save notification log", "caseId", caseID, "error", err)
		}
	}
}
