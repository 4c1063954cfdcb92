package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
)

const testOrigin = "https://dispatch.example.com"

func newTestCaseService(cases *fakeCases, ambulances *fakeAmbulances, mailer *fakeMailer, notifLog *fakeNotifLog) *CaseService {
	return NewCaseService(cases, ambulances, &fakeHistory{}, mailer, notifLog, testOrigin, logger.NewNop(), nil)
}

func availableAmbulance(id string) *entity.Ambulance {
	return &entity.Ambulance{
		ID:           id,
		LicensePlate: "KA-01-1234",
		DriverEmail:  "driver@example.com",
		Status:       entity.AmbulanceAvailable,
	}
}

func TestCreateCaseWithoutAmbulance(t *testing.T) {
	cases := newFakeCases()
	ambulances := newFakeAmbulances(availableAmbulance("amb-1"))
	mailer := newFakeMailer()
	notifLog := &fakeNotifLog{}
	s := newTestCaseService(cases, ambulances, mailer, notifLog)

	result, err := s.CreateCase(context.Background(), CreateCaseInput{
		OperatorID:    "op-1",
		ReporterEmail: "victim@example.com",
		Description:   "road accident",
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}

	stored, ok := cases.cases[result.CaseID]
	if !ok {
		t.Fatal("case row not persisted")
	}
	if stored.Status != entity.CaseActive {
		t.Errorf("status = %s, want active", stored.Status)
	}
	if stored.AssignedAmbulanceID != "" {
		t.Errorf("assigned ambulance = %q, want empty", stored.AssignedAmbulanceID)
	}
	if !strings.HasPrefix(result.CaseID, "case-") {
		t.Errorf("case id = %s, want case- prefix", result.CaseID)
	}
	if result.LocationLink != testOrigin+"/location/"+result.CaseID {
		t.Errorf("location link = %s", result.LocationLink)
	}

	// No ambulance selected: its status is untouched and only the
	// reporter gets a notification.
	if ambulances.ambulances["amb-1"].Status != entity.AmbulanceAvailable {
		t.Error("ambulance status changed without an assignment")
	}
	if len(mailer.sent) != 1 || mailer.sent[0].to != "victim@example.com" {
		t.Errorf("sent = %v, want exactly one reporter mail", mailer.sent)
	}
	if len(result.Issues) != 0 {
		t.Errorf("issues = %v, want none", result.Issues)
	}
}

func TestCreateCaseWithAmbulance(t *testing.T) {
	cases := newFakeCases()
	ambulances := newFakeAmbulances(availableAmbulance("amb-1"))
	mailer := newFakeMailer()
	notifLog := &fakeNotifLog{}
	s := newTestCaseService(cases, ambulances, mailer, notifLog)

	result, err := s.CreateCase(context.Background(), CreateCaseInput{
		ReporterEmail: "victim@example.com",
		Description:   "cardiac arrest",
		AmbulanceID:   "amb-1",
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}

	if ambulances.ambulances["amb-1"].Status != entity.AmbulanceBusy {
		t.Error("ambulance not flipped to busy")
	}
	if result.TrackingLink != testOrigin+"/track/amb-1" {
		t.Errorf("tracking link = %s", result.TrackingLink)
	}
	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d mails, want 2 (driver + reporter)", len(mailer.sent))
	}
	if mailer.sent[0].to != "driver@example.com" || mailer.sent[1].to != "victim@example.com" {
		t.Errorf("recipients = %v", mailer.sent)
	}
	if len(notifLog.entries) != 2 {
		t.Errorf("notification log entries = %d, want 2", len(notifLog.entries))
	}
	for _, e := range notifLog.entries {
		if e.Status != entity.NotificationSent {
			t.Errorf("log status = %s, want SENT", e.Status)
		}
	}
}

func TestCreateCaseDriverMailFailureIsReportedNotRolledBack(t *testing.T) {
	cases := newFakeCases()
	ambulances := newFakeAmbulances(availableAmbulance("amb-1"))
	mailer := newFakeMailer()
	mailer.failFor["driver@example.com"] = errors.New("relay refused")
	notifLog := &fakeNotifLog{}
	s := newTestCaseService(cases, ambulances, mailer, notifLog)

	result, err := s.CreateCase(context.Background(), CreateCaseInput{
		ReporterEmail: "victim@example.com",
		Description:   "fire",
		AmbulanceID:   "amb-1",
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}

	// Case and status change persist; exactly one failure is reported.
	if _, ok := cases.cases[result.CaseID]; !ok {
		t.Error("case row lost after notification failure")
	}
	if ambulances.ambulances["amb-1"].Status != entity.AmbulanceBusy {
		t.Error("status change lost after notification failure")
	}
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %d, want exactly 1", len(result.Issues))
	}
	if !entity.FailureIs(result.Issues[0], entity.NotificationFailure) {
		t.Errorf("issue = %v, want NotificationFailure", result.Issues[0])
	}

	// The reporter mail still went out, and the failed attempt is logged.
	if len(mailer.sent) != 1 || mailer.sent[0].to != "victim@example.com" {
		t.Errorf("sent = %v, want only the reporter mail", mailer.sent)
	}
	var failed int
	for _, e := range notifLog.entries {
		if e.Status == entity.NotificationFailed {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("failed log entries = %d, want 1", failed)
	}
}

func TestCreateCaseValidation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateCaseInput
	}{
		{"missing email", CreateCaseInput{Description: "x"}},
		{"malformed email", CreateCaseInput{ReporterEmail: "not-an-email", Description: "x"}},
		{"missing description", CreateCaseInput{ReporterEmail: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cases := newFakeCases()
			s := newTestCaseService(cases, newFakeAmbulances(), newFakeMailer(), &fakeNotifLog{})

			_, err := s.CreateCase(context.Background(), tt.input)
			if !entity.FailureIs(err, entity.ValidationFailure) {
				t.Errorf("err = %v, want ValidationFailure", err)
			}
			if len(cases.cases) != 0 {
				t.Error("no case may be persisted on validation failure")
			}
		})
	}
}

func TestCreateCaseInsertFailureAbortsEverything(t *testing.T) {
	cases := newFakeCases()
	cases.createErr = errors.New("store down")
	ambulances := newFakeAmbulances(availableAmbulance("amb-1"))
	mailer := newFakeMailer()
	s := newTestCaseService(cases, ambulances, mailer, &fakeNotifLog{})

	_, err := s.CreateCase(context.Background(), CreateCaseInput{
		ReporterEmail: "victim@example.com",
		Description:   "flood",
		AmbulanceID:   "amb-1",
	})
	if !entity.FailureIs(err, entity.PersistenceFailure) {
		t.Errorf("err = %v, want PersistenceFailure", err)
	}
	if ambulances.ambulances["amb-1"].Status != entity.AmbulanceAvailable {
		t.Error("ambulance status must not change when the case insert fails")
	}
	if len(mailer.sent) != 0 {
		t.Error("no notification may be dispatched when the case insert fails")
	}
}

func TestCreateCaseStatusUpdateFailureIsReported(t *testing.T) {
	cases := newFakeCases()
	ambulances := newFakeAmbulances(availableAmbulance("amb-1"))
	ambulances.statusErr = errors.New("store down")
	mailer := newFakeMailer()
	s := newTestCaseService(cases, ambulances, mailer, &fakeNotifLog{})

	result, err := s.CreateCase(context.Background(), CreateCaseInput{
		ReporterEmail: "victim@example.com",
		Description:   "collapse",
		AmbulanceID:   "amb-1",
	})
	if err != nil {
		t.Fatalf("CreateCase: %v", err)
	}

	// The case is committed; the status-update failure is reported and
	// the driver is still notified.
	if len(result.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(result.Issues))
	}
	if !entity.FailureIs(result.Issues[0], entity.PersistenceFailure) {
		t.Errorf("issue = %v, want PersistenceFailure", result.Issues[0])
	}
	if len(mailer.sent) != 2 {
		t.Errorf("sent %d mails, want 2", len(mailer.sent))
	}
}

func TestDriverViewNoActiveCase(t *testing.T) {
	s := newTestCaseService(newFakeCases(), newFakeAmbulances(), newFakeMailer(), &fakeNotifLog{})

	view, err := s.DriverView(context.Background(), "amb-1")
	if err != nil {
		t.Fatalf("DriverView: %v", err)
	}
	if view.AssignedCase != nil || view.VictimPosition != nil {
		t.Errorf("view = %+v, want empty", view)
	}
}

func TestDriverViewUsesCaseSnapshot(t *testing.T) {
	cases := newFakeCases()
	lat, lon := 12.5, 77.5
	cases.cases["case-7"] = &entity.Case{
		ID:                  "case-7",
		Status:              entity.CaseActive,
		AssignedAmbulanceID: "amb-1",
		Latitude:            &lat,
		Longitude:           &lon,
	}
	s := newTestCaseService(cases, newFakeAmbulances(), newFakeMailer(), &fakeNotifLog{})

	view, err := s.DriverView(context.Background(), "amb-1")
	if err != nil {
		t.Fatalf("DriverView: %v", err)
	}
	if view.AssignedCase == nil || view.AssignedCase.ID != "case-7" {
		t.Fatalf("assigned case = %+v", view.AssignedCase)
	}
	if view.VictimPosition == nil || view.VictimPosition.Latitude != 12.5 {
		t.Errorf("victim position = %+v", view.VictimPosition)
	}
}

func TestLocationSharedUnknownCase(t *testing.T) {
	s := newTestCaseService(newFakeCases(), newFakeAmbulances(), newFakeMailer(), &fakeNotifLog{})

	_, err := s.LocationShared(context.Background(), "case-missing")
	if !entity.FailureIs(err, entity.ValidationFailure) {
		t.Errorf("err = %v, want ValidationFailure", err)
	}
}
