package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/geo"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
)

func newTestRecorder(history *fakeHistory, snapshots *fakeSnapshots, locator geo.Locator) *LocationRecorder {
	return NewLocationRecorder(history, snapshots, locator, logger.NewNop(), nil)
}

func TestRecordRejectsOutOfRangeCoordinates(t *testing.T) {
	tests := []struct {
		name string
		pos  geo.Position
	}{
		{"latitude above range", geo.Position{Latitude: 91, Longitude: 0}},
		{"latitude below range", geo.Position{Latitude: -90.5, Longitude: 0}},
		{"longitude above range", geo.Position{Latitude: 0, Longitude: 180.1}},
		{"longitude below range", geo.Position{Latitude: 0, Longitude: -181}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &fakeHistory{}
			snapshots := &fakeSnapshots{}
			r := newTestRecorder(history, snapshots, nil)

			record, err := r.Record(context.Background(), "amb-1", tt.pos)
			if record != nil {
				t.Error("expected no record for malformed coordinates")
			}
			if !entity.FailureIs(err, entity.ValidationFailure) {
				t.Errorf("err = %v, want ValidationFailure", err)
			}
			if history.count() != 0 {
				t.Errorf("history writes = %d, want 0", history.count())
			}
			if snapshots.count() != 0 {
				t.Errorf("snapshot writes = %d, want 0", snapshots.count())
			}
		})
	}
}

func TestRecordRequiresEntityID(t *testing.T) {
	r := newTestRecorder(&fakeHistory{}, &fakeSnapshots{}, nil)

	_, err := r.Record(context.Background(), "", geo.Position{Latitude: 1, Longitude: 1})
	if !entity.FailureIs(err, entity.ValidationFailure) {
		t.Errorf("err = %v, want ValidationFailure", err)
	}
}

func TestRecordRoundsToStoredPrecision(t *testing.T) {
	history := &fakeHistory{}
	r := newTestRecorder(history, &fakeSnapshots{}, nil)

	record, err := r.Record(context.Background(), "amb-1", geo.Position{
		Latitude:  12.123456789,
		Longitude: -45.987654321,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.Latitude != 12.12345679 {
		t.Errorf("latitude = %v, want 12.12345679", record.Latitude)
	}
	if record.Longitude != -45.98765432 {
		t.Errorf("longitude = %v, want -45.98765432", record.Longitude)
	}
}

func TestRecordAppendsHistoryAndUpdatesSnapshot(t *testing.T) {
	history := &fakeHistory{}
	snapshots := &fakeSnapshots{}
	r := newTestRecorder(history, snapshots, nil)

	record, err := r.Record(context.Background(), "amb-1", geo.Position{Latitude: 10, Longitude: 20})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if record.ID == "" || record.Timestamp.IsZero() {
		t.Error("record missing id or timestamp")
	}
	if history.count() != 1 {
		t.Errorf("history writes = %d, want exactly 1", history.count())
	}
	if snapshots.count() != 1 {
		t.Errorf("snapshot writes = %d, want at most 1, got %d", snapshots.count(), snapshots.count())
	}
}

func TestRecordHistoryFailure(t *testing.T) {
	history := &fakeHistory{insertErr: errors.New("store down")}
	snapshots := &fakeSnapshots{}
	r := newTestRecorder(history, snapshots, nil)

	record, err := r.Record(context.Background(), "amb-1", geo.Position{Latitude: 1, Longitude: 1})
	if record != nil {
		t.Error("expected no record when the append fails")
	}
	if !entity.FailureIs(err, entity.PersistenceFailure) {
		t.Errorf("err = %v, want PersistenceFailure", err)
	}
	if snapshots.count() != 0 {
		t.Error("snapshot must not be touched when the append fails")
	}
}

func TestRecordSnapshotFailureKeepsDurableAppend(t *testing.T) {
	history := &fakeHistory{}
	snapshots := &fakeSnapshots{err: errors.New("entity deleted")}
	r := newTestRecorder(history, snapshots, nil)

	record, err := r.Record(context.Background(), "amb-1", geo.Position{Latitude: 1, Longitude: 1})
	if !entity.FailureIs(err, entity.PersistenceFailure) {
		t.Errorf("err = %v, want PersistenceFailure", err)
	}
	if record == nil {
		t.Fatal("the append succeeded; the record must still be returned")
	}
	if history.count() != 1 {
		t.Errorf("history writes = %d, want 1", history.count())
	}
}

func TestCaptureLocatorFailures(t *testing.T) {
	tests := []struct {
		name     string
		locator  geo.Locator
		wantKind entity.FailureKind
	}{
		{"no capability", geo.Static{Err: geo.ErrUnavailable}, entity.CapabilityUnavailable},
		{"denied", geo.Static{Err: geo.ErrDenied}, entity.DeniedOrTimeout},
		{"timed out", geo.Static{Err: geo.ErrTimeout}, entity.DeniedOrTimeout},
		{"nil locator", nil, entity.CapabilityUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &fakeHistory{}
			r := newTestRecorder(history, &fakeSnapshots{}, tt.locator)

			record, err := r.Capture(context.Background(), "amb-1")
			if record != nil {
				t.Error("expected no record on locator failure")
			}
			if !entity.FailureIs(err, tt.wantKind) {
				t.Errorf("err = %v, want kind %s", err, tt.wantKind)
			}
			if history.count() != 0 {
				t.Error("locator failures must not write history")
			}
		})
	}
}

func TestCapturePersistsLocatorFix(t *testing.T) {
	history := &fakeHistory{}
	snapshots := &fakeSnapshots{}
	locator := geo.Static{Position: geo.Position{Latitude: 48.8566, Longitude: 2.3522}}
	r := newTestRecorder(history, snapshots, locator)

	record, err := r.Capture(context.Background(), "amb-1")
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if record.Latitude != 48.8566 || record.Longitude != 2.3522 {
		t.Errorf("record position = (%v, %v), want the locator fix", record.Latitude, record.Longitude)
	}
	if history.count() != 1 || snapshots.count() != 1 {
		t.Errorf("writes = (%d history, %d snapshot), want (1, 1)", history.count(), snapshots.count())
	}
}
