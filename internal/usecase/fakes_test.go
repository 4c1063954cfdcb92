package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"

	"gorm.io/gorm"
)

type fakeHistory struct {
	mu        sync.Mutex
	records   []entity.LocationRecord
	insertErr error
	queryErr  error
}

func (f *fakeHistory) Insert(_ context.Context, record *entity.LocationRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeHistory) FindByEntity(_ context.Context, entityID string, limit int) ([]entity.LocationRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entity.LocationRecord
	for _, r := range f.records {
		if r.EntityID == entityID {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistory) FindAllOrdered(_ context.Context) ([]entity.LocationRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.LocationRecord, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeHistory) LatestByEntity(_ context.Context, entityID string) (*entity.LocationRecord, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.LocationRecord
	for i := range f.records {
		r := f.records[i]
		if r.EntityID != entityID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = &r
		}
	}
	if latest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return latest, nil
}

func (f *fakeHistory) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeSnapshots struct {
	mu      sync.Mutex
	updates int
	err     error
}

func (f *fakeSnapshots) UpdateLastPosition(_ context.Context, _ string, _, _ float64, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return nil
}

func (f *fakeSnapshots) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updates
}

type fakeAmbulances struct {
	ambulances map[string]*entity.Ambulance
	statusErr  error
	queryErr   error
}

func newFakeAmbulances(ambulances ...*entity.Ambulance) *fakeAmbulances {
	f := &fakeAmbulances{ambulances: map[string]*entity.Ambulance{}}
	for _, a := range ambulances {
		f.ambulances[a.ID] = a
	}
	return f
}

func (f *fakeAmbulances) Create(_ context.Context, a *entity.Ambulance) error {
	f.ambulances[a.ID] = a
	return nil
}

func (f *fakeAmbulances) FindByID(_ context.Context, id string) (*entity.Ambulance, error) {
	a, ok := f.ambulances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAmbulances) FindByStatus(_ context.Context, status string) ([]*entity.Ambulance, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []*entity.Ambulance
	for _, a := range f.ambulances {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAmbulances) FindAll(_ context.Context) ([]*entity.Ambulance, error) {
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	var out []*entity.Ambulance
	for _, a := range f.ambulances {
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAmbulances) UpdateStatus(_ context.Context, id, status string) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	a, ok := f.ambulances[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (f *fakeAmbulances) UpdateLastPosition(_ context.Context, id string, lat, lon float64, at time.Time) error {
	a, ok := f.ambulances[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Latitude = &lat
	a.Longitude = &lon
	a.LastUpdated = &at
	return nil
}

type fakeCases struct {
	cases     map[string]*entity.Case
	createErr error
}

func newFakeCases() *fakeCases {
	return &fakeCases{cases: map[string]*entity.Case{}}
}

func (f *fakeCases) Create(_ context.Context, c *entity.Case) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.cases[c.ID] = c
	return nil
}

func (f *fakeCases) FindByID(_ context.Context, id string) (*entity.Case, error) {
	c, ok := f.cases[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakeCases) FindActiveByAmbulance(_ context.Context, ambulanceID string) (*entity.Case, error) {
	for _, c := range f.cases {
		if c.AssignedAmbulanceID == ambulanceID && c.Status == entity.CaseActive {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCases) UpdateLastPosition(_ context.Context, id string, lat, lon float64, at time.Time) error {
	c, ok := f.cases[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Latitude = &lat
	c.Longitude = &lon
	c.LastUpdated = &at
	return nil
}

type sentMail struct {
	to      string
	subject string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]error
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failFor: map[string]error{}}
}

func (f *fakeMailer) Send(_ context.Context, msg *entity.EmailMessage) (string, error) {
	if err, ok := f.failFor[msg.To]; ok {
		return "", err
	}
	f.sent = append(f.sent, sentMail{to: msg.To, subject: msg.Subject})
	return "msg-" + msg.To, nil
}

type fakeNotifLog struct {
	entries []*entity.NotificationLog
}

func (f *fakeNotifLog) Save(_ context.Context, log *entity.NotificationLog) error {
	f.entries = append(f.entries, log)
	return nil
}

func (f *fakeNotifLog) FindByCase(_ context.Context, caseID string) ([]*entity.NotificationLog, error) {
	var out []*entity.NotificationLog
	for _, e := range f.entries {
		if e.CaseID == caseID {
			out = append(out, e)
		}
	}
	return out, nil
}
