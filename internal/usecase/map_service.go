package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
	"github.com/adityadutt29/EmeLoc/pkg/metrics"
)

// AmbulanceView is one ambulance on the dashboard map: current marker
// position, path polyline and display metadata joined from the
// ambulances table.
type AmbulanceView struct {
	ID           string                `json:"id"`
	LicensePlate string                `json:"licensePlate"`
	Status       string                `json:"status"`
	Current      entity.LocationRecord `json:"current"`
	Path         []entity.LatLng       `json:"path"`
	Meta         TrackMeta             `json:"meta"`
}

// MapSnapshot is one published map view
type MapSnapshot struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Ambulances  []AmbulanceView `json:"ambulances"`
}

// MapRefresher is the viewing side of the tracking loop. On every scheduler
// fire it re-reads location history, aggregates paths and publishes an
// immutable snapshot for the map endpoint. History entries that no longer
// join to an ambulance row (deleted units, case reporters) are dropped from
// the view here, never by the aggregation itself.
type MapRefresher struct {
	locations  repository.LocationRepository
	ambulances repository.AmbulanceRepository
	logger     logger.Logger
	metrics    *metrics.Metrics

	mu   sync.RWMutex
	snap *MapSnapshot
}

// NewMapRefresher creates a new map refresher
func NewMapRefresher(
	locations repository.LocationRepository,
	ambulances repository.AmbulanceRepository,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *MapRefresher {
	return &MapRefresher{
		locations:  locations,
		ambulances: ambulances,
		logger:     logger,
		metrics:    metrics,
		snap:       &MapSnapshot{Ambulances: []AmbulanceView{}},
	}
}

// Refresh rebuilds the map snapshot. It satisfies TickFunc so a
// TrackingScheduler can drive it; the entity id is unused because the map
// view spans every ambulance.
func (m *MapRefresher) Refresh(ctx context.Context, _ string) error {
	started := time.Now()

	records, err := m.locations.FindAllOrdered(ctx)
	if err != nil {
		return entity.NewFailure(entity.PersistenceFailure, "map_refresh", "history query failed", err)
	}

	ambulances, err := m.ambulances.FindAll(ctx)
	if err != nil {
		return entity.NewFailure(entity.PersistenceFailure, "map_refresh", "ambulance query failed", err)
	}
	byID := make(map[string]*entity.Ambulance, len(ambulances))
	for _, a := range ambulances {
		byID[a.ID] = a
	}

	tracks := Aggregate(records)

	views := make([]AmbulanceView, 0, len(tracks))
	for id, track := range tracks {
		amb, ok := byID[id]
		if !ok {
			continue
		}
		views = append(views, AmbulanceView{
			ID:           id,
			LicensePlate: amb.LicensePlate,
			Status:       amb.Status,
			Current:      track.Current,
			Path:         track.Path,
			Meta:         track.Meta,
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })

	m.mu.Lock()
	m.snap = &MapSnapshot{GeneratedAt: time.Now().UTC(), Ambulances: views}
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.PathAggregations.Inc()
		m.metrics.AggregationTime.Observe(time.Since(started).Seconds())
	}

	m.logger.Debug("Map snapshot rebuilt",
		"ambulances", len(views), "records", len(records))
	return nil
}

// Snapshot returns the most recently published map view
func (m *MapRefresher) Snapshot() *MapSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}
