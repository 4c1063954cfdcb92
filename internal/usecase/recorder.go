package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
	"github.com/adityadutt29/EmeLoc/internal/domain/repository"
	"github.com/adityadutt29/EmeLoc/internal/geo"
	"github.com/adityadutt29/EmeLoc/pkg/logger"
	"github.com/adityadutt29/EmeLoc/pkg/metrics"
	"github.com/adityadutt29/EmeLoc/pkg/utils"

	"github.com/google/uuid"
)

// LocationRecorder captures device positions and appends them to the
// location history. Every successful capture performs two writes: the
// history append (durable, source of truth) and a best-effort update of the
// entity's denormalized last-position snapshot. The two writes are not
// transactional; a failed snapshot update never invalidates the append.
type LocationRecorder struct {
	history   repository.LocationRepository
	snapshots repository.SnapshotRepository
	locator   geo.Locator
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewLocationRecorder creates a new location recorder
func NewLocationRecorder(
	history repository.LocationRepository,
	snapshots repository.SnapshotRepository,
	locator geo.Locator,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *LocationRecorder {
	return &LocationRecorder{
		history:   history,
		snapshots: snapshots,
		locator:   locator,
		logger:    logger,
		metrics:   metrics,
	}
}

// Capture requests the device's current position and records it for the
// given entity. The position request uses a bounded wait, a high-accuracy
// preference and no cached fix. Nothing is retried here; the caller owns
// retry policy.
func (r *LocationRecorder) Capture(ctx context.Context, entityID string) (*entity.LocationRecord, error) {
	if entityID == "" {
		return nil, r.fail(entity.ValidationFailure, "capture", "entity id is required", nil)
	}
	if r.locator == nil {
		return nil, r.fail(entity.CapabilityUnavailable, "capture", "no geolocation capability on this device", nil)
	}

	opts := geo.DefaultRequestOptions()
	posCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	pos, err := r.locator.Current(posCtx, opts)
	if err != nil {
		switch {
		case errors.Is(err, geo.ErrUnavailable):
			return nil, r.fail(entity.CapabilityUnavailable, "capture", "geolocation is not supported on this device", err)
		case errors.Is(err, geo.ErrDenied), errors.Is(err, geo.ErrTimeout),
			errors.Is(err, context.DeadlineExceeded):
			return nil, r.fail(entity.DeniedOrTimeout, "capture", "device refused or timed out the position request", err)
		default:
			return nil, r.fail(entity.DeniedOrTimeout, "capture", "position request failed", err)
		}
	}

	return r.Record(ctx, entityID, pos)
}

// Record validates and persists a caller-supplied position for the given
// entity. This is the path the HTTP ingest handlers use: the device already
// performed the geolocation and reported its fix over the tracking link.
//
// On a snapshot-update failure the returned record is non-nil alongside the
// error: the history append already succeeded and stays durable.
func (r *LocationRecorder) Record(ctx context.Context, entityID string, pos geo.Position) (*entity.LocationRecord, error) {
	if entityID == "" {
		return nil, r.fail(entity.ValidationFailure, "record", "entity id is required", nil)
	}
	if pos.Latitude < -90 || pos.Latitude > 90 {
		return nil, r.fail(entity.ValidationFailure, "record", "latitude out of range [-90, 90]", nil)
	}
	if pos.Longitude < -180 || pos.Longitude > 180 {
		return nil, r.fail(entity.ValidationFailure, "record", "longitude out of range [-180, 180]", nil)
	}

	record := &entity.LocationRecord{
		ID:        uuid.NewString(),
		EntityID:  entityID,
		Latitude:  utils.RoundCoordinate(pos.Latitude),
		Longitude: utils.RoundCoordinate(pos.Longitude),
		Timestamp: time.Now().UTC(),
	}

	if err := r.history.Insert(ctx, record); err != nil {
		return nil, r.fail(entity.PersistenceFailure, "record", "history append rejected by store", err)
	}

	if r.metrics != nil {
		r.metrics.LocationCaptures.Inc()
	}

	if err := r.snapshots.UpdateLastPosition(ctx, entityID, record.Latitude, record.Longitude, record.Timestamp); err != nil {
		// The append is durable; the aggregator can always recompute the
		// current position from history.
		r.logger.Warn("Snapshot update failed after durable append",
			"entityId", entityID, "error", err)
		return record, r.fail(entity.PersistenceFailure, "record", "snapshot update rejected by store", err)
	}

	return record, nil
}

func (r *LocationRecorder) fail(kind entity.FailureKind, op, msg string, cause error) error {
	if r.metrics != nil {
		r.metrics.CaptureFailures.WithLabelValues(string(kind)).Inc()
	}
	return entity.NewFailure(kind, op, msg, cause)
}
