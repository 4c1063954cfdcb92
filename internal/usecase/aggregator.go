package usecase

import (
	"sort"
	"time"

	"github.com/adityadutt29/EmeLoc/internal/domain/entity"
)

// TrackMeta summarizes an aggregated group
type TrackMeta struct {
	Points    int       `json:"points"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

// EntityTrack is the render-ready result for one tracked entity: its
// current position and the time-ordered polyline of everything observed.
type EntityTrack struct {
	Current entity.LocationRecord `json:"current"`
	Path    []entity.LatLng       `json:"path"`
	Meta    TrackMeta             `json:"meta"`
}

// Aggregate transforms a flat, possibly unordered batch of history rows
// into one current-position + path per tracked entity.
//
// Records are grouped by entity id and ordered by ascending timestamp with
// a stable sort, so records sharing a timestamp keep their relative order
// from the input. The current position is the last record of the ordered
// group. Given the same input slice the output is identical every time,
// regardless of how the store happened to iterate.
//
// Aggregation never fails: an empty input yields an empty map, a
// single-record group yields a one-point path, and records referencing a
// since-deleted entity aggregate like any other (the render layer decides
// what to drop).
func Aggregate(records []entity.LocationRecord) map[string]EntityTrack {
	grouped := make(map[string][]entity.LocationRecord)
	order := make([]string, 0)
	for _, rec := range records {
		if _, seen := grouped[rec.EntityID]; !seen {
			order = append(order, rec.EntityID)
		}
		grouped[rec.EntityID] = append(grouped[rec.EntityID], rec)
	}

	tracks := make(map[string]EntityTrack, len(grouped))
	for _, id := range order {
		group := grouped[id]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Timestamp.Before(group[j].Timestamp)
		})

		path := make([]entity.LatLng, len(group))
		for i, rec := range group {
			path[i] = entity.LatLng{Latitude: rec.Latitude, Longitude: rec.Longitude}
		}

		tracks[id] = EntityTrack{
			Current: group[len(group)-1],
			Path:    path,
			Meta: TrackMeta{
				Points:    len(group),
				FirstSeen: group[0].Timestamp,
				LastSeen:  group[len(group)-1].Timestamp,
			},
		}
	}

	return tracks
}
