// Package store owns the canonical geo/event collection.
//
// Every mutator persists the full collection through a Repository. A failed
// write is logged and counted but never undoes the in-memory change; memory
// stays authoritative for the running process.
package store

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/klabast/wb-services/geo-events/internal/metrics"
	"github.com/klabast/wb-services/geo-events/internal/model"
	"github.com/klabast/wb-services/geo-events/internal/storage"
)

// Operation names used in logs and metrics
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpDelete = "delete"
	OpReset  = "reset"
)

// Repository loads and saves the whole collection
type Repository interface {
	Load() ([]model.Geo, error)
	Save(geos []model.Geo) error
}

// Store is the single source of truth for geos and their events
type Store struct {
	mu      sync.RWMutex
	geos    []model.Geo
	repo    Repository
	seed    func() []model.Geo
	log     *zap.Logger
	metrics *metrics.Metrics

	persistErr error
}

// Option configures a Store
type Option func(*Store)

// WithLogger sets the logger (default: no-op)
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics attaches store collectors
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithSeed replaces the default seed data
func WithSeed(seed func() []model.Geo) Option {
	return func(s *Store) {
		if seed != nil {
			s.seed = seed
		}
	}
}

// New builds a store and rehydrates it from repo, falling back to the seed
// when nothing usable has been persisted
func New(repo Repository, opts ...Option) *Store {
	s := &Store{
		repo: repo,
		seed: model.Seed,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.geos = s.rehydrate()
	s.updateGauges()
	return s
}

func (s *Store) rehydrate() []model.Geo {
	if s.repo == nil {
		return s.seed()
	}
	geos, err := s.repo.Load()
	switch {
	case err == nil:
		s.log.Info("rehydrated persisted state", zap.Int("geos", len(geos)))
		return geos
	case errors.Is(err, storage.ErrNotFound):
		s.log.Info("no persisted state, using seed data")
	default:
		s.log.Warn("persisted state unreadable, using seed data", zap.Error(err))
	}
	return s.seed()
}

// Geos returns every geo in collection order
func (s *Store) Geos() []model.Geo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return model.CloneGeos(s.geos)
}

// GeoByID looks up a geo
func (s *Store) GeoByID(geoID string) (model.Geo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.geoIndex(geoID); i >= 0 {
		return s.geos[i].Clone(), true
	}
	return model.Geo{}, false
}

// EventsByGeo returns the geo's events in stored order, or an empty slice
// for an unknown geo
func (s *Store) EventsByGeo(geoID string) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.geoIndex(geoID); i >= 0 {
		return model.CloneEvents(s.geos[i].Events)
	}
	return []model.Event{}
}

// EventByID looks up an event within a geo
func (s *Store) EventByID(geoID, eventID string) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.geoIndex(geoID)
	if i < 0 {
		return model.Event{}, false
	}
	for _, e := range s.geos[i].Events {
		if e.ID == eventID {
			return e.Clone(), true
		}
	}
	return model.Event{}, false
}

// AddEvent appends event to the geo's list. An unknown geo is left alone;
// geos are never created implicitly. Id uniqueness is the caller's concern.
func (s *Store) AddEvent(geoID string, event model.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := false
	if i := s.geoIndex(geoID); i >= 0 {
		s.geos[i].Events = append(s.geos[i].Events, event.Normalize())
		applied = true
	}
	s.commit(OpAdd, geoID, event.ID, applied)
	return applied
}

// UpdateEvent merges patch into every event of the geo matching eventID
func (s *Store) UpdateEvent(geoID, eventID string, patch model.EventPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := false
	if i := s.geoIndex(geoID); i >= 0 {
		events := s.geos[i].Events
		for j := range events {
			if events[j].ID == eventID {
				events[j] = patch.Apply(events[j])
				applied = true
			}
		}
	}
	s.commit(OpUpdate, geoID, eventID, applied)
	return applied
}

// DeleteEvent removes every event of the geo matching eventID
func (s *Store) DeleteEvent(geoID, eventID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := false
	if i := s.geoIndex(geoID); i >= 0 {
		kept := make([]model.Event, 0, len(s.geos[i].Events))
		for _, e := range s.geos[i].Events {
			if e.ID == eventID {
				applied = true
				continue
			}
			kept = append(kept, e)
		}
		s.geos[i].Events = kept
	}
	s.commit(OpDelete, geoID, eventID, applied)
	return applied
}

// Reset replaces the collection with fresh seed data
func (s *Store) Reset() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geos = s.seed()
	s.commit(OpReset, "", "", true)
	return true
}

// PersistError returns the error of the most recent persistence write, or
// nil when it succeeded
func (s *Store) PersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// commit persists after a mutation. Caller must hold the write lock.
func (s *Store) commit(op, geoID, eventID string, applied bool) {
	s.metrics.ObserveMutation(op, applied)
	if !applied {
		s.log.Debug("mutation matched nothing",
			zap.String("op", op), zap.String("geo", geoID), zap.String("event", eventID))
	}
	if applied {
		s.updateGauges()
	}
	s.persistErr = s.save()
	if err := s.persistErr; err != nil {
		s.log.Warn("failed to persist state",
			zap.String("op", op), zap.String("geo", geoID), zap.String("event", eventID), zap.Error(err))
	}
}

// save writes a snapshot of the collection. Caller must hold a lock.
func (s *Store) save() error {
	if s.repo == nil {
		return nil
	}
	start := time.Now()
	err := s.repo.Save(model.CloneGeos(s.geos))
	s.metrics.ObservePersist(time.Since(start), err)
	return err
}

func (s *Store) updateGauges() {
	for _, g := range s.geos {
		s.metrics.SetEventCount(g.ID, len(g.Events))
	}
}

func (s *Store) geoIndex(geoID string) int {
	for i := range s.geos {
		if s.geos[i].ID == geoID {
			return i
		}
	}
	return -1
}
