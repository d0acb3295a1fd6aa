package analytics

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tejasm/munim/internal/ledger"
	"github.com/tejasm/munim/internal/snapshot"
)

// Snapshot keys for the persisted collections.
const (
	keyTasks      = "business_tasks"
	keyResources  = "business_resources"
	keyActivities = "business_activities"
)

// Service is the aggregation engine. All reads recompute from the current
// ledger and in-memory collections; nothing is cached across calls.
type Service struct {
	ledger ledger.Reader
	store  snapshot.Store
	now    func() time.Time
	log    zerolog.Logger

	mu         sync.Mutex
	tasks      []Task
	resources  []Resource
	activities []Activity
}

// New loads the persisted collections and returns a ready service. A
// missing or unreadable snapshot silently falls back to the built-in seed
// collections; the caller is never told recovery happened.
func New(lg ledger.Reader, store snapshot.Store, now func() time.Time, log zerolog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	s := &Service{ledger: lg, store: store, now: now, log: log}

	if !s.load(keyTasks, &s.tasks) || len(s.tasks) == 0 {
		s.tasks = defaultTasks(now())
		s.persist(keyTasks, s.tasks)
	}
	if !s.load(keyResources, &s.resources) || len(s.resources) == 0 {
		s.resources = defaultResources(now())
		s.persist(keyResources, s.resources)
	}
	if !s.load(keyActivities, &s.activities) {
		s.activities = nil
	}
	return s
}

// load reads one collection snapshot. Returns false when the key is absent
// or its contents cannot be decoded.
func (s *Service) load(key string, dst interface{}) bool {
	data, err := s.store.Load(key)
	if err != nil || data == nil {
		if err != nil {
			s.log.Debug().Str("key", key).Err(err).Msg("snapshot read failed, using defaults")
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.log.Debug().Str("key", key).Err(err).Msg("snapshot corrupt, using defaults")
		return false
	}
	return true
}

// persist overwrites one collection snapshot in full.
func (s *Service) persist(key string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.log.Error().Str("key", key).Err(err).Msg("snapshot encode failed")
		return
	}
	if err := s.store.Save(key, data); err != nil {
		s.log.Error().Str("key", key).Err(err).Msg("snapshot write failed")
	}
}
