package store

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

var (
	// ErrNotFound is returned when no observations are available for a given city.
	ErrNotFound = errors.New("no observations for city")
)

// MemoryStore is a concurrency-safe in-memory observation log.
type MemoryStore struct {
	mu sync.RWMutex

	// key: lower-cased city, value: observations in insertion order
	data map[string][]weather.Observation

	// retention configuration
	maxHistory int           // max number of observations per city
	maxAge     time.Duration // optional max age for observations

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string][]weather.Observation),
		maxHistory: maxHistory,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Save appends an observation and enforces retention. Observations without an
// ID get a random one.
func (s *MemoryStore) Save(obs weather.Observation) {
	if obs.ID == "" {
		obs.ID = uuid.NewString()
	}
	key := cityKey(obs.City)

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.data[key], obs)

	// Enforce retention by count.
	if s.maxHistory > 0 && len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}

	// Enforce retention by age.
	if s.maxAge > 0 {
		cutoff := s.now().Add(-s.maxAge)
		i := 0
		for ; i < len(history); i++ {
			if !history[i].Timestamp.Before(cutoff) {
				break
			}
		}
		history = history[i:]
	}

	s.data[key] = history
}

// Latest returns the most recent observation for a city.
func (s *MemoryStore) Latest(city string) (weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[cityKey(city)]
	if len(history) == 0 {
		return weather.Observation{}, ErrNotFound
	}
	return history[len(history)-1], nil
}

// Range returns all observations for a city between from and to (inclusive).
func (s *MemoryStore) Range(city string, from, to time.Time) ([]weather.Observation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.data[cityKey(city)]
	if len(history) == 0 {
		return nil, ErrNotFound
	}

	var result []weather.Observation
	for _, obs := range history {
		if !obs.Timestamp.Before(from) && !obs.Timestamp.After(to) {
			result = append(result, obs)
		}
	}

	if len(result) == 0 {
		return nil, ErrNotFound
	}

	return result, nil
}
