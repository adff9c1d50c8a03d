// Package preferences keeps the user's recent searches and favorite cities.
//
// Both lists live in a ListStore and are always read and written whole:
// read the list, change it in memory, write it back.
package preferences

import (
	"errors"
	"slices"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/common"
)

const (
	// SearchHistoryKey and FavoritesKey name the two lists in the store.
	SearchHistoryKey = "searchHistory"
	FavoritesKey     = "favorites"

	// MaxRecentSearches bounds the search history.
	MaxRecentSearches = 5
)

// ErrEmptyCity is returned when a blank city name is added or removed.
var ErrEmptyCity = errors.New("city name is empty")

// ListStore persists named lists of strings.
// ReadList returns an empty list for a name that was never written.
type ListStore interface {
	ReadList(name string) ([]string, error)
	WriteList(name string, items []string) error
}

// SearchHistory is the most-recent-first, deduplicated list of searched cities.
type SearchHistory struct {
	mu    sync.Mutex
	store ListStore
	limit int
}

// NewSearchHistory creates a SearchHistory capped at limit entries.
// A limit <= 0 uses MaxRecentSearches.
func NewSearchHistory(store ListStore, limit int) *SearchHistory {
	if limit <= 0 {
		limit = MaxRecentSearches
	}
	return &SearchHistory{store: store, limit: limit}
}

// List returns the recent searches, most recent first.
func (h *SearchHistory) List() ([]string, error) {
	return h.store.ReadList(SearchHistoryKey)
}

// Add prepends city unless it is already in the history, then trims to the limit.
// A city that is already present keeps its position.
func (h *SearchHistory) Add(city string) error {
	city = common.NormalizeCity(city)
	if city == "" {
		return ErrEmptyCity
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items, err := h.store.ReadList(SearchHistoryKey)
	if err != nil {
		return err
	}
	if slices.Contains(items, city) {
		return nil
	}

	items = append([]string{city}, items...)
	if len(items) > h.limit {
		items = items[:h.limit]
	}
	return h.store.WriteList(SearchHistoryKey, items)
}

// Favorites is the insertion-ordered, deduplicated list of favorite cities.
type Favorites struct {
	mu    sync.Mutex
	store ListStore
}

// NewFavorites creates a Favorites list backed by store.
func NewFavorites(store ListStore) *Favorites {
	return &Favorites{store: store}
}

// List returns the favorites in the order they were added.
func (f *Favorites) List() ([]string, error) {
	return f.store.ReadList(FavoritesKey)
}

// Contains reports whether city is a favorite.
func (f *Favorites) Contains(city string) (bool, error) {
	items, err := f.store.ReadList(FavoritesKey)
	if err != nil {
		return false, err
	}
	return slices.Contains(items, common.NormalizeCity(city)), nil
}

// Add appends city if it is not already a favorite.
func (f *Favorites) Add(city string) error {
	city = common.NormalizeCity(city)
	if city == "" {
		return ErrEmptyCity
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.add(city)
	return err
}

// Remove drops city from the favorites. Removing an absent city is a no-op.
func (f *Favorites) Remove(city string) error {
	city = common.NormalizeCity(city)
	if city == "" {
		return ErrEmptyCity
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.remove(city)
	return err
}

// Toggle removes city if it is a favorite and adds it otherwise.
// It returns true when city is a favorite afterwards.
func (f *Favorites) Toggle(city string) (bool, error) {
	city = common.NormalizeCity(city)
	if city == "" {
		return false, ErrEmptyCity
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	removed, err := f.remove(city)
	if err != nil || removed {
		return false, err
	}
	return f.add(city)
}

// add and remove must be called with f.mu held.
func (f *Favorites) add(city string) (bool, error) {
	items, err := f.store.ReadList(FavoritesKey)
	if err != nil {
		return false, err
	}
	if slices.Contains(items, city) {
		return true, nil
	}
	if err := f.store.WriteList(FavoritesKey, append(items, city)); err != nil {
		return false, err
	}
	return true, nil
}

func (f *Favorites) remove(city string) (bool, error) {
	items, err := f.store.ReadList(FavoritesKey)
	if err != nil {
		return false, err
	}
	if !slices.Contains(items, city) {
		return false, nil
	}
	kept := slices.DeleteFunc(slices.Clone(items), func(s string) bool { return s == city })
	if err := f.store.WriteList(FavoritesKey, kept); err != nil {
		return false, err
	}
	return true, nil
}
