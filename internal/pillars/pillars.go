// Package pillars tracks daily completion of the six fixed life pillars.
//
// Each calendar date has its own record. A date with no record reads as all
// pillars incomplete, and nothing is written until the first change, so
// crossing midnight always starts from a clean slate.
package pillars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"life-os/internal/database"
)

var ErrUnknownPillar = errors.New("unknown pillar")

type Pillar string

const (
	Health        Pillar = "Health"
	Career        Pillar = "Career"
	Mind          Pillar = "Mind"
	Relationships Pillar = "Relationships"
	Finance       Pillar = "Finance"
	Environment   Pillar = "Environment"
)

var all = []Pillar{Health, Career, Mind, Relationships, Finance, Environment}

// List returns the pillars in display order.
func List() []Pillar {
	out := make([]Pillar, len(all))
	copy(out, all)
	return out
}

// Parse resolves a pillar name case-insensitively.
func Parse(name string) (Pillar, error) {
	for _, p := range all {
		if strings.EqualFold(string(p), strings.TrimSpace(name)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPillar, name)
}

// State maps every pillar to whether it was completed on a date.
type State map[Pillar]bool

func newState() State {
	s := make(State, len(all))
	for _, p := range all {
		s[p] = false
	}
	return s
}

// Done counts completed pillars.
func (s State) Done() int {
	n := 0
	for _, p := range all {
		if s[p] {
			n++
		}
	}
	return n
}

// Tracker persists pillar State per date through a database.Store.
type Tracker struct {
	store database.Store
}

func NewTracker(store database.Store) *Tracker {
	return &Tracker{store: store}
}

// Get returns the state for date (YYYY-MM-DD). The default all-false state is
// returned for unseen dates without being persisted.
func (t *Tracker) Get(ctx context.Context, date string) (State, error) {
	state := newState()

	raw, ok, err := t.store.Get(ctx, database.PillarsKey(date))
	if err != nil {
		return nil, fmt.Errorf("load pillars for %s: %w", date, err)
	}
	if !ok {
		return state, nil
	}

	var saved map[string]bool
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return nil, fmt.Errorf("decode pillars for %s: %w", date, err)
	}
	for _, p := range all {
		state[p] = saved[string(p)]
	}
	return state, nil
}

// Set overwrites one pillar's flag for date and persists the whole record.
func (t *Tracker) Set(ctx context.Context, date string, name Pillar, completed bool) (State, error) {
	p, err := Parse(string(name))
	if err != nil {
		return nil, err
	}

	state, err := t.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	state[p] = completed

	raw, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}
	if err := t.store.Set(ctx, database.PillarsKey(date), string(raw)); err != nil {
		return nil, fmt.Errorf("save pillars for %s: %w", date, err)
	}
	return state, nil
}

// Toggle flips one pillar and returns the new state.
func (t *Tracker) Toggle(ctx context.Context, date string, name Pillar) (State, error) {
	p, err := Parse(string(name))
	if err != nil {
		return nil, err
	}
	state, err := t.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	return t.Set(ctx, date, p, !state[p])
}
