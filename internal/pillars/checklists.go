package pillars

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"life-os/internal/database"
)

var ErrUnknownItem = errors.New("unknown checklist item")

type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Checklists are the locked per-pillar checklists. They are not user editable.
var Checklists = map[Pillar][]Item{
	Health: {
		{ID: "strength", Label: "Strength training / sport"},
		{ID: "conditioning", Label: "Conditioning / steps"},
		{ID: "sleep", Label: "Sleep ≥ target"},
		{ID: "mobility", Label: "Mobility / rehab"},
		{ID: "nutrition", Label: "Nutrition on plan"},
	},
	Career: {
		{ID: "primary", Label: "Primary work block"},
		{ID: "deep", Label: "Deep work / deliverable"},
	},
	Mind: {
		{ID: "study", Label: "Study (CPIM / core)"},
		{ID: "language", Label: "Language practice"},
		{ID: "reading", Label: "Reading / reflection"},
	},
	Relationships: {
		{ID: "touchpoint", Label: "Meaningful touchpoint"},
	},
	Finance: {
		{ID: "review", Label: "Expense / money review"},
	},
	Environment: {
		{ID: "physical", Label: "Physical space reset"},
		{ID: "digital", Label: "Digital hygiene"},
	},
}

func findItem(p Pillar, id string) bool {
	for _, it := range Checklists[p] {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Details holds checked checklist items per pillar for one date.
type Details map[Pillar]map[string]bool

// DetailsTracker persists checklist details per date.
type DetailsTracker struct {
	store database.Store
}

func NewDetailsTracker(store database.Store) *DetailsTracker {
	return &DetailsTracker{store: store}
}

func (d *DetailsTracker) Get(ctx context.Context, date string) (Details, error) {
	details := Details{}
	raw, ok, err := d.store.Get(ctx, database.DetailsKey(date))
	if err != nil {
		return nil, fmt.Errorf("load details for %s: %w", date, err)
	}
	if !ok {
		return details, nil
	}
	if err := json.Unmarshal([]byte(raw), &details); err != nil {
		return nil, fmt.Errorf("decode details for %s: %w", date, err)
	}
	// A stored JSON null decodes to a nil map.
	if details == nil {
		details = Details{}
	}
	return details, nil
}

func (d *DetailsTracker) SetItem(ctx context.Context, date string, name Pillar, itemID string, done bool) (Details, error) {
	p, err := Parse(string(name))
	if err != nil {
		return nil, err
	}
	if !findItem(p, itemID) {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownItem, p, itemID)
	}

	details, err := d.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if details[p] == nil {
		details[p] = map[string]bool{}
	}
	details[p][itemID] = done

	raw, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	if err := d.store.Set(ctx, database.DetailsKey(date), string(raw)); err != nil {
		return nil, fmt.Errorf("save details for %s: %w", date, err)
	}
	return details, nil
}
