package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository stores typed records as JSON values in a Store.
type Repository struct {
	Store Store
}

func NewRepository(store Store) *Repository {
	return &Repository{Store: store}
}

// GetJSON decodes the value at key into v. It returns ErrNotFound when the key
// is absent.
func (r *Repository) GetJSON(ctx context.Context, key string, v any) error {
	raw, ok, err := r.Store.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) SetJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.Store.Set(ctx, key, string(raw))
}

func (r *Repository) SaveLog(ctx context.Context, log DailyLog) error {
	if err := log.Validate(); err != nil {
		return err
	}
	return r.SetJSON(ctx, LogsKey(log.Date), log)
}

func (r *Repository) GetLog(ctx context.Context, date string) (*DailyLog, error) {
	var log DailyLog
	if err := r.GetJSON(ctx, LogsKey(date), &log); err != nil {
		return nil, err
	}
	return &log, nil
}

// LogsForDates returns the stored logs for dates in order, skipping days with
// no record.
func (r *Repository) LogsForDates(ctx context.Context, dates []time.Time) ([]DailyLog, error) {
	var logs []DailyLog
	for _, d := range dates {
		raw, ok, err := r.Store.Get(ctx, LogsKey(d.Format(DateLayout)))
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var log DailyLog
		if err := json.Unmarshal([]byte(raw), &log); err != nil {
			return nil, fmt.Errorf("decode log %s: %w", d.Format(DateLayout), err)
		}
		logs = append(logs, log)
	}
	return logs, nil
}

func (r *Repository) SaveDecision(ctx context.Context, weekOf time.Time, d Decision) error {
	return r.SetJSON(ctx, DecisionKey(weekOf), d)
}

// GetDecision returns the zero Decision when none was recorded.
func (r *Repository) GetDecision(ctx context.Context, weekOf time.Time) (Decision, error) {
	var d Decision
	err := r.GetJSON(ctx, DecisionKey(weekOf), &d)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Decision{}, err
	}
	return d, nil
}
