package database

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"life-os/internal/calendar"
)

func TestRepository_LogRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	log := DailyLog{Date: "2026-03-04", Week: 10, WorkoutDone: true, SleepHours: 7.5}
	require.NoError(t, repo.SaveLog(ctx, log))

	got, err := repo.GetLog(ctx, "2026-03-04")
	require.NoError(t, err)
	assert.Equal(t, log, *got)

	_, err = repo.GetLog(ctx, "2026-03-05")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepository_SaveLogValidates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewRepository(store)

	assert.Error(t, repo.SaveLog(ctx, DailyLog{Date: "2026-03-04", Week: 10, SleepHours: -1}))
	assert.Error(t, repo.SaveLog(ctx, DailyLog{Date: "2026-03-04", Week: 10, SleepHours: math.NaN()}))
	assert.Error(t, repo.SaveLog(ctx, DailyLog{Date: "2026-03-04", Week: 10, SleepHours: math.Inf(1)}))
	assert.ErrorIs(t, repo.SaveLog(ctx, DailyLog{Date: "2026-03-04", Week: 0}), calendar.ErrOutOfRange)
	assert.Zero(t, store.Len())
}

func TestRepository_LogsForDates(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())

	day := func(d int) time.Time { return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, repo.SaveLog(ctx, DailyLog{Date: "2026-01-08", Week: 2, WorkoutDone: true}))
	require.NoError(t, repo.SaveLog(ctx, DailyLog{Date: "2026-01-10", Week: 2, ProteinMet: true}))

	logs, err := repo.LogsForDates(ctx, []time.Time{day(8), day(9), day(10)})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2026-01-08", logs[0].Date)
	assert.Equal(t, "2026-01-10", logs[1].Date)

	rl := RulesLogs(logs)
	assert.True(t, rl[0].WorkoutDone)
	assert.True(t, rl[1].ProteinMet)
	assert.Equal(t, calendar.Week(2), rl[1].Week)
}

func TestRepository_LogsForDatesCorrupt(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, LogsKey("2026-01-08"), "{not json"))

	_, err := NewRepository(store).LogsForDates(ctx,
		[]time.Time{time.Date(2026, time.January, 8, 0, 0, 0, 0, time.UTC)})
	assert.Error(t, err)
}

func TestRepository_Decision(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryStore())
	monday := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	d, err := repo.GetDecision(ctx, monday)
	require.NoError(t, err)
	assert.Equal(t, Decision{}, d)

	want := Decision{Training: "Deload", Nutrition: "Maintenance"}
	require.NoError(t, repo.SaveDecision(ctx, monday, want))

	// Any day of the same seven-day block shares the decision.
	got, err := repo.GetDecision(ctx, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecisionKey(t *testing.T) {
	assert.Equal(t, "lifeos:decision:2026-W01", DecisionKey(time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "lifeos:decision:2026-W53", DecisionKey(time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)))
}
