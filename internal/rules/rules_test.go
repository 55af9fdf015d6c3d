package rules

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"life-os/internal/calendar"
)

func week(n int, l Log) []Log {
	logs := make([]Log, n)
	for i := range logs {
		logs[i] = l
	}
	return logs
}

func TestComputeFlags_Empty(t *testing.T) {
	want := Flags{Health: 0, Mind: 0, Strength: 0, Endurance: 0, Consistency: 0}
	for _, w := range []calendar.Week{1, 14, 28} {
		if diff := cmp.Diff(want, ComputeFlags(w, nil)); diff != "" {
			t.Errorf("week %d flags mismatch (-want +got):\n%s", w, diff)
		}
	}
}

func TestComputeFlags_OtherWeeksIgnored(t *testing.T) {
	logs := week(7, Log{Week: 3})
	flags := ComputeFlags(4, logs)
	for _, p := range Pillars {
		assert.Zero(t, flags[p], "pillar %s", p)
	}
}

func TestComputeFlags_PerfectWeek(t *testing.T) {
	logs := week(7, Log{Week: 5, WorkoutDone: true, ProteinMet: true, SleepHours: 8})

	flags := ComputeFlags(5, logs)
	status := ComputePillarStatus(flags)

	assert.Equal(t, Flags{Health: 0, Mind: 0, Strength: 0, Endurance: 0, Consistency: 0}, flags)
	for _, p := range Pillars {
		assert.Equal(t, Green, status[p], "pillar %s", p)
	}
	assert.Equal(t, Green, OverallStatus(status))
}

func TestComputeFlags_NothingLogged(t *testing.T) {
	logs := week(7, Log{Week: 9, SleepHours: 8})

	flags := ComputeFlags(9, logs)

	assert.Equal(t, 2, flags[Consistency])
	assert.GreaterOrEqual(t, flags[Health], 1)
	assert.GreaterOrEqual(t, flags[Strength], 1)
	assert.Equal(t, 1, flags[Mind])
	assert.Equal(t, 0, flags[Endurance])

	status := ComputePillarStatus(flags)
	assert.Equal(t, Yellow, status[Consistency])
}

func TestComputeFlags_Thresholds(t *testing.T) {
	tests := []struct {
		name string
		logs []Log
		want Flags
	}{
		{
			name: "two workouts, short sleep, soreness",
			logs: []Log{
				{Week: 2, WorkoutDone: true, ProteinMet: true, SleepHours: 5, Soreness72h: true},
				{Week: 2, WorkoutDone: true, ProteinMet: true, SleepHours: 5},
				{Week: 2, ProteinMet: true, SleepHours: 5},
			},
			want: Flags{Health: 3, Mind: 0, Strength: 0, Endurance: 1, Consistency: 0},
		},
		{
			name: "sleep between six and seven only hits endurance",
			logs: week(4, Log{Week: 2, WorkoutDone: true, ProteinMet: true, SleepHours: 6.5}),
			want: Flags{Health: 0, Mind: 0, Strength: 0, Endurance: 1, Consistency: 0},
		},
		{
			name: "one workout",
			logs: append(week(1, Log{Week: 2, WorkoutDone: true, ProteinMet: true, SleepHours: 7}),
				week(3, Log{Week: 2, ProteinMet: true, SleepHours: 7})...),
			want: Flags{Health: 1, Mind: 0, Strength: 1, Endurance: 0, Consistency: 0},
		},
		{
			name: "protein at exactly seventy percent is met",
			logs: append(week(7, Log{Week: 2, WorkoutDone: true, ProteinMet: true, SleepHours: 8}),
				week(3, Log{Week: 2, WorkoutDone: true, SleepHours: 8})...),
			want: Flags{Health: 0, Mind: 0, Strength: 0, Endurance: 0, Consistency: 0},
		},
		{
			name: "protein just under seventy percent",
			logs: append(week(4, Log{Week: 2, WorkoutDone: true, ProteinMet: true, SleepHours: 8}),
				week(2, Log{Week: 2, WorkoutDone: true, SleepHours: 8})...),
			want: Flags{Health: 0, Mind: 1, Strength: 0, Endurance: 0, Consistency: 0},
		},
		{
			name: "zero protein days",
			logs: week(5, Log{Week: 2, WorkoutDone: true, SleepHours: 8}),
			want: Flags{Health: 0, Mind: 1, Strength: 0, Endurance: 0, Consistency: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFlags(2, tt.logs)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputePillarStatus_Tiers(t *testing.T) {
	tests := []struct {
		count int
		want  Status
	}{
		{0, Green}, {1, Yellow}, {2, Yellow}, {3, Red}, {5, Red},
	}
	for _, tt := range tests {
		status := ComputePillarStatus(Flags{Consistency: tt.count})
		assert.Equal(t, tt.want, status[Consistency], "count %d", tt.count)
	}
}

func TestComputePillarStatus_Escalation(t *testing.T) {
	t.Run("health red lifts green pillars", func(t *testing.T) {
		status := ComputePillarStatus(Flags{Health: 3, Strength: 0, Endurance: 0, Consistency: 0})
		assert.Equal(t, Red, status[Health])
		assert.Equal(t, Yellow, status[Strength])
		assert.Equal(t, Yellow, status[Endurance])
		assert.Equal(t, Yellow, status[Consistency])
		assert.Equal(t, Green, status[Mind])
	})

	t.Run("mind red lifts green pillars", func(t *testing.T) {
		status := ComputePillarStatus(Flags{Mind: 4})
		assert.Equal(t, Yellow, status[Strength])
		assert.Equal(t, Green, status[Health])
	})

	t.Run("red stays red", func(t *testing.T) {
		status := ComputePillarStatus(Flags{Health: 3, Consistency: 3, Endurance: 1})
		assert.Equal(t, Red, status[Consistency])
		assert.Equal(t, Yellow, status[Endurance])
	})

	t.Run("yellow health does not escalate", func(t *testing.T) {
		status := ComputePillarStatus(Flags{Health: 2})
		assert.Equal(t, Green, status[Strength])
	})
}

func TestOverallStatus(t *testing.T) {
	assert.Equal(t, Green, OverallStatus(PillarStatus{Health: Green, Mind: Green}))
	assert.Equal(t, Yellow, OverallStatus(PillarStatus{Health: Green, Mind: Yellow}))
	assert.Equal(t, Red, OverallStatus(PillarStatus{Health: Yellow, Mind: Red, Strength: Green}))
	assert.Equal(t, Green, OverallStatus(PillarStatus{}))
}

func TestRecommendation(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range []Status{Green, Yellow, Red} {
		msg := Recommendation(s)
		assert.NotEmpty(t, msg)
		seen[msg] = true
	}
	assert.Len(t, seen, 3)
	assert.Contains(t, Recommendation(Red), "Critical")
}

func TestSummarize(t *testing.T) {
	logs := week(7, Log{Week: 21, SleepHours: 5, Soreness72h: true})

	s := Summarize(21, logs)

	assert.Equal(t, calendar.Week(21), s.Week)
	assert.Equal(t, 3, s.Flags[Health])
	assert.Equal(t, Red, s.PillarStatus[Health])
	assert.Equal(t, Red, s.Overall)
	assert.Equal(t, Recommendation(Red), s.Recommendation)
}

func TestStatusIcon(t *testing.T) {
	assert.Equal(t, "✅", Green.Icon())
	assert.Equal(t, "⚠️", Yellow.Icon())
	assert.Equal(t, "🔴", Red.Icon())
}
