// Package calendar maps calendar dates onto the fixed 28-week training cycle.
//
// The schedule is not configurable: the calendar decides the phase, the deload
// weeks and the MATADOR nutrition sub-cycle.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// CycleLength is the number of weeks before the phase pattern repeats.
const CycleLength = 28

// ErrOutOfRange is returned for week numbers outside [1, CycleLength].
var ErrOutOfRange = errors.New("week out of range")

// Week is a position in the 28-week cycle, 1-based.
type Week int

type Phase string

const (
	Focus    Phase = "FOCUS"
	Build    Phase = "BUILD"
	Optimize Phase = "OPTIMIZE"
	Rest     Phase = "REST"
)

// MatadorState is the nutrition mode during the REST phase. The zero value means
// MATADOR is not active.
type MatadorState string

const (
	MatadorNone        MatadorState = ""
	MatadorDeficit     MatadorState = "deficit"
	MatadorMaintenance MatadorState = "maintenance"
)

var phaseRanges = []struct {
	first, last Week
	phase       Phase
}{
	{1, 4, Focus},
	{5, 12, Build},
	{13, 20, Optimize},
	{21, 28, Rest},
}

var matadorMap = map[Week]MatadorState{
	21: MatadorDeficit,
	22: MatadorDeficit,
	23: MatadorMaintenance,
	24: MatadorMaintenance,
	25: MatadorDeficit,
	26: MatadorDeficit,
	27: MatadorMaintenance,
	28: MatadorMaintenance,
}

// Validate reports whether w is inside the cycle.
func Validate(w Week) error {
	if w < 1 || w > CycleLength {
		return fmt.Errorf("%w: %d", ErrOutOfRange, w)
	}
	return nil
}

// YearWeek returns the un-cycled, 1-based week of the year: the day of year
// (0-indexed) divided by seven. Only the date part of t is used.
func YearWeek(t time.Time) int {
	return (t.YearDay()-1)/7 + 1
}

// WeekForDate returns the cycle week for t. Callers must convert t into the
// user's location first; no timezone handling happens here.
func WeekForDate(t time.Time) Week {
	return Week((YearWeek(t)-1)%CycleLength + 1)
}

// WeekDates returns the dates of the year-relative seven-day block containing
// t, starting at midnight in t's location. The block is cut short at the end of
// the year.
func WeekDates(t time.Time) []time.Time {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()).
		AddDate(0, 0, (YearWeek(t)-1)*7)

	dates := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		if d.Year() != t.Year() {
			break
		}
		dates = append(dates, d)
	}
	return dates
}

func PhaseForWeek(w Week) (Phase, error) {
	if err := Validate(w); err != nil {
		return "", err
	}
	for _, r := range phaseRanges {
		if w >= r.first && w <= r.last {
			return r.phase, nil
		}
	}
	return "", fmt.Errorf("%w: %d", ErrOutOfRange, w)
}

// IsDeloadWeek reports whether w is a lighter recovery week (every fourth week).
func IsDeloadWeek(w Week) bool {
	return Validate(w) == nil && w%4 == 0
}

// MatadorForWeek returns the MATADOR state for w, or MatadorNone outside REST.
func MatadorForWeek(w Week) MatadorState {
	phase, err := PhaseForWeek(w)
	if err != nil || phase != Rest {
		return MatadorNone
	}
	return matadorMap[w]
}

// Info is the calendar state for a single date.
type Info struct {
	Week      Week         `json:"week"`
	Phase     Phase        `json:"phase"`
	IsDeload  bool         `json:"is_deload"`
	Matador   MatadorState `json:"matador_state,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// InfoForDate derives the full calendar state for t. The result depends on t
// alone, so repeated calls with the same date compare equal.
func InfoForDate(t time.Time) Info {
	w := WeekForDate(t)
	// WeekForDate never leaves the cycle, so the error is impossible here.
	phase, _ := PhaseForWeek(w)
	return Info{
		Week:      w,
		Phase:     phase,
		IsDeload:  IsDeloadWeek(w),
		Matador:   MatadorForWeek(w),
		Timestamp: t,
	}
}

// Badge returns the MATADOR badge text, or "" when MATADOR is inactive.
func (i Info) Badge() string {
	if i.Matador == MatadorNone {
		return ""
	}
	return "MATADOR: " + strings.ToUpper(string(i.Matador))
}

// Label is the one-line header used by the bot and the CLI.
func (i Info) Label() string {
	parts := []string{fmt.Sprintf("Week %d", i.Week), string(i.Phase)}
	if i.IsDeload {
		parts = append(parts, "deload")
	}
	if b := i.Badge(); b != "" {
		parts = append(parts, b)
	}
	return strings.Join(parts, " · ")
}
