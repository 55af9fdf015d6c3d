package database

import (
	"fmt"
	"time"

	"life-os/internal/calendar"
	"life-os/internal/rules"
)

// DateLayout is the key format for every per-day record.
const DateLayout = "2006-01-02"

// Storage keys. Per-day records are suffixed with the date in DateLayout.
const (
	pillarsPrefix  = "lifeos:pillars:"
	detailsPrefix  = "lifeos:details:"
	logsPrefix     = "lifeos:logs:"
	decisionPrefix = "lifeos:decision:"

	KeyLastExportDate   = "lifeOS_lastExportDate"
	KeyExportFolderPath = "lifeOS_exportFolderPath"
	KeyLastExport       = "lifeOS_lastExport"
)

func PillarsKey(date string) string { return pillarsPrefix + date }
func DetailsKey(date string) string { return detailsPrefix + date }
func LogsKey(date string) string    { return logsPrefix + date }

// DecisionKey identifies a week by year and un-cycled year week, since the
// cycle week repeats within a year.
func DecisionKey(t time.Time) string {
	return fmt.Sprintf("%s%d-W%02d", decisionPrefix, t.Year(), calendar.YearWeek(t))
}

// DailyLog is the training record for one day.
type DailyLog struct {
	Date        string        `json:"date"`
	Week        calendar.Week `json:"week_number"`
	WorkoutDone bool          `json:"workout_done"`
	ProteinMet  bool          `json:"protein_met"`
	SleepHours  float64       `json:"sleep_hours"`
	Soreness72h bool          `json:"soreness_72h"`
}

func (l DailyLog) RulesLog() rules.Log {
	return rules.Log{
		Week:        l.Week,
		WorkoutDone: l.WorkoutDone,
		ProteinMet:  l.ProteinMet,
		SleepHours:  l.SleepHours,
		Soreness72h: l.Soreness72h,
	}
}

// ValidSleepHours reports whether h is a real number of hours in a day.
// NaN fails both comparisons and is rejected.
func ValidSleepHours(h float64) bool {
	return h >= 0 && h <= 24
}

func (l DailyLog) Validate() error {
	if !ValidSleepHours(l.SleepHours) {
		return fmt.Errorf("sleep hours must be between 0 and 24 (got %.1f)", l.SleepHours)
	}
	return calendar.Validate(l.Week)
}

// RulesLogs converts stored logs for the rules engine.
func RulesLogs(logs []DailyLog) []rules.Log {
	out := make([]rules.Log, len(logs))
	for i, l := range logs {
		out[i] = l.RulesLog()
	}
	return out
}

// Decision records the focus chosen for the coming week.
type Decision struct {
	Training  string `json:"training,omitempty"`
	Nutrition string `json:"nutrition,omitempty"`
	Optional  string `json:"optional,omitempty"`
}

// ExportRecord describes the last successful export.
type ExportRecord struct {
	ID        string        `json:"id"`
	Filename  string        `json:"filename"`
	Path      string        `json:"path"`
	Timestamp time.Time     `json:"timestamp"`
	Week      calendar.Week `json:"week_number"`
}
