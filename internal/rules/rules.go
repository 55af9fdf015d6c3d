// Package rules reduces a week of daily logs into pillar flags, tiered
// statuses and a recommendation.
//
// Priority order is Health > Mind > the remaining pillars: a RED Health or Mind
// pillar lowers confidence in everything else.
package rules

import (
	"life-os/internal/calendar"
)

type Pillar string

const (
	Health      Pillar = "Health"
	Mind        Pillar = "Mind"
	Strength    Pillar = "Strength"
	Endurance   Pillar = "Endurance"
	Consistency Pillar = "Consistency"
)

// Pillars lists the flagged pillars in report order.
var Pillars = []Pillar{Health, Mind, Strength, Endurance, Consistency}

// escalated pillars are lifted to YELLOW when Health or Mind is RED.
var escalated = []Pillar{Strength, Endurance, Consistency}

type Status string

const (
	Green  Status = "GREEN"
	Yellow Status = "YELLOW"
	Red    Status = "RED"
)

func (s Status) Icon() string {
	switch s {
	case Green:
		return "✅"
	case Yellow:
		return "⚠️"
	default:
		return "🔴"
	}
}

// Log is one day of training data. Week is the cycle week the day belongs to.
type Log struct {
	Week        calendar.Week
	WorkoutDone bool
	ProteinMet  bool
	SleepHours  float64
	Soreness72h bool
}

type Flags map[Pillar]int

type PillarStatus map[Pillar]Status

// Thresholds used by ComputeFlags.
const (
	minWorkoutsHealth   = 3
	minWorkoutsStrength = 2
	minSleepHealth      = 6.0
	minSleepEndurance   = 7.0
	proteinRatio        = 0.7
)

func emptyFlags() Flags {
	flags := make(Flags, len(Pillars))
	for _, p := range Pillars {
		flags[p] = 0
	}
	return flags
}

// ComputeFlags counts missed thresholds per pillar for the logs of week.
// Logs from other weeks are ignored. No logs means no flags.
func ComputeFlags(week calendar.Week, logs []Log) Flags {
	flags := emptyFlags()

	var weekLogs []Log
	for _, l := range logs {
		if l.Week == week {
			weekLogs = append(weekLogs, l)
		}
	}
	if len(weekLogs) == 0 {
		return flags
	}

	var workouts, proteinDays int
	var sleepTotal float64
	var sore bool
	for _, l := range weekLogs {
		if l.WorkoutDone {
			workouts++
		}
		if l.ProteinMet {
			proteinDays++
		}
		if l.Soreness72h {
			sore = true
		}
		sleepTotal += l.SleepHours
	}
	avgSleep := sleepTotal / float64(len(weekLogs))

	if workouts < minWorkoutsHealth {
		flags[Health]++
	}
	if avgSleep < minSleepHealth {
		flags[Health]++
	}
	if sore {
		flags[Health]++
	}

	if float64(proteinDays) < float64(len(weekLogs))*proteinRatio {
		flags[Mind]++
	}

	if workouts < minWorkoutsStrength {
		flags[Strength]++
	}

	if avgSleep < minSleepEndurance {
		flags[Endurance]++
	}

	if workouts == 0 {
		flags[Consistency]++
	}
	if proteinDays == 0 {
		flags[Consistency]++
	}

	return flags
}

func tier(count int) Status {
	switch {
	case count <= 0:
		return Green
	case count <= 2:
		return Yellow
	default:
		return Red
	}
}

// ComputePillarStatus tiers each pillar by flag count, then escalates GREEN
// secondary pillars to YELLOW when Health or Mind is RED.
func ComputePillarStatus(flags Flags) PillarStatus {
	status := make(PillarStatus, len(Pillars))
	for _, p := range Pillars {
		status[p] = tier(flags[p])
	}

	if status[Health] == Red || status[Mind] == Red {
		for _, p := range escalated {
			if status[p] == Green {
				status[p] = Yellow
			}
		}
	}
	return status
}

// OverallStatus is the worst status across all pillars.
func OverallStatus(ps PillarStatus) Status {
	overall := Green
	for _, s := range ps {
		switch s {
		case Red:
			return Red
		case Yellow:
			overall = Yellow
		}
	}
	return overall
}

func Recommendation(s Status) string {
	switch s {
	case Red:
		return "Critical: Focus on Health and recovery in next week"
	case Yellow:
		return "Caution: Address flagged pillars in next week's decisions"
	default:
		return "Good: Continue current routine with optimization"
	}
}

// WeeklySummary bundles everything the weekly decision screen shows.
type WeeklySummary struct {
	Week           calendar.Week `json:"week"`
	Flags          Flags         `json:"flags"`
	PillarStatus   PillarStatus  `json:"pillar_status"`
	Overall        Status        `json:"overall_status"`
	Recommendation string        `json:"recommendation"`
}

func Summarize(week calendar.Week, logs []Log) WeeklySummary {
	flags := ComputeFlags(week, logs)
	status := ComputePillarStatus(flags)
	overall := OverallStatus(status)
	return WeeklySummary{
		Week:           week,
		Flags:          flags,
		PillarStatus:   status,
		Overall:        overall,
		Recommendation: Recommendation(overall),
	}
}
