package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"life-os/internal/database"
	"life-os/internal/pillars"
	"life-os/internal/services"
)

const (
	callbackToggle = "toggle_"
	callbackItem   = "item_"
)

func (b *Bot) SendMessageOrLogError(message string) {
	if err := b.SendMessage(message); err != nil {
		b.logger.Error("send message", zap.Error(err))
	}
}

func itemCallback(p pillars.Pillar, id string) string {
	return callbackItem + string(p) + "_" + id
}

func parseItemCallback(data string) (pillars.Pillar, string, error) {
	name, id, ok := strings.Cut(strings.TrimPrefix(data, callbackItem), "_")
	if !ok || id == "" {
		return "", "", fmt.Errorf("malformed item callback %q", data)
	}
	p, err := pillars.Parse(name)
	if err != nil {
		return "", "", err
	}
	return p, id, nil
}

// commandArgs returns the text after the command word.
func commandArgs(text string) string {
	_, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(rest)
}

// parseKeyValues splits "a=1 b=two" into a map with lower-cased keys.
func parseKeyValues(text string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Fields(text) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	return out
}

func parseFlag(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "1", "y", "yes", "true", "да", "+":
		return true, nil
	case "0", "n", "no", "false", "нет", "-":
		return false, nil
	}
	return false, fmt.Errorf("expected yes/no, got %q", v)
}

// parseLogArgs reads "/log workout=1 protein=0 sleep=7.5 soreness=0".
// Missing booleans default to false; sleep is required.
func parseLogArgs(text string) (services.LogEntry, error) {
	var entry services.LogEntry
	kv := parseKeyValues(text)

	sleep, ok := kv["sleep"]
	if !ok {
		return entry, fmt.Errorf("sleep=<hours> is required")
	}
	hours, err := strconv.ParseFloat(sleep, 64)
	if err != nil || !database.ValidSleepHours(hours) {
		return entry, fmt.Errorf("sleep must be between 0 and 24 hours")
	}
	entry.SleepHours = hours

	for key, dst := range map[string]*bool{
		"workout":  &entry.WorkoutDone,
		"protein":  &entry.ProteinMet,
		"soreness": &entry.Soreness72h,
	} {
		v, ok := kv[key]
		if !ok {
			continue
		}
		if *dst, err = parseFlag(v); err != nil {
			return entry, fmt.Errorf("%s: %w", key, err)
		}
	}
	return entry, nil
}

// parseDecisionArgs reads "training=Deload nutrition=Maintenance optional=Sleep".
// Underscores become spaces so multi-word values survive splitting.
func parseDecisionArgs(text string) (database.Decision, error) {
	kv := parseKeyValues(text)
	clean := func(s string) string { return strings.ReplaceAll(s, "_", " ") }

	d := database.Decision{
		Training:  clean(kv["training"]),
		Nutrition: clean(kv["nutrition"]),
		Optional:  clean(kv["optional"]),
	}
	if d == (database.Decision{}) {
		return d, fmt.Errorf("nothing to record")
	}
	return d, nil
}

const helpText = `🎯 <b>Life OS</b>

<b>Daily:</b>
/today - calendar and pillar board
/done [pillar] - mark a pillar complete
/undo [pillar] - clear a pillar
/checklist [pillar] - checklist for a pillar
/log workout=1 protein=1 sleep=7.5 soreness=0 - training log

<b>Weekly:</b>
/week - flags, status and recommendation
/decide training=... nutrition=... optional=... - next week's focus

<b>Export:</b>
/folder [path] - set the export folder
/export - export this week now

<b>Pillars:</b>
🏃 Health · 💼 Career · 🧠 Mind · 🤝 Relationships · 💰 Finance · 🏠 Environment`
