package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// LoadLocation resolves an IANA zone name. Names the host tzdata does not know
// fall back to a fixed zone when they look like "UTC+3" or "UTC-05:30".
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "UTC") {
		return time.UTC, nil
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc, nil
	}

	offset, err := parseUTCOffset(name)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", name)
	}
	return time.FixedZone(name, offset), nil
}

func parseUTCOffset(name string) (int, error) {
	rest, ok := strings.CutPrefix(strings.ToUpper(name), "UTC")
	if !ok || len(rest) < 2 {
		return 0, fmt.Errorf("not an offset: %s", name)
	}
	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, fmt.Errorf("not an offset: %s", name)
	}

	hoursStr, minutesStr, hasMinutes := strings.Cut(rest[1:], ":")
	if !unsigned(hoursStr) || (hasMinutes && !unsigned(minutesStr)) {
		return 0, fmt.Errorf("not an offset: %s", name)
	}
	hours, err := strconv.Atoi(hoursStr)
	if err != nil || hours > 14 {
		return 0, fmt.Errorf("bad offset hours: %s", name)
	}
	minutes := 0
	if minutesStr != "" {
		minutes, err = strconv.Atoi(minutesStr)
		if err != nil || minutes >= 60 {
			return 0, fmt.Errorf("bad offset minutes: %s", name)
		}
	}
	return sign * (hours*3600 + minutes*60), nil
}

// unsigned reports whether s is a non-empty run of ASCII digits.
func unsigned(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GetTimezoneInfo describes the user's local time next to server UTC time.
func GetTimezoneInfo(loc *time.Location, now time.Time) string {
	local := now.In(loc)
	_, offset := local.Zone()

	return fmt.Sprintf("🕐 Local time: %s (%s, UTC%+.1f)\n   Server time: %s UTC",
		local.Format("15:04"), loc.String(), float64(offset)/3600, now.UTC().Format("15:04"))
}
