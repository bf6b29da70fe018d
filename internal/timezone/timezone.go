package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
	WallClockLayout = "2006-01-02 15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// --------------------------------------------------
// Canonical forms
// --------------------------------------------------

// Instant is the stored form of an appointment timestamp: UTC, minute
// precision. Every write and every equality lookup goes through it.
func Instant(t time.Time) time.Time {
	return t.UTC().Truncate(time.Minute)
}

// WallClock renders t as the provider-local "YYYY-MM-DD HH:MM" key used
// when matching generated slots against stored appointments.
func WallClock(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(WallClockLayout)
}

// StartOfDay returns local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns [start, end) of the local calendar day as UTC instants.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := StartOfDay(t, loc)
	end := start.AddDate(0, 0, 1)
	return Instant(start), Instant(end)
}

// At combines a calendar day and a minute offset from local midnight.
func At(day time.Time, minutes int, loc *time.Location) time.Time {
	local := day.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, minutes, 0, 0, loc)
}

// --------------------------------------------------
// Parsing
// --------------------------------------------------

func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), loc)
}

// ParseDateTime accepts RFC3339 (absolute) or a local wall-clock value
// ("2006-01-02T15:04", "2006-01-02 15:04") interpreted in loc.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range []string{"2006-01-02T15:04", WallClockLayout, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date time %q", value)
}

// MinutesFromClock converts "HH:MM" into minutes after midnight.
func MinutesFromClock(hm string) (int, error) {
	parts := strings.Split(strings.TrimSpace(hm), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 24 {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("invalid clock %q", hm)
	}
	return h*60 + m, nil
}

func ClockFromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
