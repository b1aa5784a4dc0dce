package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Timeslot keys are the canonical join key between votes and events,
// persisted as "<YYYY-MM-DD>_<12-hour label>", e.g. "2024-06-01_6:30 PM".
// The separator and 12-hour label format must be preserved exactly for
// compatibility with existing stored records.
const (
	DateLayout  = "2006-01-02"
	LabelLayout = "3:04 PM"
)

// ParseSlotKey splits a timeslot key into its date string and time label.
// Returns an error for keys missing the underscore separator or carrying an
// unparseable date.
func ParseSlotKey(key string) (dateStr, label string, err error) {
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("malformed timeslot key %q: missing separator", key)
	}

	if _, err := time.Parse(DateLayout, parts[0]); err != nil {
		return "", "", fmt.Errorf("malformed timeslot key %q: %w", key, err)
	}

	return parts[0], parts[1], nil
}

// SlotKey builds a canonical timeslot key from a date and a 12-hour time label
func SlotKey(date time.Time, label string) string {
	return fmt.Sprintf("%s_%s", date.Format(DateLayout), label)
}

// ParseTimeLabel parses a 12-hour time label like "6:30 PM" into a 24-hour
// hour and minute. "12:00 AM" maps to hour 0 and "12:00 PM" stays hour 12.
func ParseTimeLabel(label string) (hour, minute int, err error) {
	t, err := time.Parse(LabelLayout, strings.TrimSpace(label))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time label %q: %w", label, err)
	}
	return t.Hour(), t.Minute(), nil
}

// EventStart computes the absolute start instant for an event from its date
// string and 12-hour time label, in the given location.
func EventStart(dateStr, label string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid event date %q: %w", dateStr, err)
	}

	hour, minute, err := ParseTimeLabel(label)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc), nil
}

// SlotStart computes the absolute start instant for a timeslot key
func SlotStart(key string, loc *time.Location) (time.Time, error) {
	dateStr, label, err := ParseSlotKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return EventStart(dateStr, label, loc)
}
