package schedule

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// SlotTemplate describes a recurring weekly availability slot: a recurrence
// rule for the dates and a 12-hour label for the start time.
type SlotTemplate struct {
	RRule     string
	TimeLabel string
}

// ExpandSlots expands the slot templates into canonical timeslot keys for
// every occurrence in [from, until]. Keys are returned in template order,
// then chronological within a template.
func ExpandSlots(templates []SlotTemplate, from, until time.Time) ([]string, error) {
	keys := make([]string, 0)

	for i, tmpl := range templates {
		rule, err := rrule.StrToRRule(tmpl.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in slot template %d: %w", i, err)
		}
		rule.DTStart(from)

		if _, _, err := ParseTimeLabel(tmpl.TimeLabel); err != nil {
			return nil, fmt.Errorf("invalid time label in slot template %d: %w", i, err)
		}

		for _, occurrence := range rule.Between(from, until, true) {
			keys = append(keys, SlotKey(occurrence, tmpl.TimeLabel))
		}
	}

	return keys, nil
}

// ExpandWeekSlots expands the slot templates over the seven days starting at
// weekStart (inclusive).
func ExpandWeekSlots(templates []SlotTemplate, weekStart time.Time) ([]string, error) {
	weekEnd := weekStart.AddDate(0, 0, 7).Add(-time.Second)
	return ExpandSlots(templates, weekStart, weekEnd)
}
