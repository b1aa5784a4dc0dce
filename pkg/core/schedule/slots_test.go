package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandWeekSlots(t *testing.T) {
	templates := []SlotTemplate{
		{RRule: "FREQ=WEEKLY;BYDAY=TU,TH", TimeLabel: "6:30 PM"},
	}

	// Monday 2024-06-03
	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	keys, err := ExpandWeekSlots(templates, weekStart)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2024-06-04_6:30 PM",
		"2024-06-06_6:30 PM",
	}, keys)
}

func TestExpandWeekSlots_MultipleTemplates(t *testing.T) {
	templates := []SlotTemplate{
		{RRule: "FREQ=WEEKLY;BYDAY=SA", TimeLabel: "10:00 AM"},
		{RRule: "FREQ=WEEKLY;BYDAY=SA", TimeLabel: "6:30 PM"},
	}

	weekStart := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	keys, err := ExpandWeekSlots(templates, weekStart)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2024-06-08_10:00 AM",
		"2024-06-08_6:30 PM",
	}, keys)
}

func TestExpandSlots_InvalidRule(t *testing.T) {
	templates := []SlotTemplate{
		{RRule: "not an rrule", TimeLabel: "6:30 PM"},
	}

	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	_, err := ExpandSlots(templates, from, from.AddDate(0, 0, 7))
	assert.Error(t, err)
}

func TestExpandSlots_InvalidLabel(t *testing.T) {
	templates := []SlotTemplate{
		{RRule: "FREQ=WEEKLY;BYDAY=TU", TimeLabel: "25:99"},
	}

	from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	_, err := ExpandSlots(templates, from, from.AddDate(0, 0, 7))
	assert.Error(t, err)
}
