package event

import (
	"testing"
	"time"

	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOccursOn(t *testing.T) {
	start := util.NewDate(2024, 1, 31) // a Wednesday

	tests := []struct {
		name       string
		recurrence Recurrence
		day        util.Date
		want       bool
	}{
		{"none on start", RecurrenceNone, start, true},
		{"none next day", RecurrenceNone, start.AddDays(1), false},
		{"daily before start", RecurrenceDaily, start.AddDays(-1), false},
		{"daily later", RecurrenceDaily, start.AddDays(40), true},
		{"weekly same weekday", RecurrenceWeekly, start.AddDays(14), true},
		{"weekly other weekday", RecurrenceWeekly, start.AddDays(3), false},
		{"monthly clamps to february end", RecurrenceMonthly, util.NewDate(2024, 2, 29), true},
		{"monthly not on february 28 in a leap year", RecurrenceMonthly, util.NewDate(2024, 2, 28), false},
		{"monthly on april 30", RecurrenceMonthly, util.NewDate(2024, 4, 30), true},
		{"monthly on march 31", RecurrenceMonthly, util.NewDate(2024, 3, 31), true},
		{"monthly mid month", RecurrenceMonthly, util.NewDate(2024, 3, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Event{Date: start, Recurrence: tt.recurrence}
			assert.Equal(t, tt.want, e.OccursOn(tt.day))
		})
	}
}

func TestParseRecurrence(t *testing.T) {
	r, err := ParseRecurrence("")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceNone, r)

	r, err = ParseRecurrence("weekly")
	require.NoError(t, err)
	assert.Equal(t, RecurrenceWeekly, r)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY"}, r.RRule())
	assert.Nil(t, RecurrenceNone.RRule())

	_, err = ParseRecurrence("yearly")
	assert.ErrorIs(t, err, ErrInvalidRecurrence)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, daysIn(2024, time.February))
	assert.Equal(t, 28, daysIn(2023, time.February))
	assert.Equal(t, 31, daysIn(2024, time.December))
}
