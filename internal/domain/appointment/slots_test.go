//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"ekicare/internal/domain/appointment"

	"github.com/stretchr/testify/assert"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2025, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestBookedSlots(t *testing.T) {
	day := at(10, 0, 0)

	cases := []struct {
		name    string
		records []appointment.SlotRecord
		want    []string
	}{
		{
			name: "main and alternatives of live appointments",
			records: []appointment.SlotRecord{
				{Status: appointment.StatusPending, MainSlot: at(10, 10, 0), AlternativeSlots: []time.Time{at(10, 14, 0), at(11, 9, 0)}},
				{Status: appointment.StatusConfirmed, MainSlot: at(10, 8, 30)},
			},
			want: []string{"08:30", "10:00", "14:00"},
		},
		{
			name: "terminal appointments do not block",
			records: []appointment.SlotRecord{
				{Status: appointment.StatusCancelled, MainSlot: at(10, 10, 0)},
				{Status: appointment.StatusCompleted, MainSlot: at(10, 11, 0)},
				{Status: appointment.StatusRescheduled, MainSlot: at(10, 12, 0)},
			},
			want: []string{"12:00"},
		},
		{
			name: "duplicates are reported once",
			records: []appointment.SlotRecord{
				{Status: appointment.StatusPending, MainSlot: at(10, 10, 0)},
				{Status: appointment.StatusConfirmed, MainSlot: at(10, 10, 0), AlternativeSlots: []time.Time{at(10, 10, 0)}},
			},
			want: []string{"10:00"},
		},
		{
			name: "instants with offsets are bucketed by UTC date",
			records: []appointment.SlotRecord{
				{Status: appointment.StatusPending, MainSlot: time.Date(2025, 3, 11, 0, 30, 0, 0, time.FixedZone("CET", 3600))},
			},
			want: []string{"23:30"},
		},
		{
			name: "no appointments",
			want: []string{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, appointment.BookedSlots(c.records, day))
		})
	}
}

func TestBookedSlotsIsUnionOfLiveSlots(t *testing.T) {
	records := []appointment.SlotRecord{
		{Status: appointment.StatusPending, MainSlot: at(10, 9, 0), AlternativeSlots: []time.Time{at(10, 9, 30)}},
		{Status: appointment.StatusRescheduled, MainSlot: at(10, 16, 0), AlternativeSlots: []time.Time{at(10, 9, 0)}},
		{Status: appointment.StatusCancelled, MainSlot: at(10, 17, 0)},
	}
	got := appointment.BookedSlots(records, at(10, 0, 0))

	want := map[string]bool{}
	for _, r := range records {
		if !r.Status.IsLive() {
			continue
		}
		for _, s := range append([]time.Time{r.MainSlot}, r.AlternativeSlots...) {
			want[s.Format(appointment.TimeLayout)] = true
		}
	}
	assert.Len(t, got, len(want))
	for _, s := range got {
		assert.True(t, want[s], s)
	}
}

func TestDayBounds(t *testing.T) {
	start, end := appointment.DayBounds(at(10, 15, 45))
	assert.Equal(t, at(10, 0, 0), start)
	assert.Equal(t, at(11, 0, 0), end)
}
