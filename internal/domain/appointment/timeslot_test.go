//go:build unit

package appointment_test

import (
	"fmt"
	"testing"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCanonicalInstant(t *testing.T) {
	t.Run("reads date and time as UTC", func(t *testing.T) {
		got, err := appointment.ToCanonicalInstant("2025-03-10", "10:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), got)
		assert.Equal(t, time.UTC, got.Location())
	})

	invalid := []struct{ date, tm string }{
		{"2025-13-01", "10:00"},
		{"2025-02-30", "10:00"},
		{"2025-03-10", "24:00"},
		{"2025-03-10", "10:60"},
		{"2025-03-10", "9:00"},
		{"2025/03/10", "10:00"},
		{"", ""},
		{"2025-03-10", "10:00:00"},
	}
	for _, c := range invalid {
		t.Run(fmt.Sprintf("rejects %q %q", c.date, c.tm), func(t *testing.T) {
			_, err := appointment.ToCanonicalInstant(c.date, c.tm)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidTemporalInput))
		})
	}
}

func TestTimeRoundTrip(t *testing.T) {
	start := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 72; i++ {
		instant := start.Add(time.Duration(i) * 97 * time.Minute)
		date, tm := appointment.SplitInstant(instant)

		back, err := appointment.ToCanonicalInstant(date, tm)
		require.NoError(t, err)
		assert.True(t, instant.Equal(back), "instant %s", instant)

		d2, t2 := appointment.SplitInstant(back)
		assert.Equal(t, date, d2)
		assert.Equal(t, tm, t2)
	}
}

func TestSplitInstantRendersUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	d, tm := appointment.SplitInstant(time.Date(2025, 3, 10, 0, 30, 0, 0, paris))
	assert.Equal(t, "2025-03-09", d)
	assert.Equal(t, "23:30", tm)
}

func TestParseInstant(t *testing.T) {
	got, err := appointment.ParseInstant("2025-03-10T11:00:00+01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), got)

	got, err = appointment.ParseInstant("2025-03-10T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, got.Location())

	for _, s := range []string{"2025-03-10T10:00:00", "2025-03-10 10:00", "tomorrow"} {
		_, err := appointment.ParseInstant(s)
		assert.True(t, errs.Is(err, errs.ErrInvalidTemporalInput), s)
	}
}

func TestIsPast(t *testing.T) {
	now := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	assert.True(t, appointment.IsPast(now.Add(-time.Minute), now))
	assert.False(t, appointment.IsPast(now, now))
	assert.False(t, appointment.IsPast(now.Add(time.Minute), now))
}

func TestNewSlot(t *testing.T) {
	_, err := appointment.NewSlot(time.Time{})
	assert.True(t, errs.Is(err, errs.ErrInvalidTemporalInput))

	s, err := appointment.NewSlot(time.Date(2025, 3, 10, 10, 15, 42, 0, time.FixedZone("X", 7200)))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 8, 15, 0, 0, time.UTC), s.Time())
	assert.Equal(t, "2025-03-10", s.Date())
	assert.Equal(t, "08:15", s.TimeOfDay())
}
