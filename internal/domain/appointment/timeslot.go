package appointment

import (
	"time"

	"ekicare/internal/pkg/errs"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// All booking input is treated as UTC wall clock. Callers must agree on this
// convention; no local time zone is inferred anywhere in the core.

// ToCanonicalInstant combines a calendar date and a time of day, both read as UTC.
func ToCanonicalInstant(dateStr, timeStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, dateStr+" "+timeStr, time.UTC)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "parse %q %q", dateStr, timeStr), errs.ErrInvalidTemporalInput)
	}
	// time.Parse tolerates single-digit hours; only the canonical spelling is accepted.
	if t.Format(DateLayout) != dateStr || t.Format(TimeLayout) != timeStr {
		return time.Time{}, errs.Mark(errs.Newf("non-canonical date/time %q %q", dateStr, timeStr), errs.ErrInvalidTemporalInput)
	}
	return t, nil
}

// ParseDate returns midnight UTC of dateStr.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, dateStr, time.UTC)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "parse date %q", dateStr), errs.ErrInvalidTemporalInput)
	}
	if t.Format(DateLayout) != dateStr {
		return time.Time{}, errs.Mark(errs.Newf("non-canonical date %q", dateStr), errs.ErrInvalidTemporalInput)
	}
	return t, nil
}

// ParseInstant accepts RFC 3339 only, so the offset is always explicit.
// Strings without a zone designator are rejected rather than guessed.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "parse instant %q", s), errs.ErrInvalidTemporalInput)
	}
	return t.UTC(), nil
}

func IsPast(instant, now time.Time) bool {
	return instant.Before(now)
}

func SplitInstant(instant time.Time) (dateStr, timeStr string) {
	u := instant.UTC()
	return u.Format(DateLayout), u.Format(TimeLayout)
}

// Slot is a bookable instant: UTC, minute precision.
type Slot struct {
	at time.Time
}

func NewSlot(t time.Time) (Slot, error) {
	if t.IsZero() {
		return Slot{}, errs.Mark(errs.New("slot instant is required"), errs.ErrInvalidTemporalInput)
	}
	return Slot{at: t.UTC().Truncate(time.Minute)}, nil
}

// ReconstructSlot wraps a stored instant without validation.
func ReconstructSlot(t time.Time) Slot {
	return Slot{at: t.UTC()}
}

func ReconstructSlots(ts []time.Time) []Slot {
	out := make([]Slot, len(ts))
	for i, t := range ts {
		out[i] = ReconstructSlot(t)
	}
	return out
}

func (s Slot) Time() time.Time           { return s.at }
func (s Slot) IsZero() bool              { return s.at.IsZero() }
func (s Slot) Equal(o Slot) bool         { return s.at.Equal(o.at) }
func (s Slot) IsPast(now time.Time) bool { return IsPast(s.at, now) }
func (s Slot) String() string            { return s.at.Format(time.RFC3339) }
func (s Slot) Date() string              { return s.at.Format(DateLayout) }
func (s Slot) TimeOfDay() string         { return s.at.Format(TimeLayout) }

func slotsFromTimes(ts []time.Time) ([]Slot, error) {
	out := make([]Slot, 0, len(ts))
	for _, t := range ts {
		s, err := NewSlot(t)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func SlotTimes(ss []Slot) []time.Time {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		out[i] = s.at
	}
	return out
}
