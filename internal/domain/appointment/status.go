package appointment

import (
	"ekicare/internal/pkg/errs"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
)

// Historical rows carry a French spelling of the completed state. It is read
// as StatusCompleted and never written back.
var legacyStatuses = map[string]Status{
	"terminé": StatusCompleted,
	"termine": StatusCompleted,
}

var transitions = map[Status][]Status{
	StatusPending:     {StatusConfirmed, StatusCancelled, StatusRescheduled},
	StatusConfirmed:   {StatusCompleted, StatusCancelled, StatusRescheduled},
	StatusRescheduled: {StatusConfirmed, StatusCancelled},
	StatusCompleted:   nil,
	StatusCancelled:   nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if st.IsValid() {
		return st, nil
	}
	if legacy, ok := legacyStatuses[s]; ok {
		return legacy, nil
	}
	return "", errs.Mark(errs.Newf("unknown appointment status %q", s), errs.ErrValidation)
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsLive reports whether an appointment in this state still occupies its slots.
func (s Status) IsLive() bool {
	return s.IsValid() && !s.IsTerminal()
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func LiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusRescheduled}
}

// SweepEligible lists the states the completion sweep moves to completed once
// their main slot has passed.
func SweepEligible(includePending bool) []Status {
	if includePending {
		return []Status{StatusConfirmed, StatusRescheduled, StatusPending}
	}
	return []Status{StatusConfirmed, StatusRescheduled}
}

func StatusStrings(ss []Status) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

// StoredSpellings lists every value a row in status s may hold, legacy
// spellings included.
func (s Status) StoredSpellings() []string {
	out := []string{string(s)}
	for legacy, canonical := range legacyStatuses {
		if canonical == s {
			out = append(out, legacy)
		}
	}
	return out
}

func StoredSpellings(ss []Status) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.StoredSpellings()...)
	}
	return out
}
