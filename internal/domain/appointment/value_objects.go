package appointment

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxCommentLength      = 2000
	MaxReportLength       = 5000
	MaxCancelReasonLength = 500
	DefaultDuration       = 60
	MaxDuration           = 24 * 60
)

type Comment struct {
	value string
}

func NewComment(s string) (Comment, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Comment{}, ErrEmptyComment
	}
	if utf8.RuneCountInString(v) > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{value: v}, nil
}

// ReconstructComment wraps a stored comment without validation.
func ReconstructComment(s string) Comment { return Comment{value: s} }

func (c Comment) String() string { return c.value }

type Report struct {
	value string
}

func NewReport(s string) (Report, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Report{}, ErrEmptyReport
	}
	if utf8.RuneCountInString(v) > MaxReportLength {
		return Report{}, ErrReportTooLong
	}
	return Report{value: v}, nil
}

func ReconstructReport(s string) Report { return Report{value: s} }

func (r Report) String() string { return r.value }

func normalizeCancelReason(s string) (*string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > MaxCancelReasonLength {
		return nil, ErrCancelReasonTooLong
	}
	return &v, nil
}

// NormalizeDuration applies the 60 minute default to a zero duration.
func NormalizeDuration(minutes int) (int, error) {
	if minutes == 0 {
		return DefaultDuration, nil
	}
	if minutes < 0 || minutes > MaxDuration {
		return 0, ErrInvalidDuration
	}
	return minutes, nil
}

func validateAnimals(ids []uuid.UUID, owned []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, ErrNoAnimals
	}
	ownedSet := make(map[uuid.UUID]struct{}, len(owned))
	for _, id := range owned {
		ownedSet[id] = struct{}{}
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, ErrNoAnimals
		}
		if _, dup := seen[id]; dup {
			return nil, ErrDuplicateAnimal
		}
		if _, ok := ownedSet[id]; !ok {
			return nil, ErrAnimalNotOwned
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func validateDistinctSlots(main Slot, alts []Slot) error {
	seen := map[int64]struct{}{main.at.Unix(): {}}
	for _, s := range alts {
		k := s.at.Unix()
		if _, dup := seen[k]; dup {
			return ErrDuplicateSlot
		}
		seen[k] = struct{}{}
	}
	return nil
}
