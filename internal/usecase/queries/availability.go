package queries

import (
	"context"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/infra"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookedSlotsView struct {
	ProfessionalID uuid.UUID
	Date           string
	Slots          []string
}

type SlotReadStore interface {
	LiveSlotsForDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]appointment.SlotRecord, error)
}

type ProfessionalLookup interface {
	ProfessionalByID(ctx context.Context, id uuid.UUID) (*shared.ProfessionalSnapshot, error)
}

type AvailabilityQueries interface {
	// BookedSlots lists the HH:MM times already taken on dateStr (UTC). The
	// answer is advisory: it is read outside any transaction.
	BookedSlots(ctx context.Context, professionalID uuid.UUID, dateStr string) (*BookedSlotsView, error)
}

type availabilityQueriesImpl struct {
	slots         SlotReadStore
	professionals ProfessionalLookup
}

func NewAvailabilityQueries(slots SlotReadStore, professionals ProfessionalLookup) AvailabilityQueries {
	return &availabilityQueriesImpl{slots: slots, professionals: professionals}
}

func (q *availabilityQueriesImpl) BookedSlots(ctx context.Context, professionalID uuid.UUID, dateStr string) (*BookedSlotsView, error) {
	day, err := appointment.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	if _, err := q.professionals.ProfessionalByID(ctx, professionalID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}

	start, end := appointment.DayBounds(day)
	records, err := q.slots.LiveSlotsForDay(ctx, professionalID, start, end)
	if err != nil {
		return nil, err
	}
	return &BookedSlotsView{
		ProfessionalID: professionalID,
		Date:           dateStr,
		Slots:          appointment.BookedSlots(records, day),
	}, nil
}
