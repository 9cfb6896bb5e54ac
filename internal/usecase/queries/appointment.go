package queries

import (
	"context"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/user"
	"ekicare/internal/infra"

	"github.com/google/uuid"
)

type AppointmentView struct {
	ID               uuid.UUID
	ProfessionalID   uuid.UUID
	ProfessionalName string
	OwnerID          uuid.UUID
	OwnerName        string
	AnimalIDs        []uuid.UUID
	MainSlot         time.Time
	AlternativeSlots []time.Time
	DurationMinutes  int
	Status           string
	Comment          string
	Report           *string
	ProposedBy       *string
	CancelReason     *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Side selects which participant column a listing filters on.
type Side string

const (
	SideProfessional Side = "professional"
	SideOwner        Side = "owner"
)

func SideOf(role user.Role) Side {
	if role == user.RolePro {
		return SideProfessional
	}
	return SideOwner
}

type AppointmentFilter struct {
	// Side is optional; when set it must match the caller's role.
	Side     Side
	Statuses []appointment.Status
}

type AppointmentReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	FindByParticipantFirstPage(ctx context.Context, participantID uuid.UUID, side Side, statuses []appointment.Status, limit int32) ([]*AppointmentView, error)
	FindByParticipantKeyset(ctx context.Context, participantID uuid.UUID, side Side, statuses []appointment.Status, lastMainSlot time.Time, lastID uuid.UUID, limit int32) ([]*AppointmentView, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error)
	// GetByIDSystem skips the participant check; used for read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	List(ctx context.Context, actor user.Actor, filter AppointmentFilter, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error)
}

type appointmentQueriesImpl struct {
	repo AppointmentReadStore
}

func NewAppointmentQueries(repo AppointmentReadStore) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, actor user.Actor, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.GetByIDSystem(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParticipant(view, actor) {
		// Same answer as a missing row so ids cannot be probed.
		return nil, ErrAppointmentNotFound
	}
	return view, nil
}

func (q *appointmentQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *appointmentQueriesImpl) List(ctx context.Context, actor user.Actor, filter AppointmentFilter, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error) {
	side := SideOf(actor.Role)
	if filter.Side != "" && filter.Side != side {
		return nil, nil, ErrInvalidSide
	}

	limit = ValidateLimit(limit)
	var rows []*AppointmentView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindByParticipantFirstPage(ctx, actor.ID, side, filter.Statuses, int32(limit+1))
	} else {
		lastSlot, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.repo.FindByParticipantKeyset(ctx, actor.ID, side, filter.Statuses, lastSlot, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}
	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.MainSlot, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func isParticipant(v *AppointmentView, actor user.Actor) bool {
	switch {
	case actor.IsPro():
		return v.ProfessionalID == actor.ID
	case actor.IsOwner():
		return v.OwnerID == actor.ID
	default:
		return false
	}
}
