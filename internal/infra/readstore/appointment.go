package readstore

import (
	"context"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/infra"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/pgconv"
	"ekicare/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentViewQueries interface {
	GetAppointmentViewByID(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.AppointmentViewRow, error)
	ListAppointmentsFirstPage(ctx context.Context, db pgq.DBTX, arg pgq.ListAppointmentsFirstPageParams) ([]pgq.AppointmentViewRow, error)
	ListAppointmentsKeyset(ctx context.Context, db pgq.DBTX, arg pgq.ListAppointmentsKeysetParams) ([]pgq.AppointmentViewRow, error)
	ListAppointmentSlotsForDay(ctx context.Context, db pgq.DBTX, arg pgq.ListAppointmentSlotsForDayParams) ([]pgq.ListAppointmentSlotsForDayRow, error)
}

type AppointmentReadStore struct {
	queries AppointmentViewQueries
	db      pgq.DBTX
}

func NewAppointmentReadStore(queries AppointmentViewQueries, db pgq.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	row, err := r.queries.GetAppointmentViewByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get appointment view by id", err)
	}
	return toAppointmentView(row), nil
}

func (r *AppointmentReadStore) FindByParticipantFirstPage(ctx context.Context, participantID uuid.UUID, side queries.Side, statuses []appointment.Status, limit int32) ([]*queries.AppointmentView, error) {
	rows, err := r.queries.ListAppointmentsFirstPage(ctx, r.db, pgq.ListAppointmentsFirstPageParams{
		ParticipantID: participantID,
		Side:          string(side),
		Statuses:      appointment.StoredSpellings(statuses),
		Limit:         limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments first page", err)
	}
	return toAppointmentViews(rows), nil
}

func (r *AppointmentReadStore) FindByParticipantKeyset(ctx context.Context, participantID uuid.UUID, side queries.Side, statuses []appointment.Status, lastMainSlot time.Time, lastID uuid.UUID, limit int32) ([]*queries.AppointmentView, error) {
	rows, err := r.queries.ListAppointmentsKeyset(ctx, r.db, pgq.ListAppointmentsKeysetParams{
		ParticipantID: participantID,
		Side:          string(side),
		Statuses:      appointment.StoredSpellings(statuses),
		MainSlot:      pgconv.TimeToPgtype(lastMainSlot),
		ID:            lastID,
		Limit:         limit,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments keyset", err)
	}
	return toAppointmentViews(rows), nil
}

// LiveSlotsForDay returns the slot records of live appointments with any slot
// in [dayStart, dayEnd).
func (r *AppointmentReadStore) LiveSlotsForDay(ctx context.Context, professionalID uuid.UUID, dayStart, dayEnd time.Time) ([]appointment.SlotRecord, error) {
	rows, err := r.queries.ListAppointmentSlotsForDay(ctx, r.db, pgq.ListAppointmentSlotsForDayParams{
		ProfessionalID: professionalID,
		Statuses:       appointment.StatusStrings(appointment.LiveStatuses()),
		DayStart:       pgconv.TimeToPgtype(dayStart),
		DayEnd:         pgconv.TimeToPgtype(dayEnd),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointment slots", err)
	}
	out := make([]appointment.SlotRecord, 0, len(rows))
	for _, row := range rows {
		status, err := appointment.ParseStatus(row.Status)
		if err != nil {
			continue
		}
		out = append(out, appointment.SlotRecord{
			Status:           status,
			MainSlot:         pgconv.TimeFromPgtype(row.MainSlot),
			AlternativeSlots: pgconv.TimesToUTC(row.AlternativeSlots),
		})
	}
	return out, nil
}

func toAppointmentViews(rows []pgq.AppointmentViewRow) []*queries.AppointmentView {
	out := make([]*queries.AppointmentView, len(rows))
	for i, row := range rows {
		out[i] = toAppointmentView(row)
	}
	return out
}

func toAppointmentView(row pgq.AppointmentViewRow) *queries.AppointmentView {
	// Unknown spellings are passed through so the row stays visible.
	status := row.Status
	if s, err := appointment.ParseStatus(row.Status); err == nil {
		status = s.String()
	}
	return &queries.AppointmentView{
		ID:               row.ID,
		ProfessionalID:   row.ProfessionalID,
		ProfessionalName: row.ProfessionalName,
		OwnerID:          row.OwnerID,
		OwnerName:        row.OwnerName,
		AnimalIDs:        pgconv.UUIDsFromPgtype(row.AnimalIds),
		MainSlot:         pgconv.TimeFromPgtype(row.MainSlot),
		AlternativeSlots: pgconv.TimesToUTC(row.AlternativeSlots),
		DurationMinutes:  int(row.DurationMinutes),
		Status:           status,
		Comment:          row.Comment,
		Report:           pgconv.StringPtrFromPgtype(row.Report),
		ProposedBy:       pgconv.StringPtrFromPgtype(row.ProposedBy),
		CancelReason:     pgconv.StringPtrFromPgtype(row.CancelReason),
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}
