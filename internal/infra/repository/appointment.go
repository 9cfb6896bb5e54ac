package repository

import (
	"context"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/infra"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/infra/repository/converter"
	"ekicare/internal/pkg/pgconv"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

type AppointmentWriteQueries interface {
	CreateAppointment(ctx context.Context, db pgq.DBTX, arg pgq.CreateAppointmentParams) error
	GetAppointmentForUpdate(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Appointments, error)
	UpdateAppointmentState(ctx context.Context, db pgq.DBTX, arg pgq.UpdateAppointmentStateParams) (int64, error)
	CompleteElapsedAppointments(ctx context.Context, db pgq.DBTX, arg pgq.CompleteElapsedAppointmentsParams) ([]pgq.CompleteElapsedAppointmentsRow, error)
}

type AppointmentRepository struct {
	queries AppointmentWriteQueries
	db      pgq.DBTX
}

func NewAppointmentRepository(queries AppointmentWriteQueries, db pgq.DBTX) *AppointmentRepository {
	return &AppointmentRepository{
		queries: queries,
		db:      db,
	}
}

func (r *AppointmentRepository) Create(ctx context.Context, tx pgq.DBTX, a *appointment.Appointment) error {
	if err := r.queries.CreateAppointment(ctx, tx, converter.AppointmentToCreateParams(a)); err != nil {
		return infra.WrapRepoErr("failed to create appointment", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByIDForUpdate(ctx context.Context, tx pgq.DBTX, id uuid.UUID) (*appointment.Appointment, error) {
	row, err := r.queries.GetAppointmentForUpdate(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock appointment", err)
	}
	a, err := converter.AppointmentFromRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode appointment", err)
	}
	return a, nil
}

func (r *AppointmentRepository) SaveTransition(ctx context.Context, tx pgq.DBTX, a *appointment.Appointment, prev appointment.Status) error {
	n, err := r.queries.UpdateAppointmentState(ctx, tx, converter.AppointmentToStateParams(a, prev))
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment", err)
	}
	if n == 0 {
		return shared.ErrStaleAppointment
	}
	return nil
}

func (r *AppointmentRepository) CompleteElapsed(ctx context.Context, tx pgq.DBTX, eligible []appointment.Status, now time.Time) ([]shared.CompletedAppointment, error) {
	rows, err := r.queries.CompleteElapsedAppointments(ctx, tx, pgq.CompleteElapsedAppointmentsParams{
		Statuses: appointment.StatusStrings(eligible),
		Now:      pgconv.TimeToPgtype(now),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to complete elapsed appointments", err)
	}
	out := make([]shared.CompletedAppointment, len(rows))
	for i, row := range rows {
		out[i] = shared.CompletedAppointment{
			ID:             row.ID,
			ProfessionalID: row.ProfessionalID,
			OwnerID:        row.OwnerID,
			MainSlot:       pgconv.TimeFromPgtype(row.MainSlot),
		}
	}
	return out, nil
}
