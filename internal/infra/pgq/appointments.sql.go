package pgq

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const appointmentColumns = `id, professional_id, owner_id, animal_ids, main_slot, alternative_slots,
  duration_minutes, status, comment, report, proposed_by, cancel_reason, created_at, updated_at`

func scanAppointment(row interface{ Scan(...any) error }) (Appointments, error) {
	var i Appointments
	err := row.Scan(
		&i.ID,
		&i.ProfessionalID,
		&i.OwnerID,
		&i.AnimalIds,
		&i.MainSlot,
		&i.AlternativeSlots,
		&i.DurationMinutes,
		&i.Status,
		&i.Comment,
		&i.Report,
		&i.ProposedBy,
		&i.CancelReason,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const createAppointment = `-- name: CreateAppointment :exec
INSERT INTO appointments (
  id, professional_id, owner_id, animal_ids, main_slot, alternative_slots,
  duration_minutes, status, comment, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
`

type CreateAppointmentParams struct {
	ID               uuid.UUID
	ProfessionalID   uuid.UUID
	OwnerID          uuid.UUID
	AnimalIds        []pgtype.UUID
	MainSlot         pgtype.Timestamptz
	AlternativeSlots []time.Time
	DurationMinutes  int32
	Status           string
	Comment          string
	CreatedAt        pgtype.Timestamptz
}

func (q *Queries) CreateAppointment(ctx context.Context, db DBTX, arg CreateAppointmentParams) error {
	_, err := db.Exec(ctx, createAppointment,
		arg.ID,
		arg.ProfessionalID,
		arg.OwnerID,
		arg.AnimalIds,
		arg.MainSlot,
		arg.AlternativeSlots,
		arg.DurationMinutes,
		arg.Status,
		arg.Comment,
		arg.CreatedAt,
	)
	return err
}

const getAppointmentForUpdate = `-- name: GetAppointmentForUpdate :one
SELECT ` + appointmentColumns + `
FROM appointments
WHERE id = $1
FOR UPDATE
`

func (q *Queries) GetAppointmentForUpdate(ctx context.Context, db DBTX, id uuid.UUID) (Appointments, error) {
	return scanAppointment(db.QueryRow(ctx, getAppointmentForUpdate, id))
}

const updateAppointmentState = `-- name: UpdateAppointmentState :execrows
UPDATE appointments
SET status = $3,
    main_slot = $4,
    alternative_slots = $5,
    report = $6,
    proposed_by = $7,
    cancel_reason = $8,
    updated_at = $9
WHERE id = $1
  AND status = ANY($2::text[])
`

type UpdateAppointmentStateParams struct {
	ID               uuid.UUID
	PrevStatuses     []string
	Status           string
	MainSlot         pgtype.Timestamptz
	AlternativeSlots []time.Time
	Report           pgtype.Text
	ProposedBy       pgtype.Text
	CancelReason     pgtype.Text
	UpdatedAt        pgtype.Timestamptz
}

func (q *Queries) UpdateAppointmentState(ctx context.Context, db DBTX, arg UpdateAppointmentStateParams) (int64, error) {
	result, err := db.Exec(ctx, updateAppointmentState,
		arg.ID,
		arg.PrevStatuses,
		arg.Status,
		arg.MainSlot,
		arg.AlternativeSlots,
		arg.Report,
		arg.ProposedBy,
		arg.CancelReason,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const completeElapsedAppointments = `-- name: CompleteElapsedAppointments :many
UPDATE appointments
SET status = 'completed',
    updated_at = $2
WHERE status = ANY($1::text[])
  AND main_slot < $2
RETURNING id, professional_id, owner_id, main_slot
`

type CompleteElapsedAppointmentsParams struct {
	Statuses []string
	Now      pgtype.Timestamptz
}

type CompleteElapsedAppointmentsRow struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	OwnerID        uuid.UUID
	MainSlot       pgtype.Timestamptz
}

func (q *Queries) CompleteElapsedAppointments(ctx context.Context, db DBTX, arg CompleteElapsedAppointmentsParams) ([]CompleteElapsedAppointmentsRow, error) {
	rows, err := db.Query(ctx, completeElapsedAppointments, arg.Statuses, arg.Now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CompleteElapsedAppointmentsRow
	for rows.Next() {
		var i CompleteElapsedAppointmentsRow
		if err := rows.Scan(&i.ID, &i.ProfessionalID, &i.OwnerID, &i.MainSlot); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listAppointmentSlotsForDay = `-- name: ListAppointmentSlotsForDay :many
SELECT status, main_slot, alternative_slots
FROM appointments
WHERE professional_id = $1
  AND status = ANY($2::text[])
  AND (
    (main_slot >= $3 AND main_slot < $4)
    OR EXISTS (
      SELECT 1 FROM unnest(alternative_slots) AS alt(slot)
      WHERE alt.slot >= $3 AND alt.slot < $4
    )
  )
`

type ListAppointmentSlotsForDayParams struct {
	ProfessionalID uuid.UUID
	Statuses       []string
	DayStart       pgtype.Timestamptz
	DayEnd         pgtype.Timestamptz
}

type ListAppointmentSlotsForDayRow struct {
	Status           string
	MainSlot         pgtype.Timestamptz
	AlternativeSlots []time.Time
}

func (q *Queries) ListAppointmentSlotsForDay(ctx context.Context, db DBTX, arg ListAppointmentSlotsForDayParams) ([]ListAppointmentSlotsForDayRow, error) {
	rows, err := db.Query(ctx, listAppointmentSlotsForDay, arg.ProfessionalID, arg.Statuses, arg.DayStart, arg.DayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListAppointmentSlotsForDayRow
	for rows.Next() {
		var i ListAppointmentSlotsForDayRow
		if err := rows.Scan(&i.Status, &i.MainSlot, &i.AlternativeSlots); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const appointmentViewSelect = `SELECT a.id, a.professional_id, p.display_name, a.owner_id, o.display_name,
  a.animal_ids, a.main_slot, a.alternative_slots, a.duration_minutes, a.status,
  a.comment, a.report, a.proposed_by, a.cancel_reason, a.created_at, a.updated_at
FROM appointments a
JOIN professionals p ON p.id = a.professional_id
JOIN owners o ON o.id = a.owner_id
`

type AppointmentViewRow struct {
	ID               uuid.UUID
	ProfessionalID   uuid.UUID
	ProfessionalName string
	OwnerID          uuid.UUID
	OwnerName        string
	AnimalIds        []pgtype.UUID
	MainSlot         pgtype.Timestamptz
	AlternativeSlots []time.Time
	DurationMinutes  int32
	Status           string
	Comment          string
	Report           pgtype.Text
	ProposedBy       pgtype.Text
	CancelReason     pgtype.Text
	CreatedAt        pgtype.Timestamptz
	UpdatedAt        pgtype.Timestamptz
}

func scanAppointmentView(row interface{ Scan(...any) error }) (AppointmentViewRow, error) {
	var i AppointmentViewRow
	err := row.Scan(
		&i.ID,
		&i.ProfessionalID,
		&i.ProfessionalName,
		&i.OwnerID,
		&i.OwnerName,
		&i.AnimalIds,
		&i.MainSlot,
		&i.AlternativeSlots,
		&i.DurationMinutes,
		&i.Status,
		&i.Comment,
		&i.Report,
		&i.ProposedBy,
		&i.CancelReason,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectAppointmentViews(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
	Close()
}) ([]AppointmentViewRow, error) {
	defer rows.Close()
	var items []AppointmentViewRow
	for rows.Next() {
		i, err := scanAppointmentView(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getAppointmentViewByID = `-- name: GetAppointmentViewByID :one
` + appointmentViewSelect + `WHERE a.id = $1
`

func (q *Queries) GetAppointmentViewByID(ctx context.Context, db DBTX, id uuid.UUID) (AppointmentViewRow, error) {
	return scanAppointmentView(db.QueryRow(ctx, getAppointmentViewByID, id))
}

// Participant filtering: $1 is matched against professional_id when $2 is
// 'professional' and against owner_id when $2 is 'owner'. An empty $3 means
// every status.
const listAppointmentsFirstPage = `-- name: ListAppointmentsFirstPage :many
` + appointmentViewSelect + `WHERE (($2::text = 'professional' AND a.professional_id = $1)
    OR ($2::text = 'owner' AND a.owner_id = $1))
  AND (coalesce(cardinality($3::text[]), 0) = 0 OR a.status = ANY($3::text[]))
ORDER BY a.main_slot DESC, a.id DESC
LIMIT $4
`

type ListAppointmentsFirstPageParams struct {
	ParticipantID uuid.UUID
	Side          string
	Statuses      []string
	Limit         int32
}

func (q *Queries) ListAppointmentsFirstPage(ctx context.Context, db DBTX, arg ListAppointmentsFirstPageParams) ([]AppointmentViewRow, error) {
	rows, err := db.Query(ctx, listAppointmentsFirstPage, arg.ParticipantID, arg.Side, arg.Statuses, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectAppointmentViews(rows)
}

const listAppointmentsKeyset = `-- name: ListAppointmentsKeyset :many
` + appointmentViewSelect + `WHERE (($2::text = 'professional' AND a.professional_id = $1)
    OR ($2::text = 'owner' AND a.owner_id = $1))
  AND (coalesce(cardinality($3::text[]), 0) = 0 OR a.status = ANY($3::text[]))
  AND (a.main_slot, a.id) < ($4::timestamptz, $5::uuid)
ORDER BY a.main_slot DESC, a.id DESC
LIMIT $6
`

type ListAppointmentsKeysetParams struct {
	ParticipantID uuid.UUID
	Side          string
	Statuses      []string
	MainSlot      pgtype.Timestamptz
	ID            uuid.UUID
	Limit         int32
}

func (q *Queries) ListAppointmentsKeyset(ctx context.Context, db DBTX, arg ListAppointmentsKeysetParams) ([]AppointmentViewRow, error) {
	rows, err := db.Query(ctx, listAppointmentsKeyset, arg.ParticipantID, arg.Side, arg.Statuses, arg.MainSlot, arg.ID, arg.Limit)
	if err != nil {
		return nil, err
	}
	return collectAppointmentViews(rows)
}
