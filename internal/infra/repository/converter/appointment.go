package converter

import (
	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/user"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

func AppointmentToCreateParams(a *appointment.Appointment) pgq.CreateAppointmentParams {
	return pgq.CreateAppointmentParams{
		ID:               a.ID(),
		ProfessionalID:   a.ProfessionalID(),
		OwnerID:          a.OwnerID(),
		AnimalIds:        pgconv.UUIDsToPgtype(a.AnimalIDs()),
		MainSlot:         pgconv.TimeToPgtype(a.MainSlot().Time()),
		AlternativeSlots: pgconv.TimesToUTC(appointment.SlotTimes(a.AlternativeSlots())),
		DurationMinutes:  int32(a.DurationMinutes()),
		Status:           a.Status().String(),
		Comment:          a.Comment().String(),
		CreatedAt:        pgconv.TimeToPgtype(a.CreatedAt()),
	}
}

func AppointmentToStateParams(a *appointment.Appointment, prev appointment.Status) pgq.UpdateAppointmentStateParams {
	var report *string
	if r := a.Report(); r != nil {
		s := r.String()
		report = &s
	}
	return pgq.UpdateAppointmentStateParams{
		ID:               a.ID(),
		PrevStatuses:     prev.StoredSpellings(),
		Status:           a.Status().String(),
		MainSlot:         pgconv.TimeToPgtype(a.MainSlot().Time()),
		AlternativeSlots: pgconv.TimesToUTC(appointment.SlotTimes(a.AlternativeSlots())),
		Report:           pgconv.StringPtrToPgtype(report),
		ProposedBy:       roleToPgtype(a.ProposedBy()),
		CancelReason:     pgconv.StringPtrToPgtype(a.CancelReason()),
		UpdatedAt:        pgconv.TimeToPgtype(a.UpdatedAt()),
	}
}

func AppointmentFromRow(row pgq.Appointments) (*appointment.Appointment, error) {
	status, err := appointment.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	var report *appointment.Report
	if row.Report.Valid {
		r := appointment.ReconstructReport(row.Report.String)
		report = &r
	}

	return appointment.ReconstructAppointment(
		row.ID,
		row.ProfessionalID,
		row.OwnerID,
		pgconv.UUIDsFromPgtype(row.AnimalIds),
		appointment.ReconstructSlot(pgconv.TimeFromPgtype(row.MainSlot)),
		appointment.ReconstructSlots(row.AlternativeSlots),
		int(row.DurationMinutes),
		status,
		appointment.ReconstructComment(row.Comment),
		report,
		user.Role(row.ProposedBy.String),
		pgconv.StringPtrFromPgtype(row.CancelReason),
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func roleToPgtype(r user.Role) pgtype.Text {
	if r == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: r.String(), Valid: true}
}
