package commands

import (
	"context"
	"encoding/json"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

const notificationKind = "email"

type appointmentEvent struct {
	AppointmentID  uuid.UUID `json:"appointment_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Status         string    `json:"status"`
	MainSlot       time.Time `json:"main_slot"`
	Actor          string    `json:"actor,omitempty"`
}

// enqueueEvent writes an outbox row in the caller's transaction.
func enqueueEvent(ctx context.Context, tx shared.Tx, event appointment.Event, payload appointmentEvent, now time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, tx.DB(), notificationKind, event.String(), body, now)
}

func eventFor(a *appointment.Appointment, actor string) appointmentEvent {
	return appointmentEvent{
		AppointmentID:  a.ID(),
		ProfessionalID: a.ProfessionalID(),
		OwnerID:        a.OwnerID(),
		Status:         a.Status().String(),
		MainSlot:       a.MainSlot().Time(),
		Actor:          actor,
	}
}
