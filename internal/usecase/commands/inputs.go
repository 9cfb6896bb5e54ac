package commands

import (
	"time"

	"ekicare/internal/domain/user"

	"github.com/google/uuid"
)

type CreateAppointmentInput struct {
	Actor            user.Actor
	ProfessionalID   uuid.UUID
	AnimalIDs        []uuid.UUID
	MainSlot         time.Time
	AlternativeSlots []time.Time
	DurationMinutes  int
	Comment          string
	// IdempotencyKey is optional. A repeated key with the same payload
	// replays the first result.
	IdempotencyKey *uuid.UUID
}

type AcceptInput struct {
	AppointmentID uuid.UUID
	Actor         user.Actor
}

type CancelInput struct {
	AppointmentID uuid.UUID
	Actor         user.Actor
	Reason        string
}

// RescheduleInput leaves a nil field unchanged.
type RescheduleInput struct {
	AppointmentID    uuid.UUID
	Actor            user.Actor
	MainSlot         *time.Time
	AlternativeSlots *[]time.Time
}

type CompleteInput struct {
	AppointmentID uuid.UUID
	Actor         user.Actor
	Report        *string
}

type ReportInput struct {
	AppointmentID uuid.UUID
	Actor         user.Actor
	Report        string
}
