package appointment

import (
	"ekicare/internal/pkg/clock"
	"ekicare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrEmptyComment         = errs.Mark(errs.New("comment is required"), errs.ErrValidation)
	ErrCommentTooLong       = errs.Mark(errs.New("comment is too long"), errs.ErrValidation)
	ErrEmptyReport          = errs.Mark(errs.New("report is required"), errs.ErrValidation)
	ErrReportTooLong        = errs.Mark(errs.New("report exceeds 5000 characters"), errs.ErrValidation)
	ErrCancelReasonTooLong  = errs.Mark(errs.New("cancel reason is too long"), errs.ErrValidation)
	ErrInvalidDuration      = errs.Mark(errs.New("duration must be positive"), errs.ErrValidation)
	ErrNoAnimals            = errs.Mark(errs.New("at least one animal is required"), errs.ErrValidation)
	ErrDuplicateAnimal      = errs.Mark(errs.New("animal listed twice"), errs.ErrValidation)
	ErrAnimalNotOwned       = errs.Mark(errs.New("animal does not belong to owner"), errs.ErrValidation)
	ErrDuplicateSlot        = errs.Mark(errs.New("main and alternative slots must be distinct"), errs.ErrValidation)
	ErrNothingToReschedule  = errs.Mark(errs.New("reschedule must change the main or alternative slots"), errs.ErrValidation)
	ErrSubscriptionInactive = errs.Mark(errs.New("professional subscription is not active"), errs.ErrValidation)
	ErrSlotInPast           = errs.Mark(errs.New("slot is in the past"), errs.ErrValidation)

	ErrNotParticipant = errs.Mark(errs.New("actor is not a participant"), errs.ErrForbidden)
	ErrWrongActor     = errs.Mark(errs.New("actor may not perform this action"), errs.ErrForbidden)
)

// VerificationPolicy is resolved from configuration at startup.
type VerificationPolicy struct {
	RequireSubscriptionActive bool
}

type Services struct {
	Clock  clock.Clock
	Policy VerificationPolicy
}

type ProfessionalSpec struct {
	ID                 uuid.UUID
	SubscriptionActive bool
}

// OwnerSpec carries the owner's identity and the ids of every animal they own.
type OwnerSpec struct {
	ID        uuid.UUID
	AnimalIDs []uuid.UUID
}

type Event string

const (
	EventRequested   Event = "appointment_requested"
	EventConfirmed   Event = "appointment_confirmed"
	EventRescheduled Event = "appointment_rescheduled"
	EventCancelled   Event = "appointment_cancelled"
	EventCompleted   Event = "appointment_completed"
	EventReported    Event = "appointment_report_attached"
)

func (e Event) String() string { return string(e) }
