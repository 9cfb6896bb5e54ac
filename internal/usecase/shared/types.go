package shared

import (
	"time"

	"github.com/google/uuid"
)

type ProfessionalSnapshot struct {
	ID                 uuid.UUID
	DisplayName        string
	SubscriptionActive bool
}

type OwnerSnapshot struct {
	ID          uuid.UUID
	DisplayName string
	AnimalIDs   []uuid.UUID
}

const (
	IdempotencyStatusProcessing = "processing"
	IdempotencyStatusCompleted  = "completed"
)

type IdempotencyRecord struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Status              string
	RequestHash         string
	ResultAppointmentID *uuid.UUID
	ExpiresAt           time.Time
}

// CompletedAppointment is one row moved to completed by the sweep.
type CompletedAppointment struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	OwnerID        uuid.UUID
	MainSlot       time.Time
}
