package pgq

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Appointments struct {
	ID               uuid.UUID
	ProfessionalID   uuid.UUID
	OwnerID          uuid.UUID
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

type Professionals struct {
	ID                 uuid.UUID
	DisplayName        string
	SubscriptionStatus string
	CreatedAt          pgtype.Timestamptz
}

type Owners struct {
	ID          uuid.UUID
	DisplayName string
	CreatedAt   pgtype.Timestamptz
}

type ClientRelationships struct {
	ProfessionalID uuid.UUID
	OwnerID        uuid.UUID
	CreatedAt      pgtype.Timestamptz
}

type IdempotencyKeys struct {
	Key                 uuid.UUID
	UserID              uuid.UUID
	Endpoint            string
	RequestHash         string
	ResponseBodyHash    pgtype.Text
	Status              string
	ResultAppointmentID pgtype.UUID
	ExpiresAt           pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
	UpdatedAt           pgtype.Timestamptz
}

type NotificationJobs struct {
	ID        uuid.UUID
	Kind      string
	Topic     string
	Payload   []byte
	RunAt     pgtype.Timestamptz
	Attempts  int32
	Status    string
	LastError pgtype.Text
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}
