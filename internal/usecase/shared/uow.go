package shared

import (
	"context"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/relationship"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrStaleAppointment reports that the conditional update matched no row: a
// concurrent transition changed the status first.
var ErrStaleAppointment = errs.Mark(errs.New("appointment was changed concurrently"), errs.ErrInvalidTransition)

type UnitOfWork interface {
	// Within: single-attempt transaction for write operations
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinRetry: like Within, retried on transient failures up to maxRetries times
	WithinRetry(ctx context.Context, maxRetries int, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Appointments() AppointmentRepository
	Relationships() RelationshipRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
	DB() pgq.DBTX
}

type CommandReads interface {
	ProfessionalByID(ctx context.Context, id uuid.UUID) (*ProfessionalSnapshot, error)
	OwnerByID(ctx context.Context, id uuid.UUID) (*OwnerSnapshot, error)
	IdempotencyByKey(ctx context.Context, key, userID uuid.UUID) (*IdempotencyRecord, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx pgq.DBTX, a *appointment.Appointment) error
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, tx pgq.DBTX, id uuid.UUID) (*appointment.Appointment, error)
	// SaveTransition persists a only if its stored status is still prev.
	// Otherwise it returns ErrStaleAppointment.
	SaveTransition(ctx context.Context, tx pgq.DBTX, a *appointment.Appointment, prev appointment.Status) error
	CompleteElapsed(ctx context.Context, tx pgq.DBTX, eligible []appointment.Status, now time.Time) ([]CompletedAppointment, error)
}

type RelationshipRepository interface {
	// Ensure reports whether the pair was newly created.
	Ensure(ctx context.Context, tx pgq.DBTX, rel *relationship.ClientRelationship) (bool, error)
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, tx pgq.DBTX, key, userID uuid.UUID, endpoint, requestHash string, expiresAt time.Time) error
	UpdateStatusCompleted(ctx context.Context, tx pgq.DBTX, key, userID uuid.UUID, resultHash string, appointmentID uuid.UUID) error
	ClaimExpired(ctx context.Context, tx pgq.DBTX, key, userID uuid.UUID, requestHash string, expiresAt time.Time) (int64, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, tx pgq.DBTX, kind, topic string, payload []byte, runAt time.Time) error
}
