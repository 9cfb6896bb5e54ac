package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/domain/relationship"
	"ekicare/internal/infra"
	"ekicare/internal/pkg/clock"
	"ekicare/internal/pkg/errs"
	"ekicare/internal/usecase/queries"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	createEndpoint = "POST /api/appointments"
	idempotencyTTL = 24 * time.Hour
)

type CreateAppointmentResult struct {
	Appointment *queries.AppointmentView
	IsReplayed  bool
}

type AppointmentCommands interface {
	Create(ctx context.Context, in CreateAppointmentInput) (*CreateAppointmentResult, error)
	Accept(ctx context.Context, in AcceptInput) (*queries.AppointmentView, error)
	Cancel(ctx context.Context, in CancelInput) (*queries.AppointmentView, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*queries.AppointmentView, error)
	Complete(ctx context.Context, in CompleteInput) (*queries.AppointmentView, error)
	AttachReport(ctx context.Context, in ReportInput) (*queries.AppointmentView, error)
}

type appointmentUseCaseImpl struct {
	uow      shared.UnitOfWork
	queries  queries.AppointmentQueries
	services *appointment.Services
	clock    clock.Clock
}

func NewAppointmentUseCase(
	uow shared.UnitOfWork,
	appointmentQueries queries.AppointmentQueries,
	clk clock.Clock,
	policy appointment.VerificationPolicy,
) AppointmentCommands {
	return &appointmentUseCaseImpl{
		uow:      uow,
		queries:  appointmentQueries,
		services: &appointment.Services{Clock: clk, Policy: policy},
		clock:    clk,
	}
}

func (uc *appointmentUseCaseImpl) Create(ctx context.Context, in CreateAppointmentInput) (*CreateAppointmentResult, error) {
	if !in.Actor.IsOwner() {
		return nil, ErrOwnerOnly
	}

	var (
		createdID  uuid.UUID
		replayedID *uuid.UUID
	)
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if in.IdempotencyKey != nil {
			id, err := uc.claimIdempotencyKey(ctx, tx, *in.IdempotencyKey, in.Actor.ID, requestHash(in))
			if err != nil {
				return err
			}
			if id != nil {
				replayedID = id
				return nil
			}
		}

		pro, err := tx.Reads().ProfessionalByID(ctx, in.ProfessionalID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrProfessionalNotFound
			}
			return err
		}
		owner, err := tx.Reads().OwnerByID(ctx, in.Actor.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOwnerNotFound
			}
			return err
		}

		a, err := appointment.NewAppointment(
			uc.services,
			appointment.ProfessionalSpec{ID: pro.ID, SubscriptionActive: pro.SubscriptionActive},
			appointment.OwnerSpec{ID: owner.ID, AnimalIDs: owner.AnimalIDs},
			appointment.NewAppointmentParams{
				AnimalIDs:        in.AnimalIDs,
				MainSlot:         in.MainSlot,
				AlternativeSlots: in.AlternativeSlots,
				DurationMinutes:  in.DurationMinutes,
				Comment:          in.Comment,
			},
		)
		if err != nil {
			return err
		}

		if err := tx.Appointments().Create(ctx, tx.DB(), a); err != nil {
			return err
		}
		if err := enqueueEvent(ctx, tx, appointment.EventRequested, eventFor(a, in.Actor.Role.String()), a.CreatedAt()); err != nil {
			return err
		}
		if in.IdempotencyKey != nil {
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *in.IdempotencyKey, in.Actor.ID, idHash(a.ID()), a.ID()); err != nil {
				return err
			}
		}
		createdID = a.ID()
		return nil
	})
	if err != nil {
		return nil, err
	}

	if replayedID != nil {
		view, err := uc.queries.GetByIDSystem(ctx, *replayedID)
		if err != nil {
			return nil, err
		}
		return &CreateAppointmentResult{Appointment: view, IsReplayed: true}, nil
	}

	slog.InfoContext(ctx, "appointment requested",
		"appointment_id", createdID.String(),
		"professional_id", in.ProfessionalID.String())

	// Read-after-write through the read store for the joined view
	view, err := uc.queries.GetByIDSystem(ctx, createdID)
	if err != nil {
		return nil, err
	}
	return &CreateAppointmentResult{Appointment: view}, nil
}

// claimIdempotencyKey returns the stored appointment id when the request is a
// replay, or nil when the caller should proceed with creation. Runs inside the
// creating transaction, so a failed creation releases the key.
func (uc *appointmentUseCaseImpl) claimIdempotencyKey(
	ctx context.Context,
	tx shared.Tx,
	key, userID uuid.UUID,
	hash string,
) (*uuid.UUID, error) {
	expiresAt := uc.clock.Now().Add(idempotencyTTL)
	if err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, userID, createEndpoint, hash, expiresAt); err != nil {
		return nil, err
	}

	existing, err := tx.Reads().IdempotencyByKey(ctx, key, userID)
	if err != nil {
		return nil, err
	}

	switch existing.Status {
	case shared.IdempotencyStatusCompleted:
		if existing.RequestHash != hash {
			return nil, ErrIdempotencyKeyReused
		}
		if existing.ResultAppointmentID == nil {
			return nil, ErrIdempotencyCorrupt
		}
		return existing.ResultAppointmentID, nil

	case shared.IdempotencyStatusProcessing:
		if existing.RequestHash == hash {
			return nil, nil
		}
		// A processing row left behind by an aborted writer may be taken over once expired.
		n, err := tx.Idempotency().ClaimExpired(ctx, tx.DB(), key, userID, hash, expiresAt)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrIdempotencyInProgress
		}
		return nil, nil

	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (uc *appointmentUseCaseImpl) Accept(ctx context.Context, in AcceptInput) (*queries.AppointmentView, error) {
	return uc.transition(ctx, in.AppointmentID, in.Actor.Role.String(), appointment.EventConfirmed,
		func(a *appointment.Appointment, now time.Time) error {
			return a.Accept(in.Actor, now)
		},
		func(ctx context.Context, tx shared.Tx, a *appointment.Appointment, now time.Time) error {
			rel, err := relationship.NewClientRelationship(a.ProfessionalID(), a.OwnerID(), now)
			if err != nil {
				return err
			}
			created, err := tx.Relationships().Ensure(ctx, tx.DB(), rel)
			if err != nil {
				return err
			}
			if created {
				slog.InfoContext(ctx, "client relationship created",
					"professional_id", a.ProfessionalID().String(),
					"owner_id", a.OwnerID().String())
			}
			return nil
		},
	)
}

func (uc *appointmentUseCaseImpl) Cancel(ctx context.Context, in CancelInput) (*queries.AppointmentView, error) {
	return uc.transition(ctx, in.AppointmentID, in.Actor.Role.String(), appointment.EventCancelled,
		func(a *appointment.Appointment, now time.Time) error {
			return a.Cancel(in.Actor, in.Reason, now)
		}, nil)
}

func (uc *appointmentUseCaseImpl) Reschedule(ctx context.Context, in RescheduleInput) (*queries.AppointmentView, error) {
	change := appointment.ScheduleChange{
		MainSlot:         in.MainSlot,
		AlternativeSlots: in.AlternativeSlots,
	}
	return uc.transition(ctx, in.AppointmentID, in.Actor.Role.String(), appointment.EventRescheduled,
		func(a *appointment.Appointment, now time.Time) error {
			return a.Reschedule(in.Actor, change, now)
		}, nil)
}

func (uc *appointmentUseCaseImpl) Complete(ctx context.Context, in CompleteInput) (*queries.AppointmentView, error) {
	return uc.transition(ctx, in.AppointmentID, in.Actor.Role.String(), appointment.EventCompleted,
		func(a *appointment.Appointment, now time.Time) error {
			return a.Complete(in.Actor, in.Report, now)
		}, nil)
}

func (uc *appointmentUseCaseImpl) AttachReport(ctx context.Context, in ReportInput) (*queries.AppointmentView, error) {
	return uc.transition(ctx, in.AppointmentID, in.Actor.Role.String(), appointment.EventReported,
		func(a *appointment.Appointment, now time.Time) error {
			return a.AttachReport(in.Actor, in.Report, now)
		}, nil)
}

type applyFunc func(a *appointment.Appointment, now time.Time) error

type afterFunc func(ctx context.Context, tx shared.Tx, a *appointment.Appointment, now time.Time) error

// transition locks the row, applies the domain change and persists it with a
// status guard. It is not retried: a lost race surfaces as an invalid transition.
func (uc *appointmentUseCaseImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	actorRole string,
	event appointment.Event,
	apply applyFunc,
	after afterFunc,
) (*queries.AppointmentView, error) {
	var prev, next appointment.Status
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindByIDForUpdate(ctx, tx.DB(), id)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return err
		}

		now := uc.clock.Now()
		prev = a.Status()
		if err := apply(a, now); err != nil {
			return err
		}
		next = a.Status()

		if err := tx.Appointments().SaveTransition(ctx, tx.DB(), a, prev); err != nil {
			return err
		}
		if after != nil {
			if err := after(ctx, tx, a, now); err != nil {
				return err
			}
		}
		return enqueueEvent(ctx, tx, event, eventFor(a, actorRole), now)
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "appointment transitioned",
		"appointment_id", id.String(),
		"from", prev.String(),
		"status", next.String(),
		"event", event.String())

	return uc.queries.GetByIDSystem(ctx, id)
}

func requestHash(in CreateAppointmentInput) string {
	data, _ := json.Marshal(struct {
		ProfessionalID   uuid.UUID   `json:"professional_id"`
		AnimalIDs        []uuid.UUID `json:"animal_ids"`
		MainSlot         time.Time   `json:"main_slot"`
		AlternativeSlots []time.Time `json:"alternative_slots"`
		DurationMinutes  int         `json:"duration_minutes"`
		Comment          string      `json:"comment"`
	}{in.ProfessionalID, in.AnimalIDs, in.MainSlot.UTC(), in.AlternativeSlots, in.DurationMinutes, in.Comment})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func idHash(id uuid.UUID) string {
	hash := sha256.Sum256([]byte(id.String()))
	return hex.EncodeToString(hash[:])
}
