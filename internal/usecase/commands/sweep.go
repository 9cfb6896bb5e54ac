package commands

import (
	"context"
	"log/slog"
	"time"

	"ekicare/internal/domain/appointment"
	"ekicare/internal/pkg/clock"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

const sweepActor = "system"

type SweepPolicy struct {
	IncludePending bool
	MaxRetries     int
}

type SweepResult struct {
	Completed int
	IDs       []uuid.UUID
	RanAt     time.Time
}

type SweepCommands interface {
	// RunCompletionSweep moves every live appointment whose main slot has
	// passed to completed. Running it twice in a row completes nothing new.
	RunCompletionSweep(ctx context.Context) (*SweepResult, error)
}

type sweepUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy SweepPolicy
}

func NewSweepUseCase(uow shared.UnitOfWork, clk clock.Clock, policy SweepPolicy) SweepCommands {
	return &sweepUseCaseImpl{uow: uow, clock: clk, policy: policy}
}

func (uc *sweepUseCaseImpl) RunCompletionSweep(ctx context.Context) (*SweepResult, error) {
	eligible := appointment.SweepEligible(uc.policy.IncludePending)

	var result *SweepResult
	err := uc.uow.WithinRetry(ctx, uc.policy.MaxRetries, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		rows, err := tx.Appointments().CompleteElapsed(ctx, tx.DB(), eligible, now)
		if err != nil {
			return err
		}

		ids := make([]uuid.UUID, 0, len(rows))
		for _, row := range rows {
			payload := appointmentEvent{
				AppointmentID:  row.ID,
				ProfessionalID: row.ProfessionalID,
				OwnerID:        row.OwnerID,
				Status:         appointment.StatusCompleted.String(),
				MainSlot:       row.MainSlot,
				Actor:          sweepActor,
			}
			if err := enqueueEvent(ctx, tx, appointment.EventCompleted, payload, now); err != nil {
				return err
			}
			ids = append(ids, row.ID)
		}
		result = &SweepResult{Completed: len(ids), IDs: ids, RanAt: now}
		return nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "completion sweep failed", "error", err.Error())
		return nil, err
	}

	slog.InfoContext(ctx, "completion sweep finished",
		"completed", result.Completed,
		"include_pending", uc.policy.IncludePending)
	return result, nil
}
