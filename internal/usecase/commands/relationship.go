package commands

import (
	"context"
	"log/slog"

	"ekicare/internal/domain/relationship"
	"ekicare/internal/infra"
	"ekicare/internal/pkg/clock"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

type EnsureRelationshipResult struct {
	ProfessionalID uuid.UUID
	OwnerID        uuid.UUID
	Created        bool
}

type RelationshipCommands interface {
	// Ensure records that the owner is a client of the professional. It is
	// safe to call repeatedly and concurrently for the same pair.
	Ensure(ctx context.Context, professionalID, ownerID uuid.UUID) (*EnsureRelationshipResult, error)
}

type relationshipUseCaseImpl struct {
	uow        shared.UnitOfWork
	clock      clock.Clock
	maxRetries int
}

func NewRelationshipUseCase(uow shared.UnitOfWork, clk clock.Clock, maxRetries int) RelationshipCommands {
	return &relationshipUseCaseImpl{uow: uow, clock: clk, maxRetries: maxRetries}
}

func (uc *relationshipUseCaseImpl) Ensure(ctx context.Context, professionalID, ownerID uuid.UUID) (*EnsureRelationshipResult, error) {
	rel, err := relationship.NewClientRelationship(professionalID, ownerID, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	var created bool
	err = uc.uow.WithinRetry(ctx, uc.maxRetries, func(ctx context.Context, tx shared.Tx) error {
		var terr error
		created, terr = tx.Relationships().Ensure(ctx, tx.DB(), rel)
		return terr
	})
	if err != nil {
		if infra.IsKind(err, infra.KindForeignKeyViolated) {
			return nil, ErrPartyNotFound
		}
		return nil, err
	}

	slog.InfoContext(ctx, "client relationship ensured",
		"professional_id", professionalID.String(),
		"owner_id", ownerID.String(),
		"created", created)
	return &EnsureRelationshipResult{ProfessionalID: professionalID, OwnerID: ownerID, Created: created}, nil
}
