package readstore

import (
	"context"

	"ekicare/internal/infra"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/pgconv"
	"ekicare/internal/usecase/shared"

	"github.com/google/uuid"
)

// Subscription states that allow a professional to receive bookings.
var activeSubscriptionStatuses = map[string]bool{
	"active":   true,
	"trialing": true,
}

type DirectoryReadQueries interface {
	GetProfessional(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Professionals, error)
	GetOwner(ctx context.Context, db pgq.DBTX, id uuid.UUID) (pgq.Owners, error)
	ListAnimalIDsByOwner(ctx context.Context, db pgq.DBTX, ownerID uuid.UUID) ([]uuid.UUID, error)
}

// DirectoryReadStore reads professionals, owners and animals. Those tables
// are maintained outside this service.
type DirectoryReadStore struct {
	queries DirectoryReadQueries
	db      pgq.DBTX
}

func NewDirectoryReadStore(queries DirectoryReadQueries, db pgq.DBTX) *DirectoryReadStore {
	return &DirectoryReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *DirectoryReadStore) ProfessionalByID(ctx context.Context, id uuid.UUID) (*shared.ProfessionalSnapshot, error) {
	row, err := r.queries.GetProfessional(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("professional not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get professional", err)
	}
	return &shared.ProfessionalSnapshot{
		ID:                 row.ID,
		DisplayName:        row.DisplayName,
		SubscriptionActive: activeSubscriptionStatuses[row.SubscriptionStatus],
	}, nil
}

func (r *DirectoryReadStore) OwnerByID(ctx context.Context, id uuid.UUID) (*shared.OwnerSnapshot, error) {
	row, err := r.queries.GetOwner(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("owner not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get owner", err)
	}
	animals, err := r.queries.ListAnimalIDsByOwner(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list owner animals", err)
	}
	return &shared.OwnerSnapshot{
		ID:          row.ID,
		DisplayName: row.DisplayName,
		AnimalIDs:   animals,
	}, nil
}
