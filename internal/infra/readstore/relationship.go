package readstore

import (
	"context"

	"ekicare/internal/infra"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/pgconv"
	"ekicare/internal/usecase/queries"

	"github.com/google/uuid"
)

type RelationshipReadQueries interface {
	ListClientsByProfessional(ctx context.Context, db pgq.DBTX, professionalID uuid.UUID) ([]pgq.ListClientsByProfessionalRow, error)
}

type RelationshipReadStore struct {
	queries RelationshipReadQueries
	db      pgq.DBTX
}

func NewRelationshipReadStore(queries RelationshipReadQueries, db pgq.DBTX) *RelationshipReadStore {
	return &RelationshipReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RelationshipReadStore) ListClients(ctx context.Context, professionalID uuid.UUID) ([]*queries.ClientView, error) {
	rows, err := r.queries.ListClientsByProfessional(ctx, r.db, professionalID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list clients", err)
	}
	out := make([]*queries.ClientView, len(rows))
	for i, row := range rows {
		out[i] = &queries.ClientView{
			OwnerID:   row.OwnerID,
			OwnerName: row.OwnerName,
			Since:     pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return out, nil
}
