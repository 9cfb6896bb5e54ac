package repository

import (
	"context"

	"ekicare/internal/domain/relationship"
	"ekicare/internal/infra"
	"ekicare/internal/infra/pgq"
	"ekicare/internal/pkg/pgconv"
)

type RelationshipWriteQueries interface {
	InsertClientRelationship(ctx context.Context, db pgq.DBTX, arg pgq.InsertClientRelationshipParams) (pgq.ClientRelationships, error)
}

type RelationshipRepository struct {
	queries RelationshipWriteQueries
	db      pgq.DBTX
}

func NewRelationshipRepository(queries RelationshipWriteQueries, db pgq.DBTX) *RelationshipRepository {
	return &RelationshipRepository{
		queries: queries,
		db:      db,
	}
}

// Ensure inserts the pair if absent. No row back means it already existed.
func (r *RelationshipRepository) Ensure(ctx context.Context, tx pgq.DBTX, rel *relationship.ClientRelationship) (bool, error) {
	_, err := r.queries.InsertClientRelationship(ctx, tx, pgq.InsertClientRelationshipParams{
		ProfessionalID: rel.ProfessionalID(),
		OwnerID:        rel.OwnerID(),
		CreatedAt:      pgconv.TimeToPgtype(rel.CreatedAt()),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return false, nil
		}
		return false, infra.WrapRepoErr("failed to ensure client relationship", err)
	}
	return true, nil
}
