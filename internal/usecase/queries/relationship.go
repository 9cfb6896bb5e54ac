package queries

import (
	"context"
	"time"

	"ekicare/internal/domain/user"

	"github.com/google/uuid"
)

type ClientView struct {
	OwnerID   uuid.UUID
	OwnerName string
	Since     time.Time
}

type RelationshipReadStore interface {
	ListClients(ctx context.Context, professionalID uuid.UUID) ([]*ClientView, error)
}

type RelationshipQueries interface {
	ListClients(ctx context.Context, actor user.Actor) ([]*ClientView, error)
}

type relationshipQueriesImpl struct {
	repo RelationshipReadStore
}

func NewRelationshipQueries(repo RelationshipReadStore) RelationshipQueries {
	return &relationshipQueriesImpl{repo: repo}
}

func (q *relationshipQueriesImpl) ListClients(ctx context.Context, actor user.Actor) ([]*ClientView, error) {
	if !actor.IsPro() {
		return nil, ErrProfessionalOnly
	}
	return q.repo.ListClients(ctx, actor.ID)
}
