package pgq

import (
	"context"

	"github.com/google/uuid"
)

const getProfessional = `-- name: GetProfessional :one
SELECT id, display_name, subscription_status, created_at
FROM professionals
WHERE id = $1
`

func (q *Queries) GetProfessional(ctx context.Context, db DBTX, id uuid.UUID) (Professionals, error) {
	row := db.QueryRow(ctx, getProfessional, id)
	var i Professionals
	err := row.Scan(&i.ID, &i.DisplayName, &i.SubscriptionStatus, &i.CreatedAt)
	return i, err
}

const getOwner = `-- name: GetOwner :one
SELECT id, display_name, created_at
FROM owners
WHERE id = $1
`

func (q *Queries) GetOwner(ctx context.Context, db DBTX, id uuid.UUID) (Owners, error) {
	row := db.QueryRow(ctx, getOwner, id)
	var i Owners
	err := row.Scan(&i.ID, &i.DisplayName, &i.CreatedAt)
	return i, err
}

const listAnimalIDsByOwner = `-- name: ListAnimalIDsByOwner :many
SELECT id
FROM animals
WHERE owner_id = $1
ORDER BY created_at, id
`

func (q *Queries) ListAnimalIDsByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := db.Query(ctx, listAnimalIDsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		items = append(items, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
