package pgq

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// The pair key makes concurrent inserts race-free: exactly one caller gets
// the row back, the others get pgx.ErrNoRows.
const insertClientRelationship = `-- name: InsertClientRelationship :one
INSERT INTO client_relationships (professional_id, owner_id, created_at)
VALUES ($1, $2, $3)
ON CONFLICT (professional_id, owner_id) DO NOTHING
RETURNING professional_id, owner_id, created_at
`

type InsertClientRelationshipParams struct {
	ProfessionalID uuid.UUID
	OwnerID        uuid.UUID
	CreatedAt      pgtype.Timestamptz
}

func (q *Queries) InsertClientRelationship(ctx context.Context, db DBTX, arg InsertClientRelationshipParams) (ClientRelationships, error) {
	row := db.QueryRow(ctx, insertClientRelationship, arg.ProfessionalID, arg.OwnerID, arg.CreatedAt)
	var i ClientRelationships
	err := row.Scan(&i.ProfessionalID, &i.OwnerID, &i.CreatedAt)
	return i, err
}

const listClientsByProfessional = `-- name: ListClientsByProfessional :many
SELECT r.owner_id, o.display_name, r.created_at
FROM client_relationships r
JOIN owners o ON o.id = r.owner_id
WHERE r.professional_id = $1
ORDER BY r.created_at DESC, r.owner_id
`

type ListClientsByProfessionalRow struct {
	OwnerID   uuid.UUID
	OwnerName string
	CreatedAt pgtype.Timestamptz
}

func (q *Queries) ListClientsByProfessional(ctx context.Context, db DBTX, professionalID uuid.UUID) ([]ListClientsByProfessionalRow, error) {
	rows, err := db.Query(ctx, listClientsByProfessional, professionalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListClientsByProfessionalRow
	for rows.Next() {
		var i ListClientsByProfessionalRow
		if err := rows.Scan(&i.OwnerID, &i.OwnerName, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
