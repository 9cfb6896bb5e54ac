//go:build unit

package pgconv_test

import (
	"errors"
	"testing"
	"time"

	"ekicare/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
)

func TestUUIDs(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	pg := pgconv.UUIDsToPgtype(ids)
	pg = append(pg, pgtype.UUID{Valid: false})

	assert.Equal(t, ids, pgconv.UUIDsFromPgtype(pg))
	assert.Nil(t, pgconv.UUIDPtrFromPgtype(pgtype.UUID{}))
}

func TestTimes_AreUTC(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	in := time.Date(2025, 3, 10, 10, 0, 0, 0, paris)

	pg := pgconv.TimeToPgtype(in)
	assert.Equal(t, time.UTC, pg.Time.Location())
	assert.Equal(t, 9, pg.Time.Hour())

	assert.Equal(t, []time.Time{in.UTC()}, pgconv.TimesToUTC([]time.Time{in}))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, pgconv.IsNoRows(pgx.ErrNoRows))
	assert.False(t, pgconv.IsNoRows(errors.New("other")))
}
