//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestProfessional(t *testing.T, db DBLike, name, subscriptionStatus string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO professionals (id, display_name, subscription_status) VALUES ($1, $2, $3)",
		id, name, subscriptionStatus)
	require.NoError(t, err)
	return id
}

// CreateTestOwner inserts an owner with one animal per name and returns both ids.
func CreateTestOwner(t *testing.T, db DBLike, name string, animals ...string) (uuid.UUID, []uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	ownerID := uuid.New()
	_, err := db.Exec(ctx, "INSERT INTO owners (id, display_name) VALUES ($1, $2)", ownerID, name)
	require.NoError(t, err)

	animalIDs := make([]uuid.UUID, 0, len(animals))
	for _, a := range animals {
		id := uuid.New()
		_, err := db.Exec(ctx, "INSERT INTO animals (id, owner_id, name) VALUES ($1, $2, $3)", id, ownerID, a)
		require.NoError(t, err)
		animalIDs = append(animalIDs, id)
	}
	return ownerID, animalIDs
}

// BackdateAppointment moves the main slot so the completion sweep picks the row up.
func BackdateAppointment(t *testing.T, db DBLike, id uuid.UUID, mainSlot time.Time) {
	t.Helper()

	tag, err := db.Exec(context.Background(),
		"UPDATE appointments SET main_slot = $2, alternative_slots = '{}' WHERE id = $1", id, mainSlot.UTC())
	require.NoError(t, err)
	require.Equal(t, int64(1), tag.RowsAffected())
}

func AppointmentStatus(t *testing.T, db DBLike, id uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM appointments WHERE id = $1", id).Scan(&status)
	require.NoError(t, err)
	return status
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountJobs(t *testing.T, db DBLike, topic string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM notification_jobs WHERE topic = $1", topic).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
