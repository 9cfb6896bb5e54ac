//go:build unit

package relationship_test

import (
	"testing"
	"time"

	"ekicare/internal/domain/relationship"
	"ekicare/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientRelationship(t *testing.T) {
	pro, owner := uuid.New(), uuid.New()
	now := time.Date(2025, 3, 10, 11, 0, 0, 0, time.FixedZone("CET", 3600))

	r, err := relationship.NewClientRelationship(pro, owner, now)
	require.NoError(t, err)
	assert.Equal(t, pro, r.ProfessionalID())
	assert.Equal(t, owner, r.OwnerID())
	assert.Equal(t, time.UTC, r.CreatedAt().Location())

	_, err = relationship.NewClientRelationship(uuid.Nil, owner, now)
	assert.True(t, errs.Is(err, errs.ErrValidation))
	_, err = relationship.NewClientRelationship(pro, uuid.Nil, now)
	assert.ErrorIs(t, err, relationship.ErrMissingParty)
}
