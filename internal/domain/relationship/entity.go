package relationship

import (
	"time"

	"ekicare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrMissingParty = errs.Mark(errs.New("professional and owner are required"), errs.ErrValidation)

// ClientRelationship records that a professional has served an owner at least
// once. It is keyed by the pair and never mutated after creation.
type ClientRelationship struct {
	professionalID uuid.UUID
	ownerID        uuid.UUID
	createdAt      time.Time
}

func NewClientRelationship(professionalID, ownerID uuid.UUID, now time.Time) (*ClientRelationship, error) {
	if professionalID == uuid.Nil || ownerID == uuid.Nil {
		return nil, ErrMissingParty
	}
	return &ClientRelationship{
		professionalID: professionalID,
		ownerID:        ownerID,
		createdAt:      now.UTC(),
	}, nil
}

func (r *ClientRelationship) ProfessionalID() uuid.UUID { return r.professionalID }
func (r *ClientRelationship) OwnerID() uuid.UUID        { return r.ownerID }
func (r *ClientRelationship) CreatedAt() time.Time      { return r.createdAt }
