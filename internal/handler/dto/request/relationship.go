package request

import "github.com/google/uuid"

type EnsureRelationshipRequest struct {
	ProfessionalID uuid.UUID `json:"professionalId" binding:"required"`
	OwnerID        uuid.UUID `json:"ownerId" binding:"required"`
}
