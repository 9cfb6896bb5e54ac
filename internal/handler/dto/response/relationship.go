package response

import (
	"ekicare/internal/usecase/commands"
	"ekicare/internal/usecase/queries"
)

type ClientResponse struct {
	OwnerID   string `json:"ownerId"`
	OwnerName string `json:"ownerName"`
	Since     int64  `json:"since"`
}

func FromClientList(items []*queries.ClientView) []*ClientResponse {
	res := make([]*ClientResponse, len(items))
	for i, it := range items {
		res[i] = &ClientResponse{
			OwnerID:   it.OwnerID.String(),
			OwnerName: it.OwnerName,
			Since:     it.Since.Unix(),
		}
	}
	return res
}

type EnsureRelationshipResponse struct {
	ProfessionalID string `json:"professionalId"`
	OwnerID        string `json:"ownerId"`
	Created        bool   `json:"created"`
}

func FromEnsureRelationship(r *commands.EnsureRelationshipResult) *EnsureRelationshipResponse {
	return &EnsureRelationshipResponse{
		ProfessionalID: r.ProfessionalID.String(),
		OwnerID:        r.OwnerID.String(),
		Created:        r.Created,
	}
}
