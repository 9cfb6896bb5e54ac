package api

import (
	"net/http"

	resdto "ekicare/internal/handler/dto/response"
	"ekicare/internal/handler/httperr"
	"ekicare/internal/handler/middleware"
	"ekicare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type RelationshipHandler struct {
	q queries.RelationshipQueries
}

func NewRelationshipHandler(q queries.RelationshipQueries) *RelationshipHandler {
	return &RelationshipHandler{q: q}
}

// @Summary My clients
// @Description Owners who have had at least one appointment confirmed by the calling professional
// @Tags relationships
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ClientResponse
// @Failure 403 {object} httperr.Response
// @Router /professionals/me/clients [get]
func (h *RelationshipHandler) ListClients(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "Unauthorized", nil)
		return
	}

	clients, err := h.q.ListClients(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromClientList(clients))
}
