package api

import (
	"net/http"

	reqdto "ekicare/internal/handler/dto/request"
	resdto "ekicare/internal/handler/dto/response"
	"ekicare/internal/handler/httperr"
	"ekicare/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// MaintenanceHandler serves endpoints for schedulers and operators, not end users.
type MaintenanceHandler struct {
	sweep         commands.SweepCommands
	relationships commands.RelationshipCommands
}

func NewMaintenanceHandler(sweep commands.SweepCommands, relationships commands.RelationshipCommands) *MaintenanceHandler {
	return &MaintenanceHandler{sweep: sweep, relationships: relationships}
}

// @Summary Run completion sweep
// @Description Mark every elapsed live appointment as completed
// @Tags internal
// @Produce json
// @Param X-Internal-Token header string true "Internal token"
// @Success 200 {object} resdto.SweepResponse
// @Failure 401 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Router /internal/sweeps/completion [post]
func (h *MaintenanceHandler) RunCompletionSweep(c *gin.Context) {
	result, err := h.sweep.RunCompletionSweep(c.Request.Context())
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}

// @Summary Ensure client relationship
// @Description Record an owner as a client of a professional. Idempotent.
// @Tags internal
// @Accept json
// @Produce json
// @Param X-Internal-Token header string true "Internal token"
// @Param request body reqdto.EnsureRelationshipRequest true "Pair"
// @Success 200 {object} resdto.EnsureRelationshipResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /internal/relationships [post]
func (h *MaintenanceHandler) EnsureRelationship(c *gin.Context) {
	var req reqdto.EnsureRelationshipRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.relationships.Ensure(c.Request.Context(), req.ProfessionalID, req.OwnerID)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromEnsureRelationship(result))
}
