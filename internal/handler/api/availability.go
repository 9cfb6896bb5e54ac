package api

import (
	"net/http"

	resdto "ekicare/internal/handler/dto/response"
	"ekicare/internal/handler/httperr"
	"ekicare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Booked slots
// @Description Times already taken by live appointments of a professional on a UTC day. Advisory only.
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Param id path string true "Professional ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} resdto.BookedSlotsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /professionals/{id}/booked-slots [get]
func (h *AvailabilityHandler) BookedSlots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.BookedSlots(c.Request.Context(), id, c.Query("date"))
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookedSlots(view))
}
