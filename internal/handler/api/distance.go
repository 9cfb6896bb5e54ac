package api

import (
	"net/http"

	resdto "ekicare/internal/handler/dto/response"
	"ekicare/internal/handler/httperr"
	"ekicare/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DistanceHandler struct {
	q queries.DistanceQueries
}

func NewDistanceHandler(q queries.DistanceQueries) *DistanceHandler {
	return &DistanceHandler{q: q}
}

// @Summary Travel distance
// @Description Driving distance and duration between two addresses
// @Tags distance
// @Produce json
// @Security BearerAuth
// @Param from query string true "Origin address"
// @Param to query string true "Destination address"
// @Success 200 {object} resdto.DistanceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /distance [get]
func (h *DistanceHandler) Get(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")
	if from == "" || to == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingAddress, "from and to are required", nil)
		return
	}

	view, err := h.q.Between(c.Request.Context(), from, to)
	if err != nil {
		httperr.AbortWithKind(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDistanceView(view))
}
