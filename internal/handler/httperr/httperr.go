package httperr

import (
	"log/slog"
	"net/http"

	"ekicare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
		Kind    string `json:"kind,omitempty"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type kindMapping struct {
	status int
	name   string
}

var kinds = map[error]kindMapping{
	errs.ErrValidation:           {http.StatusBadRequest, "validation_error"},
	errs.ErrInvalidTransition:    {http.StatusConflict, "invalid_transition"},
	errs.ErrInvalidTemporalInput: {http.StatusBadRequest, "invalid_temporal_input"},
	errs.ErrNotFound:             {http.StatusNotFound, "not_found"},
	errs.ErrForbidden:            {http.StatusForbidden, "forbidden"},
	errs.ErrConflict:             {http.StatusConflict, "conflict"},
	errs.ErrTransient:            {http.StatusServiceUnavailable, "transient"},
}

// StatusFor maps a failure kind to its HTTP status; unmarked errors are 500.
func StatusFor(err error) int {
	if m, ok := kinds[errs.Kind(err)]; ok {
		return m.status
	}
	return http.StatusInternalServerError
}

// AbortWithKind answers with the status of err's failure kind. Client-side
// kinds expose the error text; everything else gets a generic message.
func AbortWithKind(c *gin.Context, err error) {
	m, ok := kinds[errs.Kind(err)]
	if !ok {
		slog.Error("unclassified error", "error", err.Error(), "path", c.FullPath(), "stack", errs.ExtractStackLines(err, 8))
		AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	msg := err.Error()
	if m.status == http.StatusServiceUnavailable {
		msg = "Service temporarily unavailable"
	}

	resp := Response{Status: m.status}
	resp.Error.Message = msg
	resp.Error.Kind = m.name

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(m.status, resp)
}
