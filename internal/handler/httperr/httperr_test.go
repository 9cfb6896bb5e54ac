//go:build unit

package httperr_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ekicare/internal/handler/httperr"
	"ekicare/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", errs.Mark(errs.New("bad"), errs.ErrValidation), http.StatusBadRequest},
		{"temporal", errs.Mark(errs.New("bad date"), errs.ErrInvalidTemporalInput), http.StatusBadRequest},
		{"transition", errs.Mark(errs.New("illegal"), errs.ErrInvalidTransition), http.StatusConflict},
		{"not found", errs.Mark(errs.New("missing"), errs.ErrNotFound), http.StatusNotFound},
		{"forbidden", errs.Mark(errs.New("nope"), errs.ErrForbidden), http.StatusForbidden},
		{"conflict", errs.Mark(errs.New("dup"), errs.ErrConflict), http.StatusConflict},
		{"transient", errs.Mark(errs.New("later"), errs.ErrTransient), http.StatusServiceUnavailable},
		{"wrapped keeps kind", errs.Wrap(errs.Mark(errs.New("missing"), errs.ErrNotFound), "load"), http.StatusNotFound},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httperr.StatusFor(tt.err))
		})
	}
}

func TestAbortWithKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(err error) (int, httperr.Response) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		httperr.AbortWithKind(c, err)

		var resp httperr.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return w.Code, resp
	}

	t.Run("client kinds expose the message", func(t *testing.T) {
		code, resp := run(errs.Mark(errs.New("slot is in the past"), errs.ErrValidation))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "slot is in the past", resp.Error.Message)
		assert.Equal(t, "validation_error", resp.Error.Kind)
	})

	t.Run("unparseable temporal input keeps its own kind", func(t *testing.T) {
		code, resp := run(errs.Mark(errs.New("parse date \"10/03/2025\""), errs.ErrInvalidTemporalInput))
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "invalid_temporal_input", resp.Error.Kind)
	})

	t.Run("transient hides the cause", func(t *testing.T) {
		code, resp := run(errs.Mark(errs.New("dial tcp 10.0.0.3:5432"), errs.ErrTransient))
		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "Service temporarily unavailable", resp.Error.Message)
	})

	t.Run("unknown errors are internal", func(t *testing.T) {
		code, resp := run(errors.New("pq: relation missing"))
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, "Internal error", resp.Error.Message)
		assert.Empty(t, resp.Error.Kind)
	})
}
