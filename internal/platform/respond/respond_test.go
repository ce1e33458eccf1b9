package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/alloyforge/internal/platform/apperr"
	"github.com/taibuivan/alloyforge/internal/platform/respond"
	"github.com/taibuivan/alloyforge/pkg/pagination"
)

func TestError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not_found", apperr.NotFound("Material"), http.StatusNotFound, apperr.CodeNotFound},
		{"wrapped_conflict", errors.Join(errors.New("upsert"), apperr.Conflict("dup")), http.StatusConflict, apperr.CodeConflict},
		{"plain_error", errors.New("boom"), http.StatusInternalServerError, apperr.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respond.Error(recorder, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			var body respond.ErrorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, tt.status, recorder.Code)
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, body.Error, "boom")
		})
	}
}

func TestPaginated(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Paginated(recorder, []string{"Steel"}, pagination.NewMeta(1, 20, 1))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":["Steel"],"meta":{"page":1,"limit":20,"total":1,"total_pages":1}}`, recorder.Body.String())
}

func TestStatus(t *testing.T) {
	recorder := httptest.NewRecorder()
	respond.Status(recorder, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})

	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
	assert.JSONEq(t, `{"data":{"status":"degraded"}}`, recorder.Body.String())
}
