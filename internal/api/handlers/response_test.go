package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func TestRespondDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"invalid argument", fmt.Errorf("%w: x: bad date", domain.ErrInvalidArgument), http.StatusBadRequest, "invalid argument: x: bad date"},
		{"not found", fmt.Errorf("%w: x: missing", domain.ErrNotFound), http.StatusNotFound, "not found: x: missing"},
		{"permission denied", fmt.Errorf("%w: x: nope", domain.ErrPermissionDenied), http.StatusForbidden, "permission denied: x: nope"},
		{"invalid state", fmt.Errorf("%w: x: terminal", domain.ErrInvalidState), http.StatusConflict, "invalid state: x: terminal"},
		{"conflict", fmt.Errorf("%w: x: taken", domain.ErrConflict), http.StatusConflict, ""},
		{"internal hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, msgInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondDomainError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body.Error)
			}
			assert.NotContains(t, body.Error, "pq:")
		})
	}
}
