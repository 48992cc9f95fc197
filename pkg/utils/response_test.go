package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		payload      any
		expectedBody string
	}{
		{
			name:         "Writes payload",
			code:         http.StatusOK,
			payload:      Response{Message: "ok"},
			expectedBody: `{"message":"ok"}`,
		},
		{
			name:    "Nil payload writes header only",
			code:    http.StatusOK,
			payload: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			RespondWithJSON(w, tt.code, tt.payload)

			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			} else {
				assert.Empty(t, w.Body.String())
			}
		})
	}
}

func TestRespondWithError(t *testing.T) {
	t.Run("Writes error message", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondWithError(w, http.StatusBadRequest, "invalid request body")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body Response
		_ = json.NewDecoder(w.Body).Decode(&body)
		assert.Equal(t, "invalid request body", body.Message)
	})

	t.Run("No content writes header only", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondWithError(w, http.StatusNoContent, "nothing here")

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})
}
