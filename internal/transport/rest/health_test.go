package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_HealthHandler(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	testCases := []struct {
		name           string
		checks         map[string]HealthCheck
		expectedCode   int
		expectedStatus string
		expectedChecks map[string]string
	}{
		{
			name:           "all up",
			checks:         map[string]HealthCheck{"store": up, "nats": up},
			expectedCode:   http.StatusOK,
			expectedStatus: "ok",
			expectedChecks: map[string]string{"store": "up", "nats": "up"},
		},
		{
			name:           "one down",
			checks:         map[string]HealthCheck{"store": down, "nats": up},
			expectedCode:   http.StatusServiceUnavailable,
			expectedStatus: "unavailable",
			expectedChecks: map[string]string{"store": "down", "nats": "up"},
		},
		{
			name:           "no checks",
			checks:         map[string]HealthCheck{},
			expectedCode:   http.StatusOK,
			expectedStatus: "ok",
			expectedChecks: map[string]string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := NewHealthHandler(tc.checks, time.Second, discardLogger())
			rr := httptest.NewRecorder()

			// when
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			// then
			assert.Equal(t, tc.expectedCode, rr.Code)
			var body struct {
				Status string            `json:"status"`
				Checks map[string]string `json:"checks"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, tc.expectedStatus, body.Status)
			assert.Equal(t, tc.expectedChecks, body.Checks)
		})
	}
}
