package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/points"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cases := map[string]struct {
		err  error
		want int
	}{
		"Unauthenticated": {models.ErrUnauthenticated, http.StatusUnauthorized},
		"Forbidden":       {fmt.Errorf("%w: no", models.ErrForbidden), http.StatusForbidden},
		"Invalid amount":  {models.ErrInvalidAmount, http.StatusBadRequest},
		"Invalid sign":    {models.ErrInvalidSign, http.StatusBadRequest},
		"Ledger write":    {fmt.Errorf("%w: timeout", models.ErrLedgerWriteFailed), http.StatusBadGateway},
		"Not found":       {models.ErrNotFound, http.StatusNotFound},
		"Other":           {errors.New("boom"), http.StatusInternalServerError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, Status(tc.err))
		})
	}
}

func TestError(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, "read balance", models.ErrUnauthenticated)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rr.Body.String(), "Failed to read balance: unauthenticated")
}

func TestScoped(t *testing.T) {
	rr := httptest.NewRecorder()
	Scoped(rr, points.Scope{Subject: "s1"})
	assert.Empty(t, rr.Header().Get(api.ScopeHeader))

	Scoped(rr, points.Scope{Subject: "s1", Degraded: true})
	assert.Equal(t, "self", rr.Header().Get(api.ScopeHeader))
}

func TestDecode(t *testing.T) {
	t.Run("Valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":5,"sign":"positive","description":"helped"}`))
		rr := httptest.NewRecorder()

		var body api.NewTransaction
		ok := Decode(rr, req, &body)

		assert.True(t, ok)
		assert.Equal(t, int64(5), body.Amount)
		assert.Equal(t, api.Positive, body.Sign)
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":`))
		rr := httptest.NewRecorder()

		var body api.NewTransaction
		assert.False(t, Decode(rr, req, &body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid request body")
	})

	t.Run("Validation errors use json names", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":5,"sign":"sideways","category_id":"  "}`))
		rr := httptest.NewRecorder()

		var body api.NewTransaction
		assert.False(t, Decode(rr, req, &body))
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		var verr api.ValidationError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &verr))
		assert.Contains(t, verr.Fields, "sign")
		assert.Equal(t, "this field cannot be blank", verr.Fields["category_id"])
	})
}
