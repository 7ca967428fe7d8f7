package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("Valid header", func(t *testing.T) {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
		req.Header.Set("Authorization", "Bearer sess-1.secret")
		rr := httptest.NewRecorder()

		BearerToken(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "sess-1.secret", seen)
	})

	t.Run("Scheme is case insensitive", func(t *testing.T) {
		seen = ""
		req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
		req.Header.Set("Authorization", "bearer abc.def")
		rr := httptest.NewRecorder()

		BearerToken(next).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "abc.def", seen)
	})

	for name, header := range map[string]string{
		"Missing":      "",
		"Basic scheme": "Basic dXNlcjpwYXNz",
		"Empty token":  "Bearer   ",
	} {
		t.Run(name, func(t *testing.T) {
			seen = ""
			req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()

			BearerToken(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			assert.Empty(t, seen)
		})
	}
}

func TestTokenFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", TokenFromContext(req.Context()))
}

func TestStructuredLogger(t *testing.T) {
	t.Run("Success is logged at info", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		h := NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("ok"))
		}))

		req := httptest.NewRequest(http.MethodPost, "/subjects/s1/transactions", bytes.NewReader(nil))
		h.ServeHTTP(httptest.NewRecorder(), req)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, log.InfoLevel, entry.Level)
		assert.Equal(t, "request completed", entry.Message)
		assert.Equal(t, http.StatusCreated, entry.Data["status"])
		assert.Equal(t, 2, entry.Data["bytes"])
		assert.Equal(t, "/subjects/s1/transactions", entry.Data["path"])
	})

	t.Run("Server errors are logged at error", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		h := NewStructuredLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalog", nil))

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, log.ErrorLevel, entry.Level)
		assert.Equal(t, http.StatusBadGateway, entry.Data["status"])
	})
}
