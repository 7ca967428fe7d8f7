package balances

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/middleware"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/points"
	"github.com/chris/behavior-points/pkg/points/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const token = "sess-1.secret"

func newRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithToken(req.Context(), token))
}

func TestGetBalance(t *testing.T) {
	record := models.BalanceRecord{SubjectId: "student-1", Points: 30, TransactionCount: 2, UpdatedAt: time.Now().UTC()}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("ReadBalance", mock.Anything, token, "student-1").
			Return(&points.BalanceView{Scope: points.Scope{Subject: "student-1"}, Balance: record}, nil)
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.GetBalance(rr, newRequest(http.MethodGet, "/subjects/student-1/balance"), "student-1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Balance
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(30), got.Points)
		assert.Equal(t, int64(2), got.TransactionCount)
		mockService.AssertExpectations(t)
	})

	t.Run("Degraded", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("ReadBalance", mock.Anything, token, "student-2").
			Return(&points.BalanceView{Scope: points.Scope{Subject: "student-1", Degraded: true}, Balance: record}, nil)
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.GetBalance(rr, newRequest(http.MethodGet, "/subjects/student-2/balance"), "student-2")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "self", rr.Header().Get(api.ScopeHeader))
		var got api.Balance
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "student-1", got.SubjectId)
	})

	t.Run("No cached balance", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("ReadBalance", mock.Anything, token, "student-1").Return(nil, models.ErrNotFound)
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.GetBalance(rr, newRequest(http.MethodGet, "/subjects/student-1/balance"), "student-1")

		// Assert
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestSyncBalance(t *testing.T) {
	record := models.BalanceRecord{SubjectId: "student-1", Points: 30, TransactionCount: 2}

	t.Run("Forced", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("Sync", mock.Anything, token, "student-1", true).
			Return(&points.SyncResult{Scope: points.Scope{Subject: "student-1"}, Balance: record}, nil)
		h := NewBalancesHandler(mockService)
		force := true
		rr := httptest.NewRecorder()

		// Act
		h.SyncBalance(rr, newRequest(http.MethodPost, "/subjects/student-1/balance/sync?force=true"), "student-1", api.SyncBalanceParams{Force: &force})

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.SyncResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(30), got.Balance.Points)
		assert.False(t, got.CacheStale)
		mockService.AssertExpectations(t)
	})

	t.Run("Default is not forced", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("Sync", mock.Anything, token, "student-1", false).
			Return(&points.SyncResult{Scope: points.Scope{Subject: "student-1"}, Balance: record, CacheStale: true, Warnings: []string{"balance cache sync failed"}}, nil)
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.SyncBalance(rr, newRequest(http.MethodPost, "/subjects/student-1/balance/sync"), "student-1", api.SyncBalanceParams{})

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.SyncResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.CacheStale)
		assert.Len(t, got.Warnings, 1)
		mockService.AssertExpectations(t)
	})

	t.Run("Forbidden", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("Sync", mock.Anything, token, "student-1", false).Return(nil, fmt.Errorf("%w: no", models.ErrForbidden))
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.SyncBalance(rr, newRequest(http.MethodPost, "/subjects/student-1/balance/sync"), "student-1", api.SyncBalanceParams{})

		// Assert
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}

func TestGetInspection(t *testing.T) {
	t.Run("Drift is reported", func(t *testing.T) {
		// Arrange
		cached, drift, count := int64(999), int64(969), int64(2)
		at := time.Now().UTC()
		mockService := new(mocks.Service)
		mockService.On("Inspect", mock.Anything, token, "student-1").Return(&points.Inspection{
			Scope:        points.Scope{Subject: "student-1"},
			CachedPoints: &cached,
			CachedAt:     &at,
			CachedCount:  &count,
			LedgerPoints: 30,
			Drift:        &drift,
			Transactions: []models.PointsTransaction{
				{Id: "t1", SubjectId: "student-1", Amount: 50, Sign: models.POSITIVE},
				{Id: "t2", SubjectId: "student-1", Amount: 20, Sign: models.NEGATIVE},
			},
		}, nil)
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.GetInspection(rr, newRequest(http.MethodGet, "/subjects/student-1/inspection"), "student-1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Inspection
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.NotNil(t, got.CachedPoints)
		require.NotNil(t, got.Drift)
		assert.Equal(t, int64(999), *got.CachedPoints)
		assert.Equal(t, int64(30), got.LedgerPoints)
		assert.Equal(t, int64(969), *got.Drift)
		assert.Len(t, got.Transactions, 2)
		mockService.AssertExpectations(t)
	})

	t.Run("No cache omits cached fields", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("Inspect", mock.Anything, token, "student-1").Return(&points.Inspection{
			Scope:        points.Scope{Subject: "student-1"},
			LedgerPoints: 0,
		}, nil)
		h := NewBalancesHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.GetInspection(rr, newRequest(http.MethodGet, "/subjects/student-1/inspection"), "student-1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "cached_points")
		assert.NotContains(t, rr.Body.String(), "drift")
		assert.Contains(t, rr.Body.String(), `"transactions":[]`)
	})
}
