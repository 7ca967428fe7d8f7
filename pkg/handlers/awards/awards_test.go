package awards

import (
	"encoding/json"
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

func TestEvaluateAwards(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("EvaluateAwards", mock.Anything, token, "student-1").Return(&points.EvaluateResult{
			Scope:   points.Scope{Subject: "student-1"},
			Balance: models.BalanceRecord{SubjectId: "student-1", Points: 60, TransactionCount: 3},
			Awards: []models.AwardRecord{
				{Id: "a1", SubjectId: "student-1", CatalogItemId: "bronze", Kind: models.BADGE, AwardedAt: time.Now()},
			},
		}, nil)
		h := NewAwardsHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.EvaluateAwards(rr, newRequest(http.MethodPost, "/subjects/student-1/awards/evaluate"), "student-1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.EvaluateResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, int64(60), got.Balance.Points)
		require.Len(t, got.Awards, 1)
		assert.Equal(t, "bronze", got.Awards[0].CatalogItemId)
		assert.Equal(t, api.Badge, got.Awards[0].Kind)
		mockService.AssertExpectations(t)
	})

	t.Run("Notification failure is a warning", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("EvaluateAwards", mock.Anything, token, "student-1").Return(&points.EvaluateResult{
			Scope:    points.Scope{Subject: "student-1"},
			Balance:  models.BalanceRecord{SubjectId: "student-1", Points: 60},
			Awards:   []models.AwardRecord{{Id: "a1", SubjectId: "student-1", CatalogItemId: "bronze", Kind: models.BADGE}},
			Warnings: []string{models.ErrNotificationFailed.Error()},
		}, nil)
		h := NewAwardsHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.EvaluateAwards(rr, newRequest(http.MethodPost, "/subjects/student-1/awards/evaluate"), "student-1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.EvaluateResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Len(t, got.Awards, 1)
		assert.Equal(t, []string{models.ErrNotificationFailed.Error()}, got.Warnings)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("EvaluateAwards", mock.Anything, token, "student-1").Return(nil, models.ErrUnauthenticated)
		h := NewAwardsHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.EvaluateAwards(rr, newRequest(http.MethodPost, "/subjects/student-1/awards/evaluate"), "student-1")

		// Assert
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestListAwards(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("ListAwards", mock.Anything, token, "student-1").Return(&points.AwardList{
			Scope: points.Scope{Subject: "student-1"},
			Awards: []models.AwardRecord{
				{Id: "a2", SubjectId: "student-1", CatalogItemId: "gold", Kind: models.MEDAL},
				{Id: "a1", SubjectId: "student-1", CatalogItemId: "bronze", Kind: models.BADGE},
			},
		}, nil)
		h := NewAwardsHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.ListAwards(rr, newRequest(http.MethodGet, "/subjects/student-1/awards"), "student-1")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		var got []api.Award
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "gold", got[0].CatalogItemId)
		mockService.AssertExpectations(t)
	})

	t.Run("Degraded and empty", func(t *testing.T) {
		// Arrange
		mockService := new(mocks.Service)
		mockService.On("ListAwards", mock.Anything, token, "student-2").Return(&points.AwardList{
			Scope: points.Scope{Subject: "student-1", Degraded: true},
		}, nil)
		h := NewAwardsHandler(mockService)
		rr := httptest.NewRecorder()

		// Act
		h.ListAwards(rr, newRequest(http.MethodGet, "/subjects/student-2/awards"), "student-2")

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "self", rr.Header().Get(api.ScopeHeader))
		assert.JSONEq(t, "[]", rr.Body.String())
	})
}
