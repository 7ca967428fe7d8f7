package awards

import (
	"net/http"

	"github.com/chris/behavior-points/pkg/handlers/respond"
	"github.com/chris/behavior-points/pkg/mapping"
	"github.com/chris/behavior-points/pkg/middleware"
	"github.com/chris/behavior-points/pkg/points"
)

// AwardsHandler holds the dependencies for award-related handlers.
type AwardsHandler struct {
	Service points.Service
}

// NewAwardsHandler creates a new AwardsHandler.
func NewAwardsHandler(service points.Service) *AwardsHandler {
	return &AwardsHandler{Service: service}
}

// EvaluateAwards syncs the subject's balance and grants every newly satisfied item.
func (h *AwardsHandler) EvaluateAwards(w http.ResponseWriter, r *http.Request, subjectId string) {
	token := middleware.TokenFromContext(r.Context())
	result, err := h.Service.EvaluateAwards(r.Context(), token, subjectId)
	if err != nil {
		respond.Error(w, "evaluate awards", err)
		return
	}

	respond.Scoped(w, result.Scope)
	respond.JSON(w, http.StatusOK, mapping.ToApiEvaluateResult(result))
}

// ListAwards lists the medals and badges a subject holds.
func (h *AwardsHandler) ListAwards(w http.ResponseWriter, r *http.Request, subjectId string) {
	token := middleware.TokenFromContext(r.Context())
	list, err := h.Service.ListAwards(r.Context(), token, subjectId)
	if err != nil {
		respond.Error(w, "retrieve awards", err)
		return
	}

	respond.Scoped(w, list.Scope)
	respond.JSON(w, http.StatusOK, mapping.ToApiAwards(list.Awards))
}
