package balances

import (
	"net/http"

	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/handlers/respond"
	"github.com/chris/behavior-points/pkg/mapping"
	"github.com/chris/behavior-points/pkg/middleware"
	"github.com/chris/behavior-points/pkg/points"
)

// BalancesHandler holds the dependencies for balance-related handlers.
type BalancesHandler struct {
	Service points.Service
}

// NewBalancesHandler creates a new BalancesHandler.
func NewBalancesHandler(service points.Service) *BalancesHandler {
	return &BalancesHandler{Service: service}
}

// GetBalance returns the cached balance. It never recomputes.
func (h *BalancesHandler) GetBalance(w http.ResponseWriter, r *http.Request, subjectId string) {
	token := middleware.TokenFromContext(r.Context())
	view, err := h.Service.ReadBalance(r.Context(), token, subjectId)
	if err != nil {
		respond.Error(w, "retrieve balance", err)
		return
	}

	respond.Scoped(w, view.Scope)
	respond.JSON(w, http.StatusOK, mapping.ToApiBalance(&view.Balance))
}

// SyncBalance reconciles the cached balance with the ledger.
func (h *BalancesHandler) SyncBalance(w http.ResponseWriter, r *http.Request, subjectId string, params api.SyncBalanceParams) {
	force := params.Force != nil && *params.Force

	token := middleware.TokenFromContext(r.Context())
	result, err := h.Service.Sync(r.Context(), token, subjectId, force)
	if err != nil {
		respond.Error(w, "sync balance", err)
		return
	}

	respond.Scoped(w, result.Scope)
	respond.JSON(w, http.StatusOK, mapping.ToApiSyncResult(result))
}

// GetInspection compares the cached balance with a fresh ledger recomputation.
func (h *BalancesHandler) GetInspection(w http.ResponseWriter, r *http.Request, subjectId string) {
	token := middleware.TokenFromContext(r.Context())
	inspection, err := h.Service.Inspect(r.Context(), token, subjectId)
	if err != nil {
		respond.Error(w, "inspect balance", err)
		return
	}

	respond.Scoped(w, inspection.Scope)
	respond.JSON(w, http.StatusOK, mapping.ToApiInspection(inspection))
}
