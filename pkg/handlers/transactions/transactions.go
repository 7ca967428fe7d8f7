package transactions

import (
	"net/http"

	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/handlers/respond"
	"github.com/chris/behavior-points/pkg/mapping"
	"github.com/chris/behavior-points/pkg/middleware"
	"github.com/chris/behavior-points/pkg/points"
)

// TransactionsHandler holds the dependencies for ledger-related handlers.
type TransactionsHandler struct {
	Service points.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(service points.Service) *TransactionsHandler {
	return &TransactionsHandler{Service: service}
}

// CreateTransaction grants or deducts points and runs the balance and award steps.
// Once the ledger row is written the answer is 201, with warnings for any later step
// that did not complete.
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request, subjectId string) {
	var newTx api.NewTransaction
	if !respond.Decode(w, r, &newTx) {
		return
	}

	token := middleware.TokenFromContext(r.Context())
	result, err := h.Service.ChangePoints(r.Context(), token, mapping.ToChangeRequest(subjectId, &newTx))
	if err != nil {
		respond.Error(w, "record transaction", err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiChangeResult(result))
}

// ListTransactions lists a subject's ledger rows newest first.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request, subjectId string, params api.ListTransactionsParams) {
	if params.Sign != nil && *params.Sign != api.Positive && *params.Sign != api.Negative {
		http.Error(w, "Invalid sign filter", http.StatusBadRequest)
		return
	}
	if params.Limit != nil && *params.Limit < 0 {
		http.Error(w, "Invalid limit", http.StatusBadRequest)
		return
	}

	token := middleware.TokenFromContext(r.Context())
	list, err := h.Service.ListTransactions(r.Context(), token, subjectId, mapping.ToTransactionFilter(params))
	if err != nil {
		respond.Error(w, "retrieve transactions", err)
		return
	}

	respond.Scoped(w, list.Scope)
	respond.JSON(w, http.StatusOK, mapping.ToApiTransactions(list.Transactions))
}
