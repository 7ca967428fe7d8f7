package handlers

import (
	"github.com/chris/behavior-points/pkg/api"
	"github.com/chris/behavior-points/pkg/handlers/awards"
	"github.com/chris/behavior-points/pkg/handlers/balances"
	"github.com/chris/behavior-points/pkg/handlers/catalog"
	"github.com/chris/behavior-points/pkg/handlers/transactions"
	"github.com/chris/behavior-points/pkg/points"
)

// ApiHandler implements the api server interface by composing the per-resource handlers.
type ApiHandler struct {
	*transactions.TransactionsHandler
	*balances.BalancesHandler
	*awards.AwardsHandler
	*catalog.CatalogHandler
}

// Make sure we conform to the interface
var _ api.ServerInterface = (*ApiHandler)(nil)

// NewApiHandler creates a new ApiHandler over the points service.
func NewApiHandler(service points.Service) *ApiHandler {
	return &ApiHandler{
		TransactionsHandler: transactions.NewTransactionsHandler(service),
		BalancesHandler:     balances.NewBalancesHandler(service),
		AwardsHandler:       awards.NewAwardsHandler(service),
		CatalogHandler:      catalog.NewCatalogHandler(service),
	}
}
