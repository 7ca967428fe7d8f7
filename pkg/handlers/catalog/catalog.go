package catalog

import (
	"net/http"

	"github.com/chris/behavior-points/pkg/handlers/respond"
	"github.com/chris/behavior-points/pkg/mapping"
	"github.com/chris/behavior-points/pkg/middleware"
	"github.com/chris/behavior-points/pkg/points"
)

// CatalogHandler serves the read-only medal and badge catalog.
type CatalogHandler struct {
	Service points.Service
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service points.Service) *CatalogHandler {
	return &CatalogHandler{Service: service}
}

func (h *CatalogHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())
	items, err := h.Service.ListCatalog(r.Context(), token)
	if err != nil {
		respond.Error(w, "retrieve catalog", err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiCatalog(items))
}
