package storage

import (
	"context"

	"github.com/chris/behavior-points/pkg/models"
)

// CatalogReader lists the medal and badge catalog.
type CatalogReader interface {
	ListCatalog(ctx context.Context) ([]models.CatalogItem, error)
}

// AwardReader defines the interface for reading granted awards.
type AwardReader interface {
	// ListAwards returns a subject's awards newest first.
	ListAwards(ctx context.Context, subjectID string) ([]models.AwardRecord, error)
}

// AwardWriter records awards. The store enforces uniqueness of (subject, catalog item).
type AwardWriter interface {
	// InsertAward inserts the award unless one already exists for the same subject and item.
	// It returns false, with no error, when the award already existed.
	InsertAward(ctx context.Context, award *models.AwardRecord) (bool, error)
}

// AwardStore combines the reader and writer interfaces.
type AwardStore interface {
	AwardReader
	AwardWriter
}
