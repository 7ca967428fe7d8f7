// Package awards grants medals and badges when a balance falls inside a catalog item's range.
//
// The storage layer enforces one award per (subject, item); the insert itself is the
// conflict point. Awards are never revoked.
package awards

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/chris/behavior-points/pkg/access"
	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/notify"
	"github.com/chris/behavior-points/pkg/storage"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Awarder evaluates thresholds and records awards.
type Awarder struct {
	Catalog   storage.CatalogReader
	Awards    storage.AwardStore
	Publisher notify.Publisher
	Now       func() time.Time
}

// NewAwarder creates an Awarder.
func NewAwarder(catalog storage.CatalogReader, awards storage.AwardStore, publisher notify.Publisher) *Awarder {
	return &Awarder{Catalog: catalog, Awards: awards, Publisher: publisher, Now: time.Now}
}

// Evaluate awards every catalog item whose range contains points and that the subject
// does not already hold, and emits one notification per new award.
//
// The returned slice always lists the awards that were recorded, even when an error is
// returned. Failures wrap models.ErrAwardEvaluationFailed or models.ErrNotificationFailed;
// a notification failure never undoes its award.
func (a *Awarder) Evaluate(ctx context.Context, c access.Capability, subjectID string, points int64) ([]models.AwardRecord, error) {
	if !c.Permits(subjectID) {
		return nil, fmt.Errorf("%w: subject %s", models.ErrForbidden, subjectID)
	}

	catalog, err := a.Catalog.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrAwardEvaluationFailed, err)
	}
	sort.Slice(catalog, func(i, j int) bool {
		if catalog[i].MinPoints == catalog[j].MinPoints {
			return catalog[i].Id < catalog[j].Id
		}
		return catalog[i].MinPoints < catalog[j].MinPoints
	})

	held := a.held(ctx, subjectID)

	var (
		awarded []models.AwardRecord
		errs    []error
	)
	for _, item := range catalog {
		if !item.Qualifies(points) {
			continue
		}
		if _, ok := held[item.Id]; ok {
			continue
		}

		award := models.AwardRecord{
			Id:            uuid.New().String(),
			SubjectId:     subjectID,
			CatalogItemId: item.Id,
			Kind:          item.Kind,
			AwardedAt:     a.Now().UTC(),
		}
		inserted, err := a.Awards.InsertAward(ctx, &award)
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"subject_id": subjectID, "item_id": item.Id}).Error("failed to record award")
			errs = append(errs, fmt.Errorf("%w: item %s: %v", models.ErrAwardEvaluationFailed, item.Id, err))
			continue
		}
		if !inserted {
			continue
		}
		awarded = append(awarded, award)

		log.WithFields(log.Fields{
			"subject_id": subjectID,
			"item_id":    item.Id,
			"kind":       item.Kind,
			"points":     points,
			"actor_id":   c.ActorID(),
		}).Info("award granted")

		if err := a.Publisher.Publish(ctx, notificationFor(award, item, a.Now().UTC())); err != nil {
			log.WithError(err).WithFields(log.Fields{"subject_id": subjectID, "item_id": item.Id}).Warn("award notification failed")
			errs = append(errs, fmt.Errorf("%w: item %s: %v", models.ErrNotificationFailed, item.Id, err))
		}
	}

	return awarded, errors.Join(errs...)
}

// held lists items the subject already has. A failed lookup is not fatal since
// InsertAward rejects duplicates anyway.
func (a *Awarder) held(ctx context.Context, subjectID string) map[string]struct{} {
	existing, err := a.Awards.ListAwards(ctx, subjectID)
	if err != nil {
		log.WithError(err).WithField("subject_id", subjectID).Warn("failed to list existing awards")
		return nil
	}
	held := make(map[string]struct{}, len(existing))
	for _, aw := range existing {
		held[aw.CatalogItemId] = struct{}{}
	}
	return held
}

func notificationFor(award models.AwardRecord, item models.CatalogItem, now time.Time) models.Notification {
	return models.Notification{
		Id:        uuid.New().String(),
		SubjectId: award.SubjectId,
		Kind:      item.Kind,
		ItemId:    item.Id,
		Message:   fmt.Sprintf("Congratulations! You earned the %s %s.", item.Name, item.Kind),
		CreatedAt: now,
	}
}

// ListFor returns the awards a subject holds.
func (a *Awarder) ListFor(ctx context.Context, c access.Capability, subjectID string) ([]models.AwardRecord, error) {
	if !c.Permits(subjectID) {
		return nil, fmt.Errorf("%w: subject %s", models.ErrForbidden, subjectID)
	}
	awards, err := a.Awards.ListAwards(ctx, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	return awards, nil
}

// ListCatalog returns every medal and badge definition.
func (a *Awarder) ListCatalog(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := a.Catalog.ListCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return items, nil
}
