package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/chris/behavior-points/pkg/models"
	"github.com/chris/behavior-points/pkg/storage"
)

// Store is an in-process implementation of storage.Storage.
// It is used by tests and by the "memory" store driver for local runs.
type Store struct {
	mu            sync.RWMutex
	transactions  map[string][]models.PointsTransaction
	balances      map[string]models.BalanceRecord
	catalog       []models.CatalogItem
	awards        map[string]map[string]models.AwardRecord
	sessions      map[string]models.Session
	profiles      map[string]models.Profile
	notifications map[string]models.Notification

	// FailAppend, FailUpsert and FailInsertAward inject store failures for tests.
	FailAppend      error
	FailUpsert      error
	FailInsertAward error
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		transactions:  make(map[string][]models.PointsTransaction),
		balances:      make(map[string]models.BalanceRecord),
		awards:        make(map[string]map[string]models.AwardRecord),
		sessions:      make(map[string]models.Session),
		profiles:      make(map[string]models.Profile),
		notifications: make(map[string]models.Notification),
	}
}

// SeedCatalog replaces the medal and badge catalog.
func (s *Store) SeedCatalog(items ...models.CatalogItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = append([]models.CatalogItem(nil), items...)
}

// SeedProfile stores a trusted role for a user.
func (s *Store) SeedProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserId] = p
}

// SeedSession stores a session as the identity provider would.
func (s *Store) SeedSession(sess models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Id] = sess
}

func (s *Store) AppendTransaction(_ context.Context, tx *models.PointsTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAppend != nil {
		return s.FailAppend
	}
	s.transactions[tx.SubjectId] = append(s.transactions[tx.SubjectId], *tx)
	return nil
}

func (s *Store) ListTransactions(_ context.Context, subjectID string, filter models.TransactionFilter) ([]models.PointsTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.PointsTransaction, 0, len(s.transactions[subjectID]))
	for _, tx := range s.transactions[subjectID] {
		if filter.Matches(tx) {
			items = append(items, tx)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].Id > items[j].Id
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if filter.Limit > 0 && len(items) > filter.Limit {
		items = items[:filter.Limit]
	}
	return items, nil
}

func (s *Store) CountTransactions(_ context.Context, subjectID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.transactions[subjectID])), nil
}

func (s *Store) ListSubjects(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	subjects := make([]string, 0, len(s.transactions))
	for id := range s.transactions {
		subjects = append(subjects, id)
	}
	sort.Strings(subjects)
	return subjects, nil
}

func (s *Store) GetBalance(_ context.Context, subjectID string) (*models.BalanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.balances[subjectID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &record, nil
}

func (s *Store) ListBalances(_ context.Context) ([]models.BalanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]models.BalanceRecord, 0, len(s.balances))
	for _, r := range s.balances {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SubjectId < records[j].SubjectId })
	return records, nil
}

func (s *Store) UpsertBalance(_ context.Context, record *models.BalanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpsert != nil {
		return s.FailUpsert
	}
	s.balances[record.SubjectId] = *record
	return nil
}

func (s *Store) ListCatalog(_ context.Context) ([]models.CatalogItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CatalogItem(nil), s.catalog...), nil
}

func (s *Store) InsertAward(_ context.Context, award *models.AwardRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailInsertAward != nil {
		return false, s.FailInsertAward
	}
	if _, ok := s.awards[award.SubjectId]; !ok {
		s.awards[award.SubjectId] = make(map[string]models.AwardRecord)
	}
	if _, exists := s.awards[award.SubjectId][award.CatalogItemId]; exists {
		return false, nil
	}
	s.awards[award.SubjectId][award.CatalogItemId] = *award
	return true, nil
}

func (s *Store) ListAwards(_ context.Context, subjectID string) ([]models.AwardRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]models.AwardRecord, 0, len(s.awards[subjectID]))
	for _, a := range s.awards[subjectID] {
		items = append(items, a)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].AwardedAt.Equal(items[j].AwardedAt) {
			return items[i].CatalogItemId < items[j].CatalogItemId
		}
		return items[i].AwardedAt.After(items[j].AwardedAt)
	})
	return items, nil
}

func (s *Store) GetSession(_ context.Context, sessionID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &sess, nil
}

func (s *Store) GetProfile(_ context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (s *Store) SaveNotification(_ context.Context, n *models.Notification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notifications[n.Id]; ok {
		return false, nil
	}
	s.notifications[n.Id] = *n
	return true, nil
}

// Notifications returns the stored notifications for a subject.
func (s *Store) Notifications(subjectID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Notification
	for _, n := range s.notifications {
		if n.SubjectId == subjectID {
			out = append(out, n)
		}
	}
	return out
}
