// Package dataset holds the imported feeds in memory. Dashboards recompute
// their panels from the current dataset on every request, so the store only
// needs atomic feed swaps and consistent read snapshots.
package dataset

import (
	"sync"
	"time"

	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/importer"
	"github.com/sysgest/insights-api/internal/metrics"
	"go.uber.org/zap"
)

// Store keeps the four feed collections plus the material-consolidated view
// of the service orders. Imports are the only writers; HTTP reads take
// snapshots under the read lock.
type Store struct {
	mu sync.RWMutex

	orders       []domain.ServiceOrder
	consolidated []domain.ServiceOrder
	sales        []domain.Sale
	payments     []domain.PaymentRecord

	permanenceSales []domain.Sale
	goalSales       []domain.Sale
	goals           []domain.SalesGoal

	updatedAt map[domain.ImportFeed]time.Time

	logger *zap.Logger
}

// Snapshot is a point-in-time copy of the dataset. Orders carry consolidated
// materials; RawOrders are the rows as imported.
type Snapshot struct {
	Orders          []domain.ServiceOrder
	RawOrders       []domain.ServiceOrder
	Sales           []domain.Sale
	Payments        []domain.PaymentRecord
	PermanenceSales []domain.Sale
	GoalSales       []domain.Sale
	Goals           []domain.SalesGoal
	UpdatedAt       map[domain.ImportFeed]time.Time
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{
		updatedAt: make(map[domain.ImportFeed]time.Time),
		logger:    logger,
	}
}

// MergeOrders folds the incoming rows into the stored orders. Rows sharing an
// (order code, item code) key replace the stored row, so re-importing a feed
// is idempotent. Material consolidation is re-run over the merged set.
// Returns the resulting collection size.
func (s *Store) MergeOrders(incoming []domain.ServiceOrder) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]domain.ServiceOrder, 0, len(s.orders)+len(incoming))
	merged = append(merged, s.orders...)
	merged = append(merged, incoming...)
	s.orders = importer.DeduplicateOrders(merged)
	s.consolidated = metrics.ConsolidateMaterials(s.orders, s.logger)
	s.updatedAt[domain.FeedOrders] = time.Now()
	return len(s.orders)
}

// MergeSales folds incoming sales in, keyed by proposal number.
func (s *Store) MergeSales(incoming []domain.Sale) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]domain.Sale, 0, len(s.sales)+len(incoming))
	merged = append(merged, s.sales...)
	merged = append(merged, incoming...)
	s.sales = importer.DeduplicateSales(merged)
	s.updatedAt[domain.FeedSales] = time.Now()
	return len(s.sales)
}

// MergePayments folds incoming payment records in, keyed by proposal number.
func (s *Store) MergePayments(incoming []domain.PaymentRecord) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]domain.PaymentRecord, 0, len(s.payments)+len(incoming))
	merged = append(merged, s.payments...)
	merged = append(merged, incoming...)
	s.payments = importer.DeduplicatePayments(merged)
	s.updatedAt[domain.FeedPayments] = time.Now()
	return len(s.payments)
}

// ReplaceGoals swaps in a freshly parsed goals workbook. The workbook is a
// complete export, so it replaces rather than merges.
func (s *Store) ReplaceGoals(data *importer.GoalsData) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.permanenceSales = importer.DeduplicateSales(data.PermanenceSales.Items)
	s.goalSales = importer.DeduplicateSales(data.GoalSales.Items)
	s.goals = data.Goals.Items
	s.updatedAt[domain.FeedGoals] = time.Now()
	return len(s.permanenceSales) + len(s.goalSales) + len(s.goals)
}

// SeedGoals restores persisted goal rows on startup. A later goals workbook
// import replaces them; an already-populated store is left alone.
func (s *Store) SeedGoals(goals []domain.SalesGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.goals) > 0 || len(goals) == 0 {
		return
	}
	s.goals = append([]domain.SalesGoal(nil), goals...)
}

// Snapshot returns a consistent copy of every collection.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	updated := make(map[domain.ImportFeed]time.Time, len(s.updatedAt))
	for k, v := range s.updatedAt {
		updated[k] = v
	}
	return Snapshot{
		Orders:          cloneOrders(s.consolidated),
		RawOrders:       cloneOrders(s.orders),
		Sales:           cloneSales(s.sales),
		Payments:        clonePayments(s.payments),
		PermanenceSales: cloneSales(s.permanenceSales),
		GoalSales:       cloneSales(s.goalSales),
		Goals:           append([]domain.SalesGoal(nil), s.goals...),
		UpdatedAt:       updated,
	}
}

// Counts reports the stored size of each feed without copying it.
func (s *Store) Counts() map[domain.ImportFeed]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[domain.ImportFeed]int{
		domain.FeedOrders:   len(s.orders),
		domain.FeedSales:    len(s.sales),
		domain.FeedPayments: len(s.payments),
		domain.FeedGoals:    len(s.goals),
	}
}

func cloneOrders(in []domain.ServiceOrder) []domain.ServiceOrder {
	out := make([]domain.ServiceOrder, len(in))
	copy(out, in)
	for i := range out {
		out[i].Materials = append([]domain.Material(nil), in[i].Materials...)
	}
	return out
}

func cloneSales(in []domain.Sale) []domain.Sale {
	return append([]domain.Sale(nil), in...)
}

func clonePayments(in []domain.PaymentRecord) []domain.PaymentRecord {
	return append([]domain.PaymentRecord(nil), in...)
}
