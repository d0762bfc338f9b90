package metrics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sysgest/insights-api/internal/domain"
	"go.uber.org/zap"
)

// ReopenableCategories are the service categories whose orders can open a
// reopening chain. Orders of other categories are never originals.
var ReopenableCategories = map[domain.ServiceCategory]bool{
	domain.CategoryCorrectiveTV:    true,
	domain.CategoryCorrectiveFiber: true,
	domain.CategoryMainPointTV:     true,
	domain.CategoryMainPointFiber:  true,
}

// ReopeningFilter narrows matching output. Zero values mean "no filter".
type ReopeningFilter struct {
	// Month/Year filter pairs by the reopening order's creation date.
	Month int
	Year  int
	// Categories restricts the original order's category. Nil allows every
	// reopenable category.
	Categories map[domain.ServiceCategory]bool
}

func (f *ReopeningFilter) allowsCategory(c domain.ServiceCategory) bool {
	if f == nil || f.Categories == nil {
		return true
	}
	return f.Categories[c]
}

func (f *ReopeningFilter) allowsPeriod(t time.Time) bool {
	if f == nil || f.Month == 0 || f.Year == 0 {
		return true
	}
	return int(t.Month()) == f.Month && t.Year() == f.Year
}

// Allows reports whether the category and timestamp pass the filter.
// Used by panels that need the same cut for their base population.
func (f *ReopeningFilter) Allows(c domain.ServiceCategory, t time.Time) bool {
	return f.allowsCategory(c) && f.allowsPeriod(t)
}

type groupKey struct {
	customer string
	category domain.ServiceCategory
}

type orderKey struct {
	code string
	item string
}

// MatchReopenings finds (original, reopening) pairs among the given orders.
//
// Orders are grouped by customer code and service category and sorted by
// their reference time. A finalized reopenable order becomes the original of
// at most one pair, matched to the first later order of the same group
// created within the cutoff window; a reopening order is consumed once.
// Malformed rows (zero creation date) are skipped, never fatal.
func MatchReopenings(orders []domain.ServiceOrder, filter *ReopeningFilter, log *zap.Logger) []domain.ReopeningPair {
	groups := make(map[groupKey][]domain.ServiceOrder)
	for _, o := range orders {
		if o.CreatedAt.IsZero() {
			log.Warn("order without a parseable creation date skipped from reopening matching",
				zap.String("codigo_os", o.Code),
				zap.String("codigo_item", o.ItemCode),
			)
			continue
		}
		groups[groupKey{customer: o.CustomerCode, category: o.Category}] = append(
			groups[groupKey{customer: o.CustomerCode, category: o.Category}], o)
	}

	// Deterministic group iteration keeps pair output stable across runs.
	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].customer != keys[j].customer {
			return keys[i].customer < keys[j].customer
		}
		return keys[i].category < keys[j].category
	})

	var pairs []domain.ReopeningPair
	for _, k := range keys {
		group := groups[k]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ReferenceTime().Before(group[j].ReferenceTime())
		})

		consumed := make(map[orderKey]bool)
		for i := range group {
			original := group[i]
			if !eligibleOriginal(&original) || !filter.allowsCategory(original.Category) {
				continue
			}
			finalized := *original.FinalizedAt

			for j := i + 1; j < len(group); j++ {
				candidate := group[j]
				ck := orderKey{code: candidate.Code, item: candidate.ItemCode}
				if consumed[ck] || candidate.Code == original.Code {
					continue
				}
				if candidate.CreatedAt.Before(finalized) {
					continue
				}
				if !withinReopeningWindow(finalized, candidate.CreatedAt) {
					// Groups sort by reference time, not creation time, so a
					// later candidate may still fall inside the window.
					continue
				}

				hours := roundHours(candidate.CreatedAt.Sub(finalized))
				if hours < 0 {
					continue
				}
				pair := domain.ReopeningPair{
					Original:         original,
					Reopening:        candidate,
					ElapsedHours:     hours,
					ElapsedDays:      int(math.Floor(hours / 24)),
					OriginalCategory: original.Category,
				}
				consumed[ck] = true
				if filter.allowsPeriod(candidate.CreatedAt) {
					pairs = append(pairs, pair)
				}
				break // one pair per original
			}
		}
	}

	return pairs
}

// eligibleOriginal reports whether an order can anchor a reopening pair.
func eligibleOriginal(o *domain.ServiceOrder) bool {
	if o.Status != domain.OrderStatusFinalized || o.FinalizedAt == nil {
		return false
	}
	if !ReopenableCategories[o.Category] {
		return false
	}
	// Customer-initiated cancellation breaks the chain.
	if strings.Contains(o.ActionTaken, domain.ActionCustomerCancelled) {
		return false
	}
	return true
}

// withinReopeningWindow applies the cutoff rule: the reopening must be
// created in the same calendar month as the original's finalization, or on
// day 1 of the following month when the original finalized on the last day
// of its month.
func withinReopeningWindow(finalized, created time.Time) bool {
	if finalized.Year() == created.Year() && finalized.Month() == created.Month() {
		return true
	}
	if !isLastDayOfMonth(finalized) || created.Day() != 1 {
		return false
	}
	next := time.Date(finalized.Year(), finalized.Month(), 1, 0, 0, 0, 0, finalized.Location()).AddDate(0, 1, 0)
	return created.Year() == next.Year() && created.Month() == next.Month()
}

func isLastDayOfMonth(t time.Time) bool {
	return t.AddDate(0, 0, 1).Month() != t.Month()
}

// roundHours converts an elapsed duration to hours with one decimal.
func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*10) / 10
}
