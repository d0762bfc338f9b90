package metrics

import (
	"math"
	"sort"

	"github.com/sysgest/insights-api/internal/domain"
)

// ServiceGoalHours is the contracted time-to-service goal per category, in
// hours from order creation to finalization.
var ServiceGoalHours = map[domain.ServiceCategory]float64{
	domain.CategoryCorrectiveTV:    34,
	domain.CategoryCorrectiveFiber: 24,
	domain.CategoryMainPointTV:     48,
	domain.CategoryMainPointFiber:  48,
	domain.CategoryPrestacao:       72,
	domain.CategoryPrestacaoFiber:  72,
}

// CategoryCompliance is the time-to-service result for one category.
type CategoryCompliance struct {
	Category     domain.ServiceCategory
	GoalHours    float64
	Finalized    int
	WithinGoal   int
	Compliance   float64
	AverageHours float64
}

// TimeToService computes per-category goal compliance over finalized orders.
// Orders without both timestamps, or of categories without a goal, are
// ignored. Output is ordered by category name.
func TimeToService(orders []domain.ServiceOrder) []CategoryCompliance {
	type acc struct {
		finalized  int
		within     int
		totalHours float64
	}
	accs := make(map[domain.ServiceCategory]*acc)

	for _, o := range orders {
		goal, ok := ServiceGoalHours[o.Category]
		if !ok || o.Status != domain.OrderStatusFinalized || o.FinalizedAt == nil || o.CreatedAt.IsZero() {
			continue
		}
		hours := o.FinalizedAt.Sub(o.CreatedAt).Hours()
		if hours < 0 {
			continue
		}
		a := accs[o.Category]
		if a == nil {
			a = &acc{}
			accs[o.Category] = a
		}
		a.finalized++
		a.totalHours += hours
		if hours <= goal {
			a.within++
		}
	}

	out := make([]CategoryCompliance, 0, len(accs))
	for cat, a := range accs {
		out = append(out, CategoryCompliance{
			Category:     cat,
			GoalHours:    ServiceGoalHours[cat],
			Finalized:    a.finalized,
			WithinGoal:   a.within,
			Compliance:   Percent(a.within, a.finalized),
			AverageHours: round1(a.totalHours / float64(a.finalized)),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// TechnicianRank is one technician's reopening performance.
type TechnicianRank struct {
	Rank           int
	TechnicianID   string
	TechnicianName string
	Finalized      int
	Reopenings     int
	ReopeningRate  float64
}

// RankTechnicians attributes each reopening pair to the original order's
// technician and ranks technicians by reopening rate ascending, finalized
// count descending on ties. Ordering is stable.
func RankTechnicians(orders []domain.ServiceOrder, pairs []domain.ReopeningPair) []TechnicianRank {
	type acc struct {
		name       string
		finalized  int
		reopenings int
	}
	accs := make(map[string]*acc)

	get := func(id, name string) *acc {
		a := accs[id]
		if a == nil {
			a = &acc{name: name}
			accs[id] = a
		}
		if a.name == "" {
			a.name = name
		}
		return a
	}

	for _, o := range orders {
		if o.TechnicianID == "" || o.Status != domain.OrderStatusFinalized {
			continue
		}
		get(o.TechnicianID, o.TechnicianName).finalized++
	}
	for _, p := range pairs {
		if p.Original.TechnicianID == "" {
			continue
		}
		get(p.Original.TechnicianID, p.Original.TechnicianName).reopenings++
	}

	ranks := make([]TechnicianRank, 0, len(accs))
	for id, a := range accs {
		ranks = append(ranks, TechnicianRank{
			TechnicianID:   id,
			TechnicianName: a.name,
			Finalized:      a.finalized,
			Reopenings:     a.reopenings,
			ReopeningRate:  Percent(a.reopenings, a.finalized),
		})
	}
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].ReopeningRate != ranks[j].ReopeningRate {
			return ranks[i].ReopeningRate < ranks[j].ReopeningRate
		}
		if ranks[i].Finalized != ranks[j].Finalized {
			return ranks[i].Finalized > ranks[j].Finalized
		}
		return ranks[i].TechnicianID < ranks[j].TechnicianID
	})
	for i := range ranks {
		ranks[i].Rank = i + 1
	}
	return ranks
}

// Percent returns part/whole as a percentage with one decimal, zero when the
// base is empty.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round1(float64(part) / float64(whole) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
