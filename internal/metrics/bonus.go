package metrics

import (
	"github.com/sysgest/insights-api/internal/domain"
)

// BonusTable maps (time-to-service compliance bucket, reopening-rate bucket)
// to a bonus percentage. Tables are literal per-category business rules, not
// derived values; boundaries differ between TV and fiber assistance.
type BonusTable struct {
	// TTSFloors are descending lower bounds of the compliance buckets.
	// A compliance value falls in the first bucket whose floor it reaches.
	TTSFloors []float64
	// ReopCeilings are ascending upper bounds of the reopening-rate buckets.
	// A rate falls in the first bucket whose ceiling it does not exceed.
	ReopCeilings []float64
	// Pct is indexed [ttsBucket][reopBucket].
	Pct [][]float64
}

// Lookup resolves the bonus percentage for a compliance/reopening pair.
func (t *BonusTable) Lookup(ttsPct, reopPct float64) float64 {
	ttsIdx := len(t.TTSFloors) - 1
	for i, floor := range t.TTSFloors {
		if ttsPct >= floor {
			ttsIdx = i
			break
		}
	}
	reopIdx := len(t.ReopCeilings) - 1
	for i, ceil := range t.ReopCeilings {
		if reopPct <= ceil {
			reopIdx = i
			break
		}
	}
	return t.Pct[ttsIdx][reopIdx]
}

// tvAssistanceBonus: TV corrective assistance.
// Compliance buckets: >=95, 90..95, below. Reopening buckets: <=2%, <=4%, above.
var tvAssistanceBonus = BonusTable{
	TTSFloors:    []float64{95, 90, 0},
	ReopCeilings: []float64{2, 4, 100},
	Pct: [][]float64{
		{40, 30, 0},
		{30, 20, 0},
		{20, 10, 0},
	},
}

// fiberAssistanceBonus: fiber corrective assistance.
// Compliance buckets: >=95, 85..95, below. Reopening buckets: <=3%, <=5%, above.
var fiberAssistanceBonus = BonusTable{
	TTSFloors:    []float64{95, 85, 0},
	ReopCeilings: []float64{3, 5, 100},
	Pct: [][]float64{
		{45, 35, 0},
		{35, 25, 0},
		{25, 15, 0},
	},
}

// bonusTables keys each assistance category to its table. Main-point
// installation shares the assistance table of its technology.
var bonusTables = map[domain.ServiceCategory]*BonusTable{
	domain.CategoryCorrectiveTV:    &tvAssistanceBonus,
	domain.CategoryMainPointTV:     &tvAssistanceBonus,
	domain.CategoryCorrectiveFiber: &fiberAssistanceBonus,
	domain.CategoryMainPointFiber:  &fiberAssistanceBonus,
}

// BonusFor resolves the bonus percentage for a category. Categories without
// a bonus scheme report zero.
func BonusFor(category domain.ServiceCategory, ttsPct, reopPct float64) float64 {
	table, ok := bonusTables[category]
	if !ok {
		return 0
	}
	return table.Lookup(ttsPct, reopPct)
}

// BonusCategories lists the categories carrying a bonus scheme, in display order.
func BonusCategories() []domain.ServiceCategory {
	return []domain.ServiceCategory{
		domain.CategoryCorrectiveTV,
		domain.CategoryMainPointTV,
		domain.CategoryCorrectiveFiber,
		domain.CategoryMainPointFiber,
	}
}
