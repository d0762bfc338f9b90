package metrics

import (
	"github.com/sysgest/insights-api/internal/domain"
	"go.uber.org/zap"
)

// Subtype tags the source feed uses for duplicate line items of one order.
const (
	SubtypePrimary   = "Ponto Principal"
	SubtypeSecondary = "Sistema Opcional"
)

// ConsolidateMaterials merges bill-of-materials lists of orders sharing an
// order code. The "Ponto Principal" line absorbs every material of the
// "Sistema Opcional" line it does not already list by name (its own quantity
// wins on conflict) and the secondary line's list is emptied so downstream
// aggregation never double counts. Groups missing either tag are left
// untouched and logged.
//
// The input slice is not mutated; the returned slice preserves input order.
func ConsolidateMaterials(orders []domain.ServiceOrder, log *zap.Logger) []domain.ServiceOrder {
	out := make([]domain.ServiceOrder, len(orders))
	copy(out, orders)

	byCode := make(map[string][]int)
	codeOrder := make([]string, 0)
	for i, o := range out {
		if _, seen := byCode[o.Code]; !seen {
			codeOrder = append(codeOrder, o.Code)
		}
		byCode[o.Code] = append(byCode[o.Code], i)
	}

	for _, code := range codeOrder {
		idxs := byCode[code]
		if len(idxs) < 2 {
			continue
		}

		primary, secondary := -1, -1
		for _, i := range idxs {
			switch out[i].ServiceSubtype {
			case SubtypePrimary:
				if primary < 0 {
					primary = i
				}
			case SubtypeSecondary:
				if secondary < 0 {
					secondary = i
				}
			}
		}
		if primary < 0 || secondary < 0 {
			log.Warn("order group without primary/secondary tags left unconsolidated",
				zap.String("codigo_os", code),
				zap.Int("linhas", len(idxs)),
			)
			continue
		}

		known := make(map[string]bool, len(out[primary].Materials))
		merged := make([]domain.Material, 0, len(out[primary].Materials)+len(out[secondary].Materials))
		merged = append(merged, out[primary].Materials...)
		for _, m := range out[primary].Materials {
			known[m.Name] = true
		}
		for _, m := range out[secondary].Materials {
			if known[m.Name] {
				continue
			}
			known[m.Name] = true
			merged = append(merged, m)
		}

		out[primary].Materials = merged
		out[secondary].Materials = []domain.Material{}
	}

	return out
}
