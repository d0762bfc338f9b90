// Package metrics implements the derived business metrics of the insights
// dashboard: reopening-pair detection, material consolidation, permanence
// classification, time-to-service compliance and bonus lookups. Everything
// here is a pure function over in-memory collections; callers recompute on
// demand whenever the underlying dataset changes.
package metrics

import (
	"strings"

	"github.com/sysgest/insights-api/internal/domain"
)

// CategoryFor normalizes a raw (service type, subtype) pair from the feed
// into a ServiceCategory. Fiber variants are detected by the BL/FIBRA markers
// the source system embeds in either field.
func CategoryFor(serviceType, serviceSubtype string) domain.ServiceCategory {
	t := strings.ToUpper(strings.TrimSpace(serviceType))
	s := strings.ToUpper(strings.TrimSpace(serviceSubtype))

	fiber := strings.Contains(t, "BL") || strings.Contains(s, "BL-DGO") ||
		strings.Contains(t, "FIBRA") || strings.Contains(s, "FIBRA")

	switch {
	case strings.Contains(s, "PONTO PRINCIPAL"):
		if fiber {
			return domain.CategoryMainPointFiber
		}
		return domain.CategoryMainPointTV
	case strings.Contains(t, "CORRETIVA") || strings.Contains(t, "ASSIST"):
		if fiber {
			return domain.CategoryCorrectiveFiber
		}
		return domain.CategoryCorrectiveTV
	case strings.Contains(t, "PRESTA"):
		if fiber {
			return domain.CategoryPrestacaoFiber
		}
		return domain.CategoryPrestacao
	default:
		return domain.CategoryUnknown
	}
}

// FamilyFor maps a product grouping string onto a ProductFamily.
func FamilyFor(productGroup string) domain.ProductFamily {
	g := strings.ToUpper(strings.TrimSpace(productGroup))
	switch {
	case strings.Contains(g, "POS"):
		return domain.FamilyPOS
	case strings.Contains(g, "BL-DGO") || strings.Contains(g, "FIBRA"):
		return domain.FamilyFiber
	default:
		return domain.FamilyOther
	}
}
