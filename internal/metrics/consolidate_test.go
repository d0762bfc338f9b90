package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
	"go.uber.org/zap"
)

func orderLine(code, item, subtype string, materials ...domain.Material) domain.ServiceOrder {
	return domain.ServiceOrder{
		Code:           code,
		ItemCode:       item,
		ServiceSubtype: subtype,
		Materials:      materials,
	}
}

func TestConsolidateMaterials_MergesSecondaryIntoPrimary(t *testing.T) {
	orders := []domain.ServiceOrder{
		orderLine("100", "1", metrics.SubtypePrimary, domain.Material{Name: "A", Quantity: 1}),
		orderLine("100", "2", metrics.SubtypeSecondary,
			domain.Material{Name: "A", Quantity: 2},
			domain.Material{Name: "B", Quantity: 1},
		),
	}

	out := metrics.ConsolidateMaterials(orders, zap.NewNop())
	require.Len(t, out, 2)

	primary := out[0]
	require.Len(t, primary.Materials, 2)
	assert.Equal(t, domain.Material{Name: "A", Quantity: 1}, primary.Materials[0], "primary quantity wins on name conflict")
	assert.Equal(t, domain.Material{Name: "B", Quantity: 1}, primary.Materials[1])

	assert.Empty(t, out[1].Materials, "secondary list must be cleared")
}

func TestConsolidateMaterials_SingleLinePassesThrough(t *testing.T) {
	orders := []domain.ServiceOrder{
		orderLine("200", "1", metrics.SubtypePrimary, domain.Material{Name: "X", Quantity: 3}),
	}
	out := metrics.ConsolidateMaterials(orders, zap.NewNop())
	require.Len(t, out, 1)
	assert.Equal(t, orders[0].Materials, out[0].Materials)
}

func TestConsolidateMaterials_MissingTagLeavesGroupUntouched(t *testing.T) {
	orders := []domain.ServiceOrder{
		orderLine("300", "1", metrics.SubtypePrimary, domain.Material{Name: "A", Quantity: 1}),
		orderLine("300", "2", "Outro Subtipo", domain.Material{Name: "B", Quantity: 2}),
	}
	out := metrics.ConsolidateMaterials(orders, zap.NewNop())
	require.Len(t, out, 2)
	assert.Equal(t, orders[0].Materials, out[0].Materials)
	assert.Equal(t, orders[1].Materials, out[1].Materials)
}

func TestConsolidateMaterials_InputNotMutated(t *testing.T) {
	orders := []domain.ServiceOrder{
		orderLine("400", "1", metrics.SubtypePrimary, domain.Material{Name: "A", Quantity: 1}),
		orderLine("400", "2", metrics.SubtypeSecondary, domain.Material{Name: "B", Quantity: 1}),
	}
	_ = metrics.ConsolidateMaterials(orders, zap.NewNop())
	assert.Len(t, orders[1].Materials, 1, "input secondary must keep its materials")
	assert.Len(t, orders[0].Materials, 1, "input primary must keep its original list")
}

func TestConsolidateMaterials_IndependentGroups(t *testing.T) {
	orders := []domain.ServiceOrder{
		orderLine("500", "1", metrics.SubtypePrimary, domain.Material{Name: "A", Quantity: 1}),
		orderLine("501", "1", metrics.SubtypePrimary, domain.Material{Name: "C", Quantity: 1}),
		orderLine("500", "2", metrics.SubtypeSecondary, domain.Material{Name: "B", Quantity: 5}),
		orderLine("501", "2", metrics.SubtypeSecondary, domain.Material{Name: "D", Quantity: 2}),
	}
	out := metrics.ConsolidateMaterials(orders, zap.NewNop())
	require.Len(t, out, 4)
	assert.ElementsMatch(t, []domain.Material{{Name: "A", Quantity: 1}, {Name: "B", Quantity: 5}}, out[0].Materials)
	assert.ElementsMatch(t, []domain.Material{{Name: "C", Quantity: 1}, {Name: "D", Quantity: 2}}, out[1].Materials)
	assert.Empty(t, out[2].Materials)
	assert.Empty(t, out[3].Materials)
}
