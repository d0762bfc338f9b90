package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
)

func TestBonusFor_TVTable(t *testing.T) {
	tests := []struct {
		name    string
		tts     float64
		reop    float64
		wantPct float64
	}{
		{"top compliance low reopening", 97, 1.5, 40},
		{"top compliance mid reopening", 97, 3.0, 30},
		{"top compliance high reopening", 97, 8.0, 0},
		{"mid compliance low reopening", 92, 1.0, 30},
		{"mid compliance mid reopening", 92, 3.5, 20},
		{"low compliance low reopening", 80, 1.0, 20},
		{"low compliance high reopening", 80, 10, 0},
		{"bucket boundary 95 counts as top", 95, 2.0, 40},
		{"bucket boundary 90 counts as mid", 90, 4.0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantPct, metrics.BonusFor(domain.CategoryCorrectiveTV, tt.tts, tt.reop))
		})
	}
}

func TestBonusFor_FiberTable(t *testing.T) {
	assert.Equal(t, 45.0, metrics.BonusFor(domain.CategoryCorrectiveFiber, 96, 2.5))
	assert.Equal(t, 35.0, metrics.BonusFor(domain.CategoryCorrectiveFiber, 96, 4.0))
	assert.Equal(t, 25.0, metrics.BonusFor(domain.CategoryCorrectiveFiber, 88, 4.5))
	assert.Equal(t, 15.0, metrics.BonusFor(domain.CategoryCorrectiveFiber, 70, 4.0))
	assert.Equal(t, 0.0, metrics.BonusFor(domain.CategoryCorrectiveFiber, 96, 9.0))
}

func TestBonusFor_CategoryWithoutScheme(t *testing.T) {
	assert.Equal(t, 0.0, metrics.BonusFor(domain.CategoryPrestacao, 100, 0))
	assert.Equal(t, 0.0, metrics.BonusFor(domain.CategoryUnknown, 100, 0))
}

func TestBonusCategories_AllHaveTables(t *testing.T) {
	for _, c := range metrics.BonusCategories() {
		// A perfect score must always land in a real bucket.
		assert.Greater(t, metrics.BonusFor(c, 100, 0), 0.0, "category %s", c)
	}
}

func TestTimeToService(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("1", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-01 20:00:00"), // 12h, within 34h
		finalizedOrder("2", "C2", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-03 08:00:00"), // 48h, beyond
		finalizedOrder("3", "C3", domain.CategoryCorrectiveFiber, "2025-03-01 08:00:00", "2025-03-01 14:00:00"),
		openOrder("4", "C4", domain.CategoryCorrectiveTV, "2025-03-02 08:00:00"), // not finalized, ignored
	}

	out := metrics.TimeToService(orders)
	require.Len(t, out, 2)

	fiber := out[1]
	assert.Equal(t, domain.CategoryCorrectiveFiber, fiber.Category)
	assert.Equal(t, 1, fiber.Finalized)
	assert.Equal(t, 100.0, fiber.Compliance)

	tv := out[0]
	assert.Equal(t, domain.CategoryCorrectiveTV, tv.Category)
	assert.Equal(t, 2, tv.Finalized)
	assert.Equal(t, 1, tv.WithinGoal)
	assert.Equal(t, 50.0, tv.Compliance)
	assert.Equal(t, 30.0, tv.AverageHours)
}

func TestRankTechnicians(t *testing.T) {
	o1 := finalizedOrder("1", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00")
	o2 := finalizedOrder("2", "C2", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00")
	o2.TechnicianID, o2.TechnicianName = "T2", "Bruna"
	o3 := finalizedOrder("3", "C3", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00")
	o3.TechnicianID, o3.TechnicianName = "T2", "Bruna"

	pairs := []domain.ReopeningPair{{Original: o1, Reopening: o2}}

	ranks := metrics.RankTechnicians([]domain.ServiceOrder{o1, o2, o3}, pairs)
	require.Len(t, ranks, 2)

	assert.Equal(t, 1, ranks[0].Rank)
	assert.Equal(t, "T2", ranks[0].TechnicianID)
	assert.Equal(t, 0.0, ranks[0].ReopeningRate)

	assert.Equal(t, 2, ranks[1].Rank)
	assert.Equal(t, "T1", ranks[1].TechnicianID)
	assert.Equal(t, 1, ranks[1].Reopenings)
	assert.Equal(t, 100.0, ranks[1].ReopeningRate)
}

func TestCategoryFor(t *testing.T) {
	tests := []struct {
		serviceType string
		subtype     string
		want        domain.ServiceCategory
	}{
		{"Corretiva", "TV", domain.CategoryCorrectiveTV},
		{"Corretiva BL", "BL-DGO", domain.CategoryCorrectiveFiber},
		{"Assistência Técnica", "", domain.CategoryCorrectiveTV},
		{"Instalação", "Ponto Principal", domain.CategoryMainPointTV},
		{"Instalação FIBRA", "Ponto Principal BL-DGO", domain.CategoryMainPointFiber},
		{"Prestação de Serviço", "", domain.CategoryPrestacao},
		{"Outro", "Outro", domain.CategoryUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, metrics.CategoryFor(tt.serviceType, tt.subtype), "%s / %s", tt.serviceType, tt.subtype)
	}
}

func TestFamilyFor(t *testing.T) {
	assert.Equal(t, domain.FamilyPOS, metrics.FamilyFor("POS Pago"))
	assert.Equal(t, domain.FamilyFiber, metrics.FamilyFor("BL-DGO"))
	assert.Equal(t, domain.FamilyOther, metrics.FamilyFor("Seguros"))
}
