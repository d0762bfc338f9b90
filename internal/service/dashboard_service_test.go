package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/service"
	"go.uber.org/zap"
)

func date(day, hour int) time.Time {
	return time.Date(2025, time.March, day, hour, 0, 0, 0, time.UTC)
}

func finalized(code, customer, tech string, created, done time.Time) domain.ServiceOrder {
	return domain.ServiceOrder{
		Code: code, ItemCode: "1",
		TechnicianID: tech, TechnicianName: tech,
		ServiceType: "Corretiva", ServiceSubtype: "TV",
		CustomerCode: customer, CustomerName: "Cliente " + customer,
		Status: domain.OrderStatusFinalized, City: "Salvador",
		CreatedAt: created, FinalizedAt: &done,
		Category: domain.CategoryCorrectiveTV,
	}
}

func seedDashboard(t *testing.T) *service.DashboardService {
	t.Helper()
	store := dataset.NewStore(zap.NewNop())

	reopening := domain.ServiceOrder{
		Code: "103", ItemCode: "1",
		TechnicianID: "T2", TechnicianName: "T2",
		ServiceType: "Corretiva", ServiceSubtype: "TV",
		CustomerCode: "C1", CustomerName: "Cliente C1",
		Status: domain.OrderStatusOpen, City: "Salvador",
		CreatedAt: date(10, 9),
		Category:  domain.CategoryCorrectiveTV,
	}
	store.MergeOrders([]domain.ServiceOrder{
		finalized("101", "C1", "T1", date(1, 8), date(2, 8)),  // 24h, reopened
		finalized("102", "C2", "T2", date(3, 8), date(5, 8)),  // 48h, over the 34h goal
		reopening,
	})
	store.MergeSales([]domain.Sale{
		{ProposalNumber: "P1", Family: domain.FamilyPOS, Value: 120,
			HabilitationAt: time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)},
	})
	store.MergePayments([]domain.PaymentRecord{
		{ProposalNumber: "P1", Step: 3, PackageStatus: domain.PackageStatusSuspended},
	})

	return service.NewDashboardService(store, zap.NewNop())
}

func TestDashboard_Reopenings(t *testing.T) {
	svc := seedDashboard(t)

	panel := svc.Reopenings(nil)
	require.Len(t, panel.Pairs, 1)
	assert.Equal(t, "101", panel.Pairs[0].OriginalCode)
	assert.Equal(t, "103", panel.Pairs[0].ReopeningCode)
	assert.Equal(t, 2, panel.TotalOriginals)
	assert.Equal(t, 50.0, panel.ReopeningRate)
	assert.Equal(t, 1, panel.ByTechnician["T1"], "reopening counts against the original's technician")

	ratio := panel.RatePerCat[domain.CategoryCorrectiveTV]
	assert.Equal(t, 2, ratio.Base)
	assert.Equal(t, 50.0, ratio.Percent)
}

func TestDashboard_TimeToService(t *testing.T) {
	svc := seedDashboard(t)

	panel := svc.TimeToService()
	require.Len(t, panel.Categories, 1)
	cat := panel.Categories[0]
	assert.Equal(t, domain.CategoryCorrectiveTV, cat.Category)
	assert.Equal(t, 2, cat.Finalized)
	assert.Equal(t, 1, cat.WithinGoal) // only the 24h order beats the 34h goal
	assert.Equal(t, 50.0, panel.Overall.Percent)
}

func TestDashboard_PermanenceAndIndicators(t *testing.T) {
	svc := seedDashboard(t)
	now := time.Date(2025, time.May, 21, 0, 0, 0, 0, time.UTC) // 100 days after habilitation

	permanence := svc.Permanence(now)
	assert.Equal(t, 1, permanence.Inadimplentes)
	assert.Equal(t, 1, permanence.GoldCount)
	assert.Equal(t, 0.0, permanence.PermanencePct)

	kpi := svc.Indicators(now)
	assert.Equal(t, 3, kpi.Orders)
	assert.Equal(t, 2, kpi.Finalized)
	assert.Equal(t, 1, kpi.Reopenings)
	assert.Equal(t, 2, kpi.Technicians)
	assert.Equal(t, 120.0, kpi.SalesValue)
}

func TestDashboard_Technicians(t *testing.T) {
	svc := seedDashboard(t)

	ranks := svc.Technicians()
	require.Len(t, ranks, 2)
	assert.Equal(t, "T2", ranks[0].TechnicianID, "clean technician ranks first")
	assert.Equal(t, "T1", ranks[1].TechnicianID)
	assert.Equal(t, 100.0, ranks[1].ReopeningRate)
}

func TestDashboard_Bonus(t *testing.T) {
	svc := seedDashboard(t)

	panel := svc.Bonus()
	require.NotEmpty(t, panel.Entries)
	for _, e := range panel.Entries {
		if e.Category == domain.CategoryCorrectiveTV {
			// 50% on-time and 50% reopening fall outside every bonus band
			assert.Equal(t, 0.0, e.BonusPct)
		}
	}
}
