package dataset_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/importer"
	"go.uber.org/zap"
)

func TestStore_MergeOrdersReplacesByKey(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())

	n := store.MergeOrders([]domain.ServiceOrder{
		{Code: "1001", ItemCode: "1", City: "Salvador"},
		{Code: "1002", ItemCode: "1", City: "Lauro de Freitas"},
	})
	assert.Equal(t, 2, n)

	n = store.MergeOrders([]domain.ServiceOrder{
		{Code: "1001", ItemCode: "1", City: "Camaçari"},
	})
	assert.Equal(t, 2, n, "re-imported key replaces, never duplicates")

	snap := store.Snapshot()
	require.Len(t, snap.RawOrders, 2)
	assert.Equal(t, "Camaçari", snap.RawOrders[0].City)
	assert.WithinDuration(t, time.Now(), snap.UpdatedAt[domain.FeedOrders], time.Minute)
}

func TestStore_SnapshotConsolidatesMaterials(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())
	store.MergeOrders([]domain.ServiceOrder{
		{
			Code: "2001", ItemCode: "1", ServiceSubtype: "Ponto Principal",
			Materials: []domain.Material{{Name: "CABO", Quantity: 1}},
		},
		{
			Code: "2001", ItemCode: "2", ServiceSubtype: "Sistema Opcional",
			Materials: []domain.Material{{Name: "CONECTOR", Quantity: 3}},
		},
	})

	snap := store.Snapshot()
	require.Len(t, snap.Orders, 2)
	var primary, secondary *domain.ServiceOrder
	for i := range snap.Orders {
		switch snap.Orders[i].ItemCode {
		case "1":
			primary = &snap.Orders[i]
		case "2":
			secondary = &snap.Orders[i]
		}
	}
	require.NotNil(t, primary)
	require.NotNil(t, secondary)
	assert.Len(t, primary.Materials, 2)
	assert.Empty(t, secondary.Materials)

	// raw rows keep the imported materials untouched
	for _, o := range snap.RawOrders {
		if o.ItemCode == "2" {
			assert.Len(t, o.Materials, 1)
		}
	}
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())
	store.MergeOrders([]domain.ServiceOrder{
		{Code: "1", ItemCode: "1", Materials: []domain.Material{{Name: "CABO", Quantity: 1}}},
	})

	snap := store.Snapshot()
	snap.RawOrders[0].City = "alterada"
	snap.RawOrders[0].Materials[0].Quantity = 99

	again := store.Snapshot()
	assert.Empty(t, again.RawOrders[0].City)
	assert.Equal(t, 1.0, again.RawOrders[0].Materials[0].Quantity)
}

func TestStore_ReplaceGoals(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())
	store.ReplaceGoals(&importer.GoalsData{
		PermanenceSales: &importer.Result[domain.Sale]{Items: []domain.Sale{{ProposalNumber: "P1"}}},
		GoalSales:       &importer.Result[domain.Sale]{Items: []domain.Sale{{ProposalNumber: "P2"}}},
		Goals:           &importer.Result[domain.SalesGoal]{Items: []domain.SalesGoal{{SellerID: "V1", Month: 2, Year: 2025}}},
	})
	store.ReplaceGoals(&importer.GoalsData{
		PermanenceSales: &importer.Result[domain.Sale]{},
		GoalSales:       &importer.Result[domain.Sale]{},
		Goals:           &importer.Result[domain.SalesGoal]{Items: []domain.SalesGoal{{SellerID: "V2", Month: 3, Year: 2025}}},
	})

	snap := store.Snapshot()
	assert.Empty(t, snap.PermanenceSales, "workbook replaces, never merges")
	require.Len(t, snap.Goals, 1)
	assert.Equal(t, "V2", snap.Goals[0].SellerID)

	counts := store.Counts()
	assert.Equal(t, 1, counts[domain.FeedGoals])
}

func TestStore_SeedGoalsOnlyFillsEmptyStore(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())
	store.SeedGoals([]domain.SalesGoal{{SellerID: "V1", Month: 2, Year: 2025}})

	snap := store.Snapshot()
	require.Len(t, snap.Goals, 1)

	store.SeedGoals([]domain.SalesGoal{{SellerID: "V2", Month: 3, Year: 2025}})
	snap = store.Snapshot()
	require.Len(t, snap.Goals, 1)
	assert.Equal(t, "V1", snap.Goals[0].SellerID, "seed never overwrites imported goals")
}
