package metrics_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
	"go.uber.org/zap"
)

func ts(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		panic(err)
	}
	return t
}

func finalizedOrder(code, customer string, category domain.ServiceCategory, created, finalized string) domain.ServiceOrder {
	fin := ts(finalized)
	return domain.ServiceOrder{
		Code:           code,
		ItemCode:       code + "-1",
		TechnicianID:   "T1",
		TechnicianName: "Carlos",
		CustomerCode:   customer,
		CustomerName:   "Cliente " + customer,
		Status:         domain.OrderStatusFinalized,
		CreatedAt:      ts(created),
		FinalizedAt:    &fin,
		Category:       category,
	}
}

func openOrder(code, customer string, category domain.ServiceCategory, created string) domain.ServiceOrder {
	return domain.ServiceOrder{
		Code:         code,
		ItemCode:     code + "-1",
		CustomerCode: customer,
		CustomerName: "Cliente " + customer,
		Status:       domain.OrderStatusOpen,
		CreatedAt:    ts(created),
		Category:     category,
	}
}

func TestMatchReopenings_SameMonthPair(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("1001", "C1", domain.CategoryCorrectiveTV, "2025-03-09 08:00:00", "2025-03-10 08:00:00"),
		openOrder("1002", "C1", domain.CategoryCorrectiveTV, "2025-03-12 09:30:00"),
	}

	pairs := metrics.MatchReopenings(orders, nil, zap.NewNop())
	require.Len(t, pairs, 1)

	pair := pairs[0]
	assert.Equal(t, "1001", pair.Original.Code)
	assert.Equal(t, "1002", pair.Reopening.Code)
	assert.Equal(t, 49.5, pair.ElapsedHours)
	assert.Equal(t, 2, pair.ElapsedDays)
	assert.Equal(t, domain.CategoryCorrectiveTV, pair.OriginalCategory)
}

func TestMatchReopenings_ElapsedInvariants(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("2001", "C1", domain.CategoryMainPointFiber, "2025-05-01 10:00:00", "2025-05-02 10:00:00"),
		openOrder("2002", "C1", domain.CategoryMainPointFiber, "2025-05-02 10:07:00"),
		finalizedOrder("2003", "C2", domain.CategoryCorrectiveFiber, "2025-05-03 10:00:00", "2025-05-05 18:00:00"),
		openOrder("2004", "C2", domain.CategoryCorrectiveFiber, "2025-05-29 06:00:00"),
	}

	pairs := metrics.MatchReopenings(orders, nil, zap.NewNop())
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		assert.GreaterOrEqual(t, p.ElapsedHours, 0.0)
		assert.Equal(t, int(math.Floor(p.ElapsedHours/24)), p.ElapsedDays)
	}
}

func TestMatchReopenings_MonthBoundary(t *testing.T) {
	t.Run("last day to first of next month matches", func(t *testing.T) {
		orders := []domain.ServiceOrder{
			finalizedOrder("3001", "C1", domain.CategoryCorrectiveTV, "2025-03-30 08:00:00", "2025-03-31 22:00:00"),
			openOrder("3002", "C1", domain.CategoryCorrectiveTV, "2025-04-01 06:00:00"),
		}
		pairs := metrics.MatchReopenings(orders, nil, zap.NewNop())
		require.Len(t, pairs, 1)
		assert.Equal(t, 8.0, pairs[0].ElapsedHours)
	})

	t.Run("non-last-day month crossing does not match", func(t *testing.T) {
		orders := []domain.ServiceOrder{
			finalizedOrder("3003", "C1", domain.CategoryCorrectiveTV, "2025-03-29 08:00:00", "2025-03-30 22:00:00"),
			openOrder("3004", "C1", domain.CategoryCorrectiveTV, "2025-04-01 06:00:00"),
		}
		assert.Empty(t, metrics.MatchReopenings(orders, nil, zap.NewNop()))
	})

	t.Run("day two of next month never matches", func(t *testing.T) {
		orders := []domain.ServiceOrder{
			finalizedOrder("3005", "C1", domain.CategoryCorrectiveTV, "2025-03-30 08:00:00", "2025-03-31 22:00:00"),
			openOrder("3006", "C1", domain.CategoryCorrectiveTV, "2025-04-02 06:00:00"),
		}
		assert.Empty(t, metrics.MatchReopenings(orders, nil, zap.NewNop()))
	})
}

func TestMatchReopenings_CustomerCancelledNeverOriginal(t *testing.T) {
	original := finalizedOrder("4001", "C1", domain.CategoryCorrectiveTV, "2025-03-09 08:00:00", "2025-03-10 08:00:00")
	original.ActionTaken = domain.ActionCustomerCancelled
	orders := []domain.ServiceOrder{
		original,
		openOrder("4002", "C1", domain.CategoryCorrectiveTV, "2025-03-12 09:00:00"),
	}

	pairs := metrics.MatchReopenings(orders, nil, zap.NewNop())
	for _, p := range pairs {
		assert.NotEqual(t, "4001", p.Original.Code)
	}
	assert.Empty(t, pairs)
}

func TestMatchReopenings_FirstMatchWinsAndConsumes(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("5001", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00"),
		finalizedOrder("5002", "C1", domain.CategoryCorrectiveTV, "2025-03-03 08:00:00", "2025-03-04 08:00:00"),
		openOrder("5003", "C1", domain.CategoryCorrectiveTV, "2025-03-05 08:00:00"),
	}

	pairs := metrics.MatchReopenings(orders, nil, zap.NewNop())
	// 5002 itself reopens 5001; 5003 then reopens 5002. Each reopening is
	// consumed once and each original pairs at most once.
	require.Len(t, pairs, 2)
	assert.Equal(t, "5001", pairs[0].Original.Code)
	assert.Equal(t, "5002", pairs[0].Reopening.Code)
	assert.Equal(t, "5002", pairs[1].Original.Code)
	assert.Equal(t, "5003", pairs[1].Reopening.Code)
}

func TestMatchReopenings_GroupsByCustomerAndCategory(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("6001", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00"),
		openOrder("6002", "C2", domain.CategoryCorrectiveTV, "2025-03-03 08:00:00"),
		openOrder("6003", "C1", domain.CategoryCorrectiveFiber, "2025-03-03 08:00:00"),
	}
	assert.Empty(t, metrics.MatchReopenings(orders, nil, zap.NewNop()))
}

func TestMatchReopenings_NonReopenableCategoryIgnored(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("6101", "C1", domain.CategoryPrestacao, "2025-03-01 08:00:00", "2025-03-02 08:00:00"),
		openOrder("6102", "C1", domain.CategoryPrestacao, "2025-03-03 08:00:00"),
	}
	assert.Empty(t, metrics.MatchReopenings(orders, nil, zap.NewNop()))
}

func TestMatchReopenings_Filter(t *testing.T) {
	orders := []domain.ServiceOrder{
		finalizedOrder("7001", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00"),
		openOrder("7002", "C1", domain.CategoryCorrectiveTV, "2025-03-05 08:00:00"),
		finalizedOrder("7003", "C2", domain.CategoryCorrectiveFiber, "2025-04-01 08:00:00", "2025-04-02 08:00:00"),
		openOrder("7004", "C2", domain.CategoryCorrectiveFiber, "2025-04-05 08:00:00"),
	}

	t.Run("by period", func(t *testing.T) {
		pairs := metrics.MatchReopenings(orders, &metrics.ReopeningFilter{Month: 4, Year: 2025}, zap.NewNop())
		require.Len(t, pairs, 1)
		assert.Equal(t, "7003", pairs[0].Original.Code)
	})

	t.Run("by category", func(t *testing.T) {
		filter := &metrics.ReopeningFilter{
			Categories: map[domain.ServiceCategory]bool{domain.CategoryCorrectiveTV: true},
		}
		pairs := metrics.MatchReopenings(orders, filter, zap.NewNop())
		require.Len(t, pairs, 1)
		assert.Equal(t, "7001", pairs[0].Original.Code)
	})
}

func TestMatchReopenings_UnparseableDateSkipped(t *testing.T) {
	broken := openOrder("8002", "C1", domain.CategoryCorrectiveTV, "2025-03-05 08:00:00")
	broken.CreatedAt = time.Time{}
	orders := []domain.ServiceOrder{
		finalizedOrder("8001", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00", "2025-03-02 08:00:00"),
		broken,
	}
	assert.Empty(t, metrics.MatchReopenings(orders, nil, zap.NewNop()))
}

func TestMatchReopenings_CancelledOriginalUsesCreationFallbackForOrdering(t *testing.T) {
	// A cancelled order without finalization sorts by creation time but can
	// never be an original itself.
	cancelled := openOrder("9001", "C1", domain.CategoryCorrectiveTV, "2025-03-01 08:00:00")
	cancelled.Status = domain.OrderStatusCancelled
	orders := []domain.ServiceOrder{
		cancelled,
		finalizedOrder("9002", "C1", domain.CategoryCorrectiveTV, "2025-03-02 08:00:00", "2025-03-03 08:00:00"),
		openOrder("9003", "C1", domain.CategoryCorrectiveTV, "2025-03-04 08:00:00"),
	}
	pairs := metrics.MatchReopenings(orders, nil, zap.NewNop())
	require.Len(t, pairs, 1)
	assert.Equal(t, "9002", pairs[0].Original.Code)
	assert.Equal(t, "9003", pairs[0].Reopening.Code)
}
