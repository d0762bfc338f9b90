package jobs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/jobs"
	"go.uber.org/zap"
)

type fetcherStub struct {
	orders    []domain.ServiceOrder
	sales     []domain.Sale
	salesErr  error
	sinceSeen []time.Time
}

func (f *fetcherStub) FetchOrders(ctx context.Context, since time.Time) ([]domain.ServiceOrder, error) {
	f.sinceSeen = append(f.sinceSeen, since)
	return f.orders, nil
}

func (f *fetcherStub) FetchSales(ctx context.Context, since time.Time) ([]domain.Sale, error) {
	return f.sales, f.salesErr
}

func TestWarehouseSyncJob_Run(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())
	fetcher := &fetcherStub{
		orders: []domain.ServiceOrder{{
			Code: "501", ItemCode: "1", CustomerCode: "C9", CustomerName: "Rita",
			TechnicianID: "T9", Category: domain.CategoryCorrectiveTV,
			Status: domain.OrderStatusOpen, CreatedAt: time.Now(),
		}},
		sales: []domain.Sale{{
			ProposalNumber: "P-900", SellerID: "V9", ProductGroup: "POS Pago",
			Family: domain.FamilyPOS, Value: 99.9,
		}},
	}

	job := jobs.NewWarehouseSyncJob(fetcher, store, zap.NewNop(), time.Minute)
	job.Run()

	counts := store.Counts()
	assert.Equal(t, 1, counts[domain.FeedOrders])
	assert.Equal(t, 1, counts[domain.FeedSales])

	// First run backfills, second run resumes from the previous watermark.
	job.Run()
	require.Len(t, fetcher.sinceSeen, 2)
	assert.True(t, fetcher.sinceSeen[1].After(fetcher.sinceSeen[0]))
}

func TestWarehouseSyncJob_SalesFailureKeepsOrders(t *testing.T) {
	store := dataset.NewStore(zap.NewNop())
	fetcher := &fetcherStub{
		orders: []domain.ServiceOrder{{
			Code: "502", ItemCode: "1", CustomerCode: "C9",
			Category: domain.CategoryCorrectiveTV, Status: domain.OrderStatusOpen,
			CreatedAt: time.Now(),
		}},
		salesErr: errors.New("connection reset"),
	}

	job := jobs.NewWarehouseSyncJob(fetcher, store, zap.NewNop(), time.Minute)
	job.Run()

	counts := store.Counts()
	assert.Equal(t, 1, counts[domain.FeedOrders])
	assert.Equal(t, 0, counts[domain.FeedSales])

	// Watermark must not advance on failure, so the next run retries the window.
	job.Run()
	require.Len(t, fetcher.sinceSeen, 2)
	assert.WithinDuration(t, fetcher.sinceSeen[0], fetcher.sinceSeen[1], time.Second)
}