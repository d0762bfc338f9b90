package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sysgest/insights-api/internal/domain"
	"go.uber.org/zap"
)

// WarehouseSyncJobName is the name of the warehouse sync job.
const WarehouseSyncJobName = "warehouse_sync"

// DefaultBackfillWindow bounds the first pull after startup. Subsequent
// pulls only fetch rows newer than the previous run, minus a one hour
// overlap so late-arriving updates are not missed between runs.
const (
	DefaultBackfillWindow = 90 * 24 * time.Hour
	syncOverlap           = time.Hour
)

// WarehouseFetcher pulls rows from the operator's warehouse views.
// Satisfied by warehouse.Client; tests substitute a stub.
type WarehouseFetcher interface {
	FetchOrders(ctx context.Context, since time.Time) ([]domain.ServiceOrder, error)
	FetchSales(ctx context.Context, since time.Time) ([]domain.Sale, error)
}

// DatasetMerger receives the fetched rows. Satisfied by dataset.Store.
type DatasetMerger interface {
	MergeOrders(incoming []domain.ServiceOrder) int
	MergeSales(incoming []domain.Sale) int
}

// WarehouseSyncJob periodically pulls service orders and sales from the
// warehouse and merges them into the in-memory dataset, so panels stay
// current between spreadsheet uploads.
type WarehouseSyncJob struct {
	fetcher WarehouseFetcher
	dataset DatasetMerger
	logger  *zap.Logger
	timeout time.Duration

	mu       sync.Mutex
	lastSync time.Time
}

// NewWarehouseSyncJob creates a new warehouse sync job.
// The timeout controls how long one pull is allowed to run.
func NewWarehouseSyncJob(fetcher WarehouseFetcher, dataset DatasetMerger, logger *zap.Logger, timeout time.Duration) *WarehouseSyncJob {
	return &WarehouseSyncJob{
		fetcher: fetcher,
		dataset: dataset,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one warehouse pull. Called by the scheduler according to
// the configured cron expression.
func (j *WarehouseSyncJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	since := j.sinceWatermark(start)

	orders, err := j.fetcher.FetchOrders(ctx, since)
	if err != nil {
		j.logger.Error("warehouse order pull failed",
			zap.Error(err),
			zap.Time("since", since),
			zap.Duration("duration", time.Since(start)))
		return
	}
	mergedOrders := j.dataset.MergeOrders(orders)

	sales, err := j.fetcher.FetchSales(ctx, since)
	if err != nil {
		// Orders already landed; keep them and retry sales next run.
		j.logger.Error("warehouse sales pull failed",
			zap.Error(err),
			zap.Time("since", since),
			zap.Duration("duration", time.Since(start)))
		return
	}
	mergedSales := j.dataset.MergeSales(sales)

	j.mu.Lock()
	j.lastSync = start
	j.mu.Unlock()

	j.logger.Info("warehouse sync completed",
		zap.Time("since", since),
		zap.Int("orders_fetched", len(orders)),
		zap.Int("orders_total", mergedOrders),
		zap.Int("sales_fetched", len(sales)),
		zap.Int("sales_total", mergedSales),
		zap.Duration("duration", time.Since(start)))
}

func (j *WarehouseSyncJob) sinceWatermark(now time.Time) time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.lastSync.IsZero() {
		return now.Add(-DefaultBackfillWindow)
	}
	return j.lastSync.Add(-syncOverlap)
}

// RegisterWarehouseSyncJob registers the warehouse sync job with the
// scheduler. If runStartupSync is true the initial backfill pull runs
// immediately in a background goroutine so it doesn't block API startup.
func RegisterWarehouseSyncJob(
	scheduler *Scheduler,
	fetcher WarehouseFetcher,
	dataset DatasetMerger,
	logger *zap.Logger,
	cronExpr string,
	timeout time.Duration,
	runStartupSync bool,
) error {
	job := NewWarehouseSyncJob(fetcher, dataset, logger, timeout)

	if runStartupSync {
		go job.Run()
	}

	return scheduler.AddJob(WarehouseSyncJobName, cronExpr, job.Run)
}
