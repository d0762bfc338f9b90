package repository

import (
	"context"

	"github.com/sysgest/insights-api/internal/domain"
	"gorm.io/gorm"
)

type ImportBatchRepository struct {
	db *gorm.DB
}

func NewImportBatchRepository(db *gorm.DB) *ImportBatchRepository {
	return &ImportBatchRepository{db: db}
}

func (r *ImportBatchRepository) Create(ctx context.Context, batch *domain.ImportBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *ImportBatchRepository) List(ctx context.Context, page, pageSize int, feed string) ([]domain.ImportBatch, int64, error) {
	var batches []domain.ImportBatch
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.ImportBatch{})
	if feed != "" {
		query = query.Where("feed = ?", feed)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&batches).Error

	return batches, total, err
}

// LatestByFeed returns the most recent batch per feed, so clients can show
// dataset freshness.
func (r *ImportBatchRepository) LatestByFeed(ctx context.Context) ([]domain.ImportBatch, error) {
	var batches []domain.ImportBatch
	err := r.db.WithContext(ctx).
		Raw(`SELECT b.* FROM import_batches b
		     INNER JOIN (
		         SELECT feed, MAX(created_at) AS created_at
		         FROM import_batches GROUP BY feed
		     ) latest ON latest.feed = b.feed AND latest.created_at = b.created_at`).
		Scan(&batches).Error
	return batches, err
}
