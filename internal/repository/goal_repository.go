package repository

import (
	"context"

	"github.com/sysgest/insights-api/internal/domain"
	"gorm.io/gorm"
)

type GoalRepository struct {
	db *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// ReplaceAll swaps the stored goals for the ones in the latest workbook.
// Runs in a transaction so a failed import never leaves a half-written set.
func (r *GoalRepository) ReplaceAll(ctx context.Context, goals []domain.SalesGoal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.SalesGoal{}).Error; err != nil {
			return err
		}
		if len(goals) == 0 {
			return nil
		}
		return tx.Create(&goals).Error
	})
}

// ListAll loads every stored goal, newest period first. Used on startup to
// reseed the in-memory dataset.
func (r *GoalRepository) ListAll(ctx context.Context) ([]domain.SalesGoal, error) {
	var goals []domain.SalesGoal
	err := r.db.WithContext(ctx).Order("year DESC, month DESC, seller").Find(&goals).Error
	return goals, err
}
