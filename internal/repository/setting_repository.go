package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sysgest/insights-api/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

func (r *SettingRepository) Get(ctx context.Context, userID uuid.UUID, key string) (*domain.Setting, error) {
	var setting domain.Setting
	err := r.db.WithContext(ctx).Where("user_id = ? AND key = ?", userID, key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert creates the setting or overwrites its value if the (user, key)
// pair already exists.
func (r *SettingRepository) Upsert(ctx context.Context, setting *domain.Setting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
}

func (r *SettingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Setting, error) {
	var settings []domain.Setting
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("key").Find(&settings).Error
	return settings, err
}

func (r *SettingRepository) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND key = ?", userID, key).Delete(&domain.Setting{}).Error
}
