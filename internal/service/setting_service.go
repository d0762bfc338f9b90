package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingService stores per-user dashboard preferences (visible columns,
// saved filters) as opaque key/value pairs.
type SettingService struct {
	settingRepo *repository.SettingRepository
	logger      *zap.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, logger *zap.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		logger:      logger,
	}
}

func (s *SettingService) Get(ctx context.Context, userID uuid.UUID, key string) (*domain.Setting, error) {
	setting, err := s.settingRepo.Get(ctx, userID, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}

func (s *SettingService) Upsert(ctx context.Context, userID uuid.UUID, key, value string) (*domain.Setting, error) {
	if key == "" {
		return nil, ErrInvalidInput
	}
	setting := &domain.Setting{
		UserID: userID,
		Key:    key,
		Value:  value,
	}
	if err := s.settingRepo.Upsert(ctx, setting); err != nil {
		return nil, fmt.Errorf("failed to save setting: %w", err)
	}
	return setting, nil
}

func (s *SettingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Setting, error) {
	settings, err := s.settingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}

func (s *SettingService) Delete(ctx context.Context, userID uuid.UUID, key string) error {
	if err := s.settingRepo.Delete(ctx, userID, key); err != nil {
		return fmt.Errorf("failed to delete setting: %w", err)
	}
	return nil
}
