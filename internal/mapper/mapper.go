// Package mapper converts persistence and metric models into API DTOs.
package mapper

import (
	"time"

	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
)

func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		Active:    user.Active,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func ToUserDTOs(users []domain.User) []domain.UserDTO {
	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = ToUserDTO(&users[i])
	}
	return dtos
}

func ToImportBatchDTO(batch *domain.ImportBatch) domain.ImportBatchDTO {
	return domain.ImportBatchDTO{
		ID:          batch.ID,
		Feed:        batch.Feed,
		Filename:    batch.Filename,
		RowCount:    batch.RowCount,
		SkippedRows: batch.SkippedRows,
		Status:      batch.Status,
		Error:       batch.Error,
		UploadedBy:  batch.UploadedBy,
		CreatedAt:   batch.CreatedAt.Format(time.RFC3339),
	}
}

func ToImportBatchDTOs(batches []domain.ImportBatch) []domain.ImportBatchDTO {
	dtos := make([]domain.ImportBatchDTO, len(batches))
	for i := range batches {
		dtos[i] = ToImportBatchDTO(&batches[i])
	}
	return dtos
}

func ToReopeningPairDTO(pair *domain.ReopeningPair) domain.ReopeningPairDTO {
	dto := domain.ReopeningPairDTO{
		OriginalCode:     pair.Original.Code,
		ReopeningCode:    pair.Reopening.Code,
		Customer:         pair.Original.CustomerName,
		CustomerCode:     pair.Original.CustomerCode,
		Technician:       pair.Original.TechnicianName,
		City:             pair.Original.City,
		Neighborhood:     pair.Original.Neighborhood,
		OriginalCategory: pair.OriginalCategory,
		ReopenedAt:       pair.Reopening.CreatedAt.Format(time.RFC3339),
		ElapsedHours:     pair.ElapsedHours,
		ElapsedDays:      pair.ElapsedDays,
	}
	if pair.Original.FinalizedAt != nil {
		dto.FinalizedAt = pair.Original.FinalizedAt.Format(time.RFC3339)
	}
	return dto
}

func ToCategoryComplianceDTO(c *metrics.CategoryCompliance) domain.CategoryComplianceDTO {
	return domain.CategoryComplianceDTO{
		Category:     c.Category,
		GoalHours:    c.GoalHours,
		Finalized:    c.Finalized,
		WithinGoal:   c.WithinGoal,
		Compliance:   c.Compliance,
		AverageHours: c.AverageHours,
	}
}

func ToTechnicianRankDTO(r *metrics.TechnicianRank) domain.TechnicianRankDTO {
	return domain.TechnicianRankDTO{
		Rank:           r.Rank,
		TechnicianID:   r.TechnicianID,
		TechnicianName: r.TechnicianName,
		Finalized:      r.Finalized,
		Reopenings:     r.Reopenings,
		ReopeningRate:  r.ReopeningRate,
	}
}
