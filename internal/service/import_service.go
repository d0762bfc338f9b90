package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/importer"
	"github.com/sysgest/insights-api/internal/mapper"
	"github.com/sysgest/insights-api/internal/storage"
	"go.uber.org/zap"
)

// BatchRecorder persists import batch audit rows. Satisfied by
// repository.ImportBatchRepository; tests substitute an in-memory recorder.
type BatchRecorder interface {
	Create(ctx context.Context, batch *domain.ImportBatch) error
	List(ctx context.Context, page, pageSize int, feed string) ([]domain.ImportBatch, int64, error)
	LatestByFeed(ctx context.Context) ([]domain.ImportBatch, error)
}

// GoalWriter persists parsed seller goals. Satisfied by repository.GoalRepository.
type GoalWriter interface {
	ReplaceAll(ctx context.Context, goals []domain.SalesGoal) error
}

// ImportService runs the spreadsheet ingestion pipeline: archive the upload,
// decode and validate it, merge the rows into the dataset, and record the
// batch outcome.
type ImportService struct {
	store             *dataset.Store
	batches           BatchRecorder
	goals             GoalWriter
	files             storage.Storage
	allowedExtensions []string
	logger            *zap.Logger
}

func NewImportService(
	store *dataset.Store,
	batches BatchRecorder,
	goals GoalWriter,
	files storage.Storage,
	allowedExtensions []string,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		store:             store,
		batches:           batches,
		goals:             goals,
		files:             files,
		allowedExtensions: allowedExtensions,
		logger:            logger,
	}
}

// ParseFeed resolves a URL path segment into an import feed.
func ParseFeed(name string) (domain.ImportFeed, error) {
	switch domain.ImportFeed(strings.ToLower(name)) {
	case domain.FeedOrders:
		return domain.FeedOrders, nil
	case domain.FeedSales:
		return domain.FeedSales, nil
	case domain.FeedPayments:
		return domain.FeedPayments, nil
	case domain.FeedGoals:
		return domain.FeedGoals, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFeed, name)
	}
}

// Import processes one uploaded spreadsheet for the given feed.
// The batch row is written even when parsing fails, so rejected uploads stay
// visible in the history.
func (s *ImportService) Import(
	ctx context.Context,
	feed domain.ImportFeed,
	filename, contentType string,
	data io.Reader,
	uploadedBy string,
) (*domain.ImportResultDTO, error) {
	if !s.extensionAllowed(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Ext(filename))
	}

	// The upload is both archived and parsed, so buffer it once.
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(data); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	batch := &domain.ImportBatch{
		Feed:       feed,
		Filename:   filename,
		UploadedBy: uploadedBy,
	}

	storagePath, _, err := s.files.Upload(ctx, string(feed), filename, contentType, bytes.NewReader(buf.Bytes()))
	if err != nil {
		// Archiving is best-effort: a storage outage must not block the import.
		s.logger.Warn("failed to archive upload",
			zap.String("feed", string(feed)),
			zap.String("filename", filename),
			zap.Error(err),
		)
	} else {
		batch.StoragePath = storagePath
	}

	rowCount, skipped, warnings, parseErr := s.apply(ctx, feed, filename, buf.Bytes())

	batch.RowCount = rowCount
	batch.SkippedRows = skipped
	if parseErr != nil {
		batch.Status = domain.ImportStatusFailed
		batch.Error = parseErr.Error()
	} else {
		batch.Status = domain.ImportStatusCompleted
	}

	if err := s.batches.Create(ctx, batch); err != nil {
		s.logger.Error("failed to record import batch", zap.Error(err))
		if parseErr == nil {
			return nil, fmt.Errorf("failed to record import batch: %w", err)
		}
	}

	if parseErr != nil {
		s.logger.Warn("import rejected",
			zap.String("feed", string(feed)),
			zap.String("filename", filename),
			zap.Error(parseErr),
		)
		return nil, parseErr
	}

	s.logger.Info("import completed",
		zap.String("feed", string(feed)),
		zap.String("filename", filename),
		zap.Int("rows", rowCount),
		zap.Int("skipped", skipped),
	)

	return &domain.ImportResultDTO{
		BatchID:     batch.ID,
		Feed:        feed,
		Filename:    filename,
		RowCount:    rowCount,
		SkippedRows: skipped,
		Warnings:    warnings,
		Status:      batch.Status,
	}, nil
}

// apply decodes the buffered upload and merges it into the dataset.
func (s *ImportService) apply(ctx context.Context, feed domain.ImportFeed, filename string, raw []byte) (rows, skipped int, warnings []string, err error) {
	switch feed {
	case domain.FeedOrders:
		table, err := importer.ReadTable(filename, bytes.NewReader(raw))
		if err != nil {
			return 0, 0, nil, err
		}
		res, err := importer.ParseOrders(table, s.logger)
		if err != nil {
			return 0, 0, nil, err
		}
		items := importer.DeduplicateOrders(res.Items)
		s.store.MergeOrders(items)
		return len(items), res.Skipped, res.Warnings, nil

	case domain.FeedSales:
		table, err := importer.ReadTable(filename, bytes.NewReader(raw))
		if err != nil {
			return 0, 0, nil, err
		}
		res, err := importer.ParseSales(table, s.logger)
		if err != nil {
			return 0, 0, nil, err
		}
		items := importer.DeduplicateSales(res.Items)
		s.store.MergeSales(items)
		return len(items), res.Skipped, res.Warnings, nil

	case domain.FeedPayments:
		table, err := importer.ReadTable(filename, bytes.NewReader(raw))
		if err != nil {
			return 0, 0, nil, err
		}
		res, err := importer.ParsePayments(table, s.logger)
		if err != nil {
			return 0, 0, nil, err
		}
		items := importer.DeduplicatePayments(res.Items)
		s.store.MergePayments(items)
		return len(items), res.Skipped, res.Warnings, nil

	case domain.FeedGoals:
		sheets, err := importer.ReadWorkbook(filename, bytes.NewReader(raw))
		if err != nil {
			return 0, 0, nil, err
		}
		data, err := importer.ParseGoalsWorkbook(sheets, s.logger)
		if err != nil {
			return 0, 0, nil, err
		}
		total := s.store.ReplaceGoals(data)
		if err := s.goals.ReplaceAll(ctx, data.Goals.Items); err != nil {
			return 0, 0, nil, fmt.Errorf("failed to persist goals: %w", err)
		}
		skipped := data.PermanenceSales.Skipped + data.GoalSales.Skipped + data.Goals.Skipped
		warnings := append(append(data.PermanenceSales.Warnings, data.GoalSales.Warnings...), data.Goals.Warnings...)
		return total, skipped, warnings, nil

	default:
		return 0, 0, nil, fmt.Errorf("%w: %s", ErrUnknownFeed, feed)
	}
}

// History lists past import batches, newest first.
func (s *ImportService) History(ctx context.Context, page, pageSize int, feed string) ([]domain.ImportBatchDTO, int64, error) {
	batches, total, err := s.batches.List(ctx, page, pageSize, feed)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list import batches: %w", err)
	}
	return mapper.ToImportBatchDTOs(batches), total, nil
}

// Latest reports the most recent batch per feed, so clients can show how
// fresh each collection is.
func (s *ImportService) Latest(ctx context.Context) ([]domain.ImportBatchDTO, error) {
	batches, err := s.batches.LatestByFeed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest batches: %w", err)
	}
	return mapper.ToImportBatchDTOs(batches), nil
}

func (s *ImportService) extensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range s.allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
