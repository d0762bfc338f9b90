package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/importer"
	"github.com/sysgest/insights-api/internal/service"
	"github.com/sysgest/insights-api/internal/storage"
	"go.uber.org/zap"
)

type recorderStub struct {
	batches []*domain.ImportBatch
}

func (r *recorderStub) Create(ctx context.Context, batch *domain.ImportBatch) error {
	r.batches = append(r.batches, batch)
	return nil
}

func (r *recorderStub) List(ctx context.Context, page, pageSize int, feed string) ([]domain.ImportBatch, int64, error) {
	out := make([]domain.ImportBatch, 0, len(r.batches))
	for _, b := range r.batches {
		if feed == "" || string(b.Feed) == feed {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *recorderStub) LatestByFeed(ctx context.Context) ([]domain.ImportBatch, error) {
	latest := make(map[domain.ImportFeed]*domain.ImportBatch)
	for _, b := range r.batches {
		if cur, ok := latest[b.Feed]; !ok || b.CreatedAt.After(cur.CreatedAt) {
			latest[b.Feed] = b
		}
	}
	out := make([]domain.ImportBatch, 0, len(latest))
	for _, b := range latest {
		out = append(out, *b)
	}
	return out, nil
}

type goalWriterStub struct {
	goals []domain.SalesGoal
}

func (g *goalWriterStub) ReplaceAll(ctx context.Context, goals []domain.SalesGoal) error {
	g.goals = goals
	return nil
}

func newImportService(t *testing.T) (*service.ImportService, *dataset.Store, *recorderStub) {
	t.Helper()
	store := dataset.NewStore(zap.NewNop())
	recorder := &recorderStub{}
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	svc := service.NewImportService(
		store, recorder, &goalWriterStub{}, files,
		[]string{".xlsx", ".xls", ".csv"},
		zap.NewNop(),
	)
	return svc, store, recorder
}

const ordersUpload = `Código OS;Código Item;Técnico;Tipo de Serviço;Subtipo de Serviço;Motivo;Código Cliente;Cliente;Status;Data de Criação;Data de Finalização;Cidade;Bairro
1001;1;Carlos;Corretiva;TV;Sem sinal;C1;Maria;Finalizada;01/03/2025 08:00:00;02/03/2025 10:00:00;Salvador;Pituba
1002;1;Ana;Corretiva;TV;Sem sinal;C1;Maria;Aberta;05/03/2025 09:00:00;;Salvador;Pituba
`

func TestImport_Orders(t *testing.T) {
	svc, store, recorder := newImportService(t)

	res, err := svc.Import(context.Background(), domain.FeedOrders,
		"ordens.csv", "text/csv", strings.NewReader(ordersUpload), "ana@sysgest.com.br")
	require.NoError(t, err)

	assert.Equal(t, 2, res.RowCount)
	assert.Equal(t, 0, res.SkippedRows)
	assert.Equal(t, domain.ImportStatusCompleted, res.Status)

	snap := store.Snapshot()
	assert.Len(t, snap.RawOrders, 2)

	require.Len(t, recorder.batches, 1)
	batch := recorder.batches[0]
	assert.Equal(t, domain.FeedOrders, batch.Feed)
	assert.Equal(t, "ana@sysgest.com.br", batch.UploadedBy)
	assert.NotEmpty(t, batch.StoragePath, "upload must be archived")
}

func TestImport_MissingColumnsRecordsFailedBatch(t *testing.T) {
	svc, store, recorder := newImportService(t)

	_, err := svc.Import(context.Background(), domain.FeedOrders,
		"ordens.csv", "text/csv", strings.NewReader("Código OS;Técnico\n1;Carlos\n"), "")
	require.Error(t, err)

	var missing *importer.MissingColumnsError
	assert.ErrorAs(t, err, &missing)

	// nothing merged, but the rejected upload stays in the history
	assert.Empty(t, store.Snapshot().RawOrders)
	require.Len(t, recorder.batches, 1)
	assert.Equal(t, domain.ImportStatusFailed, recorder.batches[0].Status)
	assert.NotEmpty(t, recorder.batches[0].Error)
}

func TestImport_UnsupportedExtension(t *testing.T) {
	svc, _, recorder := newImportService(t)

	_, err := svc.Import(context.Background(), domain.FeedOrders,
		"ordens.txt", "text/plain", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, service.ErrUnsupportedFile)
	assert.Empty(t, recorder.batches)
}

func TestImport_ReimportIsIdempotent(t *testing.T) {
	svc, store, _ := newImportService(t)

	_, err := svc.Import(context.Background(), domain.FeedOrders,
		"ordens.csv", "text/csv", strings.NewReader(ordersUpload), "")
	require.NoError(t, err)
	_, err = svc.Import(context.Background(), domain.FeedOrders,
		"ordens.csv", "text/csv", strings.NewReader(ordersUpload), "")
	require.NoError(t, err)

	assert.Len(t, store.Snapshot().RawOrders, 2)
}

func TestParseFeed(t *testing.T) {
	feed, err := service.ParseFeed("orders")
	require.NoError(t, err)
	assert.Equal(t, domain.FeedOrders, feed)

	_, err = service.ParseFeed("contratos")
	assert.ErrorIs(t, err, service.ErrUnknownFeed)
}
