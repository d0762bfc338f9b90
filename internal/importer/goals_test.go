package importer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysgest/insights-api/internal/importer"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeSheet(t *testing.T, f *excelize.File, sheet string, rows [][]interface{}) {
	t.Helper()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
}

func goalsWorkbook(t *testing.T) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "VENDAS PERMANENCIA"))
	_, err := f.NewSheet("VENDAS META")
	require.NoError(t, err)
	_, err = f.NewSheet("METAS")
	require.NoError(t, err)

	saleHeader := []interface{}{
		"Número da Proposta", "ID Vendedor", "Nome Proprietário",
		"Agrupamento do Produto", "Produto Principal", "Valor",
		"Status da Proposta", "Data da Habilitação",
	}
	writeSheet(t, f, "VENDAS PERMANENCIA", [][]interface{}{
		saleHeader,
		{"P-100", "V1", "Lucas", "POS Pago", "Plano TV Top", "R$ 129,90", "Habilitada", "10/02/2025"},
		{"P-200", "V2", "Paula", "BL-DGO", "Fibra 500M", "89,90", "Habilitada", "15/02/2025"},
	})
	writeSheet(t, f, "VENDAS META", [][]interface{}{
		saleHeader,
		{"P-300", "V1", "Lucas", "POS Pago", "Plano TV Top", "99,90", "Habilitada", "20/02/2025"},
	})
	writeSheet(t, f, "METAS", [][]interface{}{
		{"ID Vendedor", "Vendedor", "Mês", "Ano", "Meta"},
		{"V1", "Lucas", "2", "2025", "30"},
		{"V2", "Paula", "13", "2025", "20"},
	})

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseGoalsWorkbook(t *testing.T) {
	buf := goalsWorkbook(t)

	sheets, err := importer.ReadWorkbook("metas.xlsx", buf)
	require.NoError(t, err)

	data, err := importer.ParseGoalsWorkbook(sheets, zap.NewNop())
	require.NoError(t, err)

	require.Len(t, data.PermanenceSales.Items, 2)
	assert.Equal(t, 129.9, data.PermanenceSales.Items[0].Value)
	require.Len(t, data.GoalSales.Items, 1)

	require.Len(t, data.Goals.Items, 1)
	assert.Equal(t, 1, data.Goals.Skipped, "month 13 row skipped")
	goal := data.Goals.Items[0]
	assert.Equal(t, "V1", goal.SellerID)
	assert.Equal(t, 2, goal.Month)
	assert.Equal(t, 2025, goal.Year)
	assert.Equal(t, 30.0, goal.Target)
}

func TestParseGoalsWorkbook_MissingSheets(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "METAS"))
	writeSheet(t, f, "METAS", [][]interface{}{
		{"ID Vendedor", "Vendedor", "Mês", "Ano", "Meta"},
	})
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	sheets, err := importer.ReadWorkbook("metas.xlsx", buf)
	require.NoError(t, err)

	_, err = importer.ParseGoalsWorkbook(sheets, zap.NewNop())
	require.Error(t, err)

	var missing *importer.MissingSheetsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"VENDAS META", "VENDAS PERMANENCIA"}, missing.Sheets)
}

func TestReadWorkbook_RejectsCSV(t *testing.T) {
	_, err := importer.ReadWorkbook("metas.csv", bytes.NewBufferString("a;b\n1;2\n"))
	assert.Error(t, err)
}
