package importer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Required column names per feed, as exported by the source system.
var (
	OrderColumns = []string{
		"Código OS", "Código Item", "Técnico", "Tipo de Serviço",
		"Subtipo de Serviço", "Motivo", "Código Cliente", "Cliente",
		"Status", "Data de Criação", "Data de Finalização", "Cidade", "Bairro",
	}
	SaleColumns = []string{
		"Número da Proposta", "ID Vendedor", "Nome Proprietário",
		"Agrupamento do Produto", "Produto Principal", "Valor",
		"Status da Proposta", "Data da Habilitação",
	}
	PaymentColumns = []string{
		"Número da Proposta", "Passo de Cobrança", "Data de Cobrança",
		"Vencimento da Fatura", "Status do Pacote",
	}
	GoalColumns = []string{"ID Vendedor", "Vendedor", "Mês", "Ano", "Meta"}
)

// Sheet names the goals workbook must carry.
var GoalSheets = []string{"VENDAS PERMANENCIA", "VENDAS META", "METAS"}

// MissingColumnsError aborts an import whose header row lacks required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("planilha sem as colunas obrigatórias: %s", strings.Join(e.Columns, ", "))
}

// MissingSheetsError aborts a goals import whose workbook lacks required sheets.
type MissingSheetsError struct {
	Sheets []string
}

func (e *MissingSheetsError) Error() string {
	return fmt.Sprintf("pasta de trabalho sem as abas obrigatórias: %s", strings.Join(e.Sheets, ", "))
}

// columnIndex maps normalized header names to their position.
type columnIndex map[string]int

func indexColumns(headers []string) columnIndex {
	idx := make(columnIndex, len(headers))
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, seen := idx[key]; !seen {
			idx[key] = i
		}
	}
	return idx
}

// requireColumns validates the header row against a required list, returning
// a MissingColumnsError naming every absent column.
func requireColumns(idx columnIndex, required []string) error {
	var missing []string
	for _, name := range required {
		if _, ok := idx[normalizeHeader(name)]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

func (idx columnIndex) get(row []string, name string) string {
	i, ok := idx[normalizeHeader(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func normalizeHeader(h string) string {
	return strings.ToUpper(strings.Join(strings.Fields(h), " "))
}

// dateLayouts are the formats the source feeds are known to emit.
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate tries every known feed layout. An empty value is not an error;
// it returns the zero time with ok=false.
func parseDate(value string) (time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("data inválida %q", value)
}

// parseMoney parses Brazilian-formatted currency values ("R$ 1.234,56").
func parseMoney(value string) (float64, error) {
	v := strings.TrimSpace(value)
	v = strings.TrimPrefix(v, "R$")
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	v = strings.ReplaceAll(v, ".", "")
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("valor inválido %q", value)
	}
	return f, nil
}

func parseIntField(value string) (int, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("número inválido %q", value)
	}
	return n, nil
}
