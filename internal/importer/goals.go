package importer

import (
	"fmt"
	"sort"

	"github.com/sysgest/insights-api/internal/domain"
	"go.uber.org/zap"
)

// GoalsData is the decoded goals workbook: two sales sheets plus the
// per-seller targets.
type GoalsData struct {
	PermanenceSales *Result[domain.Sale]
	GoalSales       *Result[domain.Sale]
	Goals           *Result[domain.SalesGoal]
}

// ParseGoalsWorkbook decodes the three required sheets of the goals upload.
// A workbook missing any of them aborts with a MissingSheetsError before any
// sheet is parsed.
func ParseGoalsWorkbook(sheets map[string]*Table, log *zap.Logger) (*GoalsData, error) {
	var missing []string
	for _, name := range GoalSheets {
		if _, ok := sheets[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &MissingSheetsError{Sheets: missing}
	}

	permanence, err := ParseSales(sheets["VENDAS PERMANENCIA"], log)
	if err != nil {
		return nil, fmt.Errorf("aba VENDAS PERMANENCIA: %w", err)
	}
	goalSales, err := ParseSales(sheets["VENDAS META"], log)
	if err != nil {
		return nil, fmt.Errorf("aba VENDAS META: %w", err)
	}
	goals, err := parseGoals(sheets["METAS"], log)
	if err != nil {
		return nil, fmt.Errorf("aba METAS: %w", err)
	}

	return &GoalsData{PermanenceSales: permanence, GoalSales: goalSales, Goals: goals}, nil
}

func parseGoals(table *Table, log *zap.Logger) (*Result[domain.SalesGoal], error) {
	idx := indexColumns(table.Headers)
	if err := requireColumns(idx, GoalColumns); err != nil {
		return nil, err
	}

	res := &Result[domain.SalesGoal]{}
	for n, row := range table.Rows {
		goal, err := parseGoalRow(idx, row)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("linha %d ignorada: %v", n+2, err))
			log.Warn("goal row skipped", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		res.Items = append(res.Items, *goal)
	}
	return res, nil
}

func parseGoalRow(idx columnIndex, row []string) (*domain.SalesGoal, error) {
	sellerID := idx.get(row, "ID Vendedor")
	if sellerID == "" {
		return nil, fmt.Errorf("sem id de vendedor")
	}

	month, err := parseIntField(idx.get(row, "Mês"))
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("mês inválido %d", month)
	}
	year, err := parseIntField(idx.get(row, "Ano"))
	if err != nil {
		return nil, err
	}
	if year < 2000 {
		return nil, fmt.Errorf("ano inválido %d", year)
	}
	target, err := parseMoney(idx.get(row, "Meta"))
	if err != nil {
		return nil, err
	}

	return &domain.SalesGoal{
		SellerID: sellerID,
		Seller:   idx.get(row, "Vendedor"),
		Month:    month,
		Year:     year,
		Target:   target,
		Category: idx.get(row, "Categoria"),
	}, nil
}
