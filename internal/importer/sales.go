package importer

import (
	"fmt"

	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
	"go.uber.org/zap"
)

// ParseSales decodes the sales feed.
func ParseSales(table *Table, log *zap.Logger) (*Result[domain.Sale], error) {
	idx := indexColumns(table.Headers)
	if err := requireColumns(idx, SaleColumns); err != nil {
		return nil, err
	}

	res := &Result[domain.Sale]{}
	for n, row := range table.Rows {
		sale, err := parseSaleRow(idx, row)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("linha %d ignorada: %v", n+2, err))
			log.Warn("sale row skipped", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		res.Items = append(res.Items, *sale)
	}
	return res, nil
}

func parseSaleRow(idx columnIndex, row []string) (*domain.Sale, error) {
	proposal := idx.get(row, "Número da Proposta")
	if proposal == "" {
		return nil, fmt.Errorf("sem número de proposta")
	}

	habilitation, ok, err := parseDate(idx.get(row, "Data da Habilitação"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("sem data de habilitação")
	}

	value, err := parseMoney(idx.get(row, "Valor"))
	if err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		ProposalNumber:  proposal,
		SellerID:        idx.get(row, "ID Vendedor"),
		OwnerName:       idx.get(row, "Nome Proprietário"),
		ProductGroup:    idx.get(row, "Agrupamento do Produto"),
		ProductName:     idx.get(row, "Produto Principal"),
		Value:           value,
		Status:          idx.get(row, "Status da Proposta"),
		HabilitationAt:  habilitation,
		SecondaryOffers: idx.get(row, "Produtos Secundários"),
		PaymentMethod:   idx.get(row, "Forma de Pagamento"),
		City:            idx.get(row, "Cidade"),
		Neighborhood:    idx.get(row, "Bairro"),
	}
	sale.Family = metrics.FamilyFor(sale.ProductGroup)
	return sale, nil
}

// DeduplicateSales keeps the last occurrence per proposal number.
func DeduplicateSales(sales []domain.Sale) []domain.Sale {
	pos := make(map[string]int, len(sales))
	out := make([]domain.Sale, 0, len(sales))
	for _, s := range sales {
		if i, seen := pos[s.ProposalNumber]; seen {
			out[i] = s
			continue
		}
		pos[s.ProposalNumber] = len(out)
		out = append(out, s)
	}
	return out
}
