package importer

import (
	"fmt"
	"strings"

	"github.com/sysgest/insights-api/internal/domain"
	"go.uber.org/zap"
)

// ParsePayments decodes the payment/collections feed.
func ParsePayments(table *Table, log *zap.Logger) (*Result[domain.PaymentRecord], error) {
	idx := indexColumns(table.Headers)
	if err := requireColumns(idx, PaymentColumns); err != nil {
		return nil, err
	}

	res := &Result[domain.PaymentRecord]{}
	for n, row := range table.Rows {
		record, err := parsePaymentRow(idx, row)
		if err != nil {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("linha %d ignorada: %v", n+2, err))
			log.Warn("payment row skipped", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		res.Items = append(res.Items, *record)
	}
	return res, nil
}

func parsePaymentRow(idx columnIndex, row []string) (*domain.PaymentRecord, error) {
	proposal := idx.get(row, "Número da Proposta")
	if proposal == "" {
		return nil, fmt.Errorf("sem número de proposta")
	}

	step, err := parseIntField(idx.get(row, "Passo de Cobrança"))
	if err != nil {
		return nil, err
	}

	status := strings.ToUpper(idx.get(row, "Status do Pacote"))
	switch status {
	case domain.PackageStatusNormal, domain.PackageStatusSuspended,
		domain.PackageStatusCancelled, domain.PackageStatusNoCharge:
	case "":
		return nil, fmt.Errorf("sem status do pacote")
	default:
		return nil, fmt.Errorf("status de pacote inválido %q", status)
	}

	record := &domain.PaymentRecord{
		ProposalNumber: proposal,
		Step:           step,
		PackageStatus:  status,
	}

	if t, ok, err := parseDate(idx.get(row, "Data de Cobrança")); err != nil {
		return nil, err
	} else if ok {
		record.CollectionAt = &t
	}
	if t, ok, err := parseDate(idx.get(row, "Vencimento da Fatura")); err != nil {
		return nil, err
	} else if ok {
		record.DueAt = &t
	}

	return record, nil
}

// DeduplicatePayments keeps the last occurrence per proposal number.
func DeduplicatePayments(records []domain.PaymentRecord) []domain.PaymentRecord {
	pos := make(map[string]int, len(records))
	out := make([]domain.PaymentRecord, 0, len(records))
	for _, r := range records {
		if i, seen := pos[r.ProposalNumber]; seen {
			out[i] = r
			continue
		}
		pos[r.ProposalNumber] = len(out)
		out = append(out, r)
	}
	return out
}
