package importer

import (
	"fmt"
	"strings"

	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
	"go.uber.org/zap"
)

// Result carries a parsed collection plus per-row diagnostics.
type Result[T any] struct {
	Items    []T
	Skipped  int
	Warnings []string
}

// ParseOrders decodes the service-order feed. Rows with unparseable dates or
// without an order code are skipped and reported, never fatal.
func ParseOrders(table *Table, log *zap.Logger) (*Result[domain.ServiceOrder], error) {
	idx := indexColumns(table.Headers)
	if err := requireColumns(idx, OrderColumns); err != nil {
		return nil, err
	}

	res := &Result[domain.ServiceOrder]{}
	for n, row := range table.Rows {
		order, err := parseOrderRow(idx, row)
		if err != nil {
			res.Skipped++
			warn := fmt.Sprintf("linha %d ignorada: %v", n+2, err)
			res.Warnings = append(res.Warnings, warn)
			log.Warn("order row skipped", zap.Int("row", n+2), zap.Error(err))
			continue
		}
		res.Items = append(res.Items, *order)
	}
	return res, nil
}

func parseOrderRow(idx columnIndex, row []string) (*domain.ServiceOrder, error) {
	code := idx.get(row, "Código OS")
	if code == "" {
		return nil, fmt.Errorf("sem código de OS")
	}

	created, ok, err := parseDate(idx.get(row, "Data de Criação"))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("sem data de criação")
	}

	order := &domain.ServiceOrder{
		Code:           code,
		ItemCode:       idx.get(row, "Código Item"),
		TechnicianID:   idx.get(row, "ID Técnico"),
		TechnicianName: idx.get(row, "Técnico"),
		ServiceType:    idx.get(row, "Tipo de Serviço"),
		ServiceSubtype: idx.get(row, "Subtipo de Serviço"),
		Reason:         idx.get(row, "Motivo"),
		CustomerCode:   idx.get(row, "Código Cliente"),
		CustomerName:   idx.get(row, "Cliente"),
		Status:         normalizeStatus(idx.get(row, "Status")),
		CreatedAt:      created,
		City:           idx.get(row, "Cidade"),
		Neighborhood:   idx.get(row, "Bairro"),
		SiteInfo:       idx.get(row, "Info do Endereço"),
		ActionTaken:    idx.get(row, "Ação Tomada"),
	}
	if order.ItemCode == "" {
		order.ItemCode = "1"
	}
	if order.TechnicianID == "" {
		order.TechnicianID = order.TechnicianName
	}
	order.Category = metrics.CategoryFor(order.ServiceType, order.ServiceSubtype)

	if fin, ok, err := parseDate(idx.get(row, "Data de Finalização")); err != nil {
		return nil, err
	} else if ok {
		order.FinalizedAt = &fin
	}

	order.Materials = parseMaterials(idx.get(row, "Materiais"))
	return order, nil
}

func normalizeStatus(value string) domain.OrderStatus {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "FINALIZADA", "FINALIZADO", "CONCLUÍDA", "CONCLUIDA":
		return domain.OrderStatusFinalized
	case "CANCELADA", "CANCELADO":
		return domain.OrderStatusCancelled
	default:
		return domain.OrderStatusOpen
	}
}

// parseMaterials decodes the optional inline bill of materials, encoded by
// the export as "NAME=QTY; NAME=QTY". Semicolon-delimited CSV exports quote
// the field so the list separator survives. Unreadable entries are dropped.
func parseMaterials(value string) []domain.Material {
	if value == "" {
		return nil
	}
	var materials []domain.Material
	for _, part := range strings.Split(value, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, qty := part, 1.0
		if i := strings.IndexByte(part, '='); i >= 0 {
			name = strings.TrimSpace(part[:i])
			if q, err := parseMoney(part[i+1:]); err == nil && q > 0 {
				qty = q
			}
		}
		if name == "" {
			continue
		}
		materials = append(materials, domain.Material{Name: name, Quantity: qty})
	}
	return materials
}

// DeduplicateOrders keeps the last occurrence of every (order code, item
// code) pair, preserving first-seen ordering. Re-imports replace rows
// instead of double counting them.
func DeduplicateOrders(orders []domain.ServiceOrder) []domain.ServiceOrder {
	type key struct{ code, item string }
	pos := make(map[key]int, len(orders))
	out := make([]domain.ServiceOrder, 0, len(orders))
	for _, o := range orders {
		k := key{code: o.Code, item: o.ItemCode}
		if i, seen := pos[k]; seen {
			out[i] = o
			continue
		}
		pos[k] = len(out)
		out = append(out, o)
	}
	return out
}
