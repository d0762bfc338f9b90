package service

import (
	"time"

	"github.com/sysgest/insights-api/internal/dataset"
	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/mapper"
	"github.com/sysgest/insights-api/internal/metrics"
	"go.uber.org/zap"
)

// DashboardService computes the analytics panels from the current dataset.
// Every call recomputes from a fresh snapshot, so panels always reflect the
// latest imports.
type DashboardService struct {
	store  *dataset.Store
	logger *zap.Logger
}

func NewDashboardService(store *dataset.Store, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		store:  store,
		logger: logger,
	}
}

// Reopenings builds the reopening pairs panel for the given filter.
func (s *DashboardService) Reopenings(filter *metrics.ReopeningFilter) *domain.ReopeningPanelDTO {
	snap := s.store.Snapshot()
	pairs := metrics.MatchReopenings(snap.Orders, filter, s.logger)

	panel := &domain.ReopeningPanelDTO{
		Pairs:        make([]domain.ReopeningPairDTO, 0, len(pairs)),
		ByCategory:   make(map[domain.ServiceCategory]int),
		ByTechnician: make(map[string]int),
		ByCity:       make(map[string]int),
		RatePerCat:   make(map[domain.ServiceCategory]domain.Ratio),
	}

	for i := range pairs {
		p := &pairs[i]
		panel.Pairs = append(panel.Pairs, mapper.ToReopeningPairDTO(p))
		panel.ByCategory[p.OriginalCategory]++
		panel.ByTechnician[p.Original.TechnicianName]++
		panel.ByCity[p.Original.City]++
	}
	panel.TotalReopened = len(pairs)

	// Base is every finalized order of a reopenable category in the period.
	baseByCat := make(map[domain.ServiceCategory]int)
	for i := range snap.Orders {
		o := &snap.Orders[i]
		if o.Status != domain.OrderStatusFinalized || o.FinalizedAt == nil {
			continue
		}
		if !metrics.ReopenableCategories[o.Category] {
			continue
		}
		if filter != nil && !filter.Allows(o.Category, *o.FinalizedAt) {
			continue
		}
		baseByCat[o.Category]++
		panel.TotalOriginals++
	}
	panel.ReopeningRate = metrics.Percent(panel.TotalReopened, panel.TotalOriginals)

	for cat, base := range baseByCat {
		reopened := panel.ByCategory[cat]
		panel.RatePerCat[cat] = domain.Ratio{
			Reopened: reopened,
			Base:     base,
			Percent:  metrics.Percent(reopened, base),
		}
	}

	return panel
}

// TimeToService builds the per-category goal compliance panel.
func (s *DashboardService) TimeToService() *domain.TimeToServicePanelDTO {
	snap := s.store.Snapshot()
	compliance := metrics.TimeToService(snap.Orders)

	panel := &domain.TimeToServicePanelDTO{
		Categories: make([]domain.CategoryComplianceDTO, 0, len(compliance)),
	}
	for i := range compliance {
		panel.Categories = append(panel.Categories, mapper.ToCategoryComplianceDTO(&compliance[i]))
		panel.Overall.Reopened += compliance[i].WithinGoal
		panel.Overall.Base += compliance[i].Finalized
	}
	panel.Overall.Percent = metrics.Percent(panel.Overall.Reopened, panel.Overall.Base)
	return panel
}

// Permanence builds the permanence/adimplência panel.
// The standalone sales feed takes precedence; the goals workbook's
// "VENDAS PERMANENCIA" sheet is the fallback source.
func (s *DashboardService) Permanence(now time.Time) *domain.PermanencePanelDTO {
	snap := s.store.Snapshot()

	sales := snap.Sales
	if len(sales) == 0 {
		sales = snap.PermanenceSales
	}

	results := metrics.BuildPermanence(sales, snap.Payments, now)

	panel := &domain.PermanencePanelDTO{Metrics: results}
	for i := range results {
		switch results[i].Standing {
		case domain.StandingAdimplente:
			panel.Adimplentes++
		case domain.StandingInadimplente:
			panel.Inadimplentes++
		case domain.StandingCancelado:
			panel.Cancelados++
		}
		switch results[i].Opportunity {
		case domain.OpportunityGold:
			panel.GoldCount++
		case domain.OpportunityBronze:
			panel.BronzeCount++
		}
	}
	panel.PermanencePct = metrics.Percent(panel.Adimplentes, len(results))
	return panel
}

// Bonus builds the technical-assistance bonus panel by crossing each
// category's time-to-service compliance with its reopening rate.
func (s *DashboardService) Bonus() *domain.BonusPanelDTO {
	snap := s.store.Snapshot()
	pairs := metrics.MatchReopenings(snap.Orders, nil, s.logger)
	compliance := metrics.TimeToService(snap.Orders)

	ttsByCat := make(map[domain.ServiceCategory]float64, len(compliance))
	for i := range compliance {
		ttsByCat[compliance[i].Category] = compliance[i].Compliance
	}

	reopenedByCat := make(map[domain.ServiceCategory]int)
	for i := range pairs {
		reopenedByCat[pairs[i].OriginalCategory]++
	}
	baseByCat := make(map[domain.ServiceCategory]int)
	for i := range snap.Orders {
		o := &snap.Orders[i]
		if o.Status == domain.OrderStatusFinalized && o.FinalizedAt != nil && metrics.ReopenableCategories[o.Category] {
			baseByCat[o.Category]++
		}
	}

	panel := &domain.BonusPanelDTO{}
	for _, cat := range metrics.BonusCategories() {
		tts := ttsByCat[cat]
		reop := metrics.Percent(reopenedByCat[cat], baseByCat[cat])
		panel.Entries = append(panel.Entries, domain.BonusEntryDTO{
			Category:        cat,
			TimeToServicePc: tts,
			ReopeningPct:    reop,
			BonusPct:        metrics.BonusFor(cat, tts, reop),
		})
	}
	return panel
}

// Technicians builds the reopening ranking panel.
func (s *DashboardService) Technicians() []domain.TechnicianRankDTO {
	snap := s.store.Snapshot()
	pairs := metrics.MatchReopenings(snap.Orders, nil, s.logger)
	ranks := metrics.RankTechnicians(snap.Orders, pairs)

	dtos := make([]domain.TechnicianRankDTO, len(ranks))
	for i := range ranks {
		dtos[i] = mapper.ToTechnicianRankDTO(&ranks[i])
	}
	return dtos
}

// Indicators builds the KPI summary strip.
func (s *DashboardService) Indicators(now time.Time) *domain.IndicatorsDTO {
	snap := s.store.Snapshot()
	pairs := metrics.MatchReopenings(snap.Orders, nil, s.logger)

	dto := &domain.IndicatorsDTO{
		Orders:     len(snap.Orders),
		Reopenings: len(pairs),
		Sales:      len(snap.Sales),
	}

	technicians := make(map[string]struct{})
	finalizedReopenable := 0
	for i := range snap.Orders {
		o := &snap.Orders[i]
		switch o.Status {
		case domain.OrderStatusFinalized:
			dto.Finalized++
			if metrics.ReopenableCategories[o.Category] && o.FinalizedAt != nil {
				finalizedReopenable++
			}
		case domain.OrderStatusCancelled:
			dto.Cancelled++
		}
		if o.TechnicianID != "" {
			technicians[o.TechnicianID] = struct{}{}
		}
	}
	dto.Technicians = len(technicians)
	dto.ReopeningRate = metrics.Percent(len(pairs), finalizedReopenable)

	for i := range snap.Sales {
		dto.SalesValue += snap.Sales[i].Value
	}

	permanence := s.Permanence(now)
	dto.PermanencePct = permanence.PermanencePct

	return dto
}
