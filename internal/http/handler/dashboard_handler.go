package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sysgest/insights-api/internal/domain"
	"github.com/sysgest/insights-api/internal/metrics"
	"github.com/sysgest/insights-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

// reopeningFilterFromQuery builds a filter from month/year/categories params.
// Returns nil when no param is present, which means no filtering.
func reopeningFilterFromQuery(r *http.Request) (*metrics.ReopeningFilter, error) {
	q := r.URL.Query()
	filter := &metrics.ReopeningFilter{}
	any := false

	if v := q.Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("invalid query parameter: month")
		}
		filter.Month = month
		any = true
	}
	if v := q.Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil || year < 2000 || year > 2100 {
			return nil, fmt.Errorf("invalid query parameter: year")
		}
		filter.Year = year
		any = true
	}
	if v := q.Get("categories"); v != "" {
		filter.Categories = make(map[domain.ServiceCategory]bool)
		for _, c := range strings.Split(v, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				filter.Categories[domain.ServiceCategory(c)] = true
			}
		}
		any = true
	}

	if !any {
		return nil, nil
	}
	return filter, nil
}

// Reopenings godoc
// @Summary Reopening pairs panel
// @Description Matches finalized orders against later orders for the same customer within the reopening window
// @Tags Dashboard
// @Produce json
// @Param month query int false "Filter by reopening month (1-12)"
// @Param year query int false "Filter by reopening year"
// @Param categories query string false "Comma-separated original categories"
// @Success 200 {object} domain.ReopeningPanelDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard/reopenings [get]
func (h *DashboardHandler) Reopenings(w http.ResponseWriter, r *http.Request) {
	filter, err := reopeningFilterFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, h.dashboard.Reopenings(filter))
}

// TimeToService godoc
// @Summary Time-to-service compliance panel
// @Description Per-category share of finalized orders served within the category's hour goal
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.TimeToServicePanelDTO
// @Security BearerAuth
// @Router /dashboard/time-to-service [get]
func (h *DashboardHandler) TimeToService(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.TimeToService())
}

// Permanence godoc
// @Summary Permanence and payment standing panel
// @Description Classifies each sale's customer standing from the payment feed
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.PermanencePanelDTO
// @Security BearerAuth
// @Router /dashboard/permanence [get]
func (h *DashboardHandler) Permanence(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Permanence(time.Now()))
}

// Bonus godoc
// @Summary Bonus percentage panel
// @Description Crosses time-to-service compliance with reopening rate per assistance category
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.BonusPanelDTO
// @Security BearerAuth
// @Router /dashboard/bonus [get]
func (h *DashboardHandler) Bonus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Bonus())
}

// Technicians godoc
// @Summary Technician ranking panel
// @Description Ranks technicians by finalized orders and reopening rate
// @Tags Dashboard
// @Produce json
// @Success 200 {array} domain.TechnicianRankDTO
// @Security BearerAuth
// @Router /dashboard/technicians [get]
func (h *DashboardHandler) Technicians(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Technicians())
}

// Indicators godoc
// @Summary Summary KPI strip
// @Description Headline counters across orders, sales and permanence
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.IndicatorsDTO
// @Security BearerAuth
// @Router /dashboard/indicators [get]
func (h *DashboardHandler) Indicators(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dashboard.Indicators(time.Now()))
}
