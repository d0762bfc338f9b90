package domain

import (
	"github.com/google/uuid"
)

// DTOs for API responses. Field names stay close to the Portuguese source
// feeds so dashboard clients can map columns one-to-one.

// ReopeningPanelDTO is the payload behind the reopenings dashboard tab.
type ReopeningPanelDTO struct {
	Pairs          []ReopeningPairDTO        `json:"pares"`
	TotalOriginals int                       `json:"totalOriginais"`
	TotalReopened  int                       `json:"totalReabertas"`
	ReopeningRate  float64                   `json:"taxaReabertura"`
	ByCategory     map[ServiceCategory]int   `json:"porCategoria"`
	ByTechnician   map[string]int            `json:"porTecnico"`
	ByCity         map[string]int            `json:"porCidade"`
	RatePerCat     map[ServiceCategory]Ratio `json:"taxaPorCategoria"`
}

// Ratio is a reopened/base pair with the derived percentage.
type Ratio struct {
	Reopened int     `json:"reabertas"`
	Base     int     `json:"base"`
	Percent  float64 `json:"percentual"`
}

// ReopeningPairDTO flattens a ReopeningPair for table rendering.
type ReopeningPairDTO struct {
	OriginalCode     string          `json:"osOriginal"`
	ReopeningCode    string          `json:"osReabertura"`
	Customer         string          `json:"cliente"`
	CustomerCode     string          `json:"codigoCliente"`
	Technician       string          `json:"tecnico"`
	City             string          `json:"cidade"`
	Neighborhood     string          `json:"bairro"`
	OriginalCategory ServiceCategory `json:"categoriaOriginal"`
	FinalizedAt      string          `json:"finalizacaoOriginal"` // ISO 8601
	ReopenedAt       string          `json:"criacaoReabertura"`   // ISO 8601
	ElapsedHours     float64         `json:"horasDecorridas"`
	ElapsedDays      int             `json:"diasDecorridos"`
}

// TimeToServicePanelDTO reports per-category goal compliance.
type TimeToServicePanelDTO struct {
	Categories []CategoryComplianceDTO `json:"categorias"`
	Overall    Ratio                   `json:"geral"`
}

type CategoryComplianceDTO struct {
	Category     ServiceCategory `json:"categoria"`
	GoalHours    float64         `json:"metaHoras"`
	Finalized    int             `json:"finalizadas"`
	WithinGoal   int             `json:"dentroMeta"`
	Compliance   float64         `json:"percentualMeta"`
	AverageHours float64         `json:"mediaHoras"`
}

// PermanencePanelDTO aggregates permanence classifications.
type PermanencePanelDTO struct {
	Metrics       []PermanenceMetric `json:"registros"`
	Adimplentes   int                `json:"adimplentes"`
	Inadimplentes int                `json:"inadimplentes"`
	Cancelados    int                `json:"cancelados"`
	PermanencePct float64            `json:"percentualPermanencia"`
	GoldCount     int                `json:"oportunidadesOuro"`
	BronzeCount   int                `json:"oportunidadesBronze"`
}

// BonusPanelDTO carries the bonus lookup result per assistance category.
type BonusPanelDTO struct {
	Entries []BonusEntryDTO `json:"categorias"`
}

type BonusEntryDTO struct {
	Category        ServiceCategory `json:"categoria"`
	TimeToServicePc float64         `json:"percentualTMA"`
	ReopeningPct    float64         `json:"percentualReabertura"`
	BonusPct        float64         `json:"percentualBonus"`
}

// TechnicianRankDTO is one row of the technician ranking panel.
type TechnicianRankDTO struct {
	Rank           int     `json:"posicao"`
	TechnicianID   string  `json:"idTecnico"`
	TechnicianName string  `json:"tecnico"`
	Finalized      int     `json:"finalizadas"`
	Reopenings     int     `json:"reaberturas"`
	ReopeningRate  float64 `json:"taxaReabertura"`
}

// IndicatorsDTO is the summary KPI strip at the top of the dashboard.
type IndicatorsDTO struct {
	Orders        int     `json:"ordens"`
	Finalized     int     `json:"finalizadas"`
	Cancelled     int     `json:"canceladas"`
	Reopenings    int     `json:"reaberturas"`
	ReopeningRate float64 `json:"taxaReabertura"`
	Sales         int     `json:"vendas"`
	SalesValue    float64 `json:"valorVendas"`
	PermanencePct float64 `json:"percentualPermanencia"`
	Technicians   int     `json:"tecnicos"`
}

// ImportResultDTO is the response of a completed import.
type ImportResultDTO struct {
	BatchID     uuid.UUID    `json:"batchId"`
	Feed        ImportFeed   `json:"feed"`
	Filename    string       `json:"filename"`
	RowCount    int          `json:"rowCount"`
	SkippedRows int          `json:"skippedRows"`
	Warnings    []string     `json:"warnings,omitempty"`
	Status      ImportStatus `json:"status"`
}

// ImportBatchDTO is one row of the import history listing.
type ImportBatchDTO struct {
	ID          uuid.UUID    `json:"id"`
	Feed        ImportFeed   `json:"feed"`
	Filename    string       `json:"filename"`
	RowCount    int          `json:"rowCount"`
	SkippedRows int          `json:"skippedRows"`
	Status      ImportStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
	UploadedBy  string       `json:"uploadedBy,omitempty"`
	CreatedAt   string       `json:"createdAt"` // ISO 8601
}

// UserDTO hides credential fields from listings.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      UserRole  `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt string    `json:"createdAt"` // ISO 8601
}

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string  `json:"token"`
	ExpiresAt string  `json:"expiresAt"` // ISO 8601
	User      UserDTO `json:"user"`
}

// CreateUserRequest is the admin payload for POST /users.
type CreateUserRequest struct {
	Email    string   `json:"email" validate:"required,email"`
	Name     string   `json:"name" validate:"required,max=200"`
	Password string   `json:"password" validate:"required,min=8"`
	Role     UserRole `json:"role" validate:"required,oneof=admin viewer"`
}

// UpsertSettingRequest is the payload for PUT /settings/{key}.
type UpsertSettingRequest struct {
	Value string `json:"value" validate:"required"`
}

// PaginatedResponse wraps list endpoints.
type PaginatedResponse struct {
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}
