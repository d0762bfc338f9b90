package domain

import (
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// OrderStatus represents the lifecycle status of a service order
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "Aberta"
	OrderStatusFinalized OrderStatus = "Finalizada"
	OrderStatusCancelled OrderStatus = "Cancelada"
)

// ServiceCategory is the normalized category derived from an order's
// type/subtype pair. Categories drive reopening matching and goal lookups.
type ServiceCategory string

const (
	CategoryCorrectiveTV    ServiceCategory = "Corretiva"
	CategoryCorrectiveFiber ServiceCategory = "Corretiva BL"
	CategoryMainPointTV     ServiceCategory = "Ponto Principal"
	CategoryMainPointFiber  ServiceCategory = "Ponto Principal BL"
	CategoryPrestacao       ServiceCategory = "Prestação de Serviço"
	CategoryPrestacaoFiber  ServiceCategory = "Prestação de Serviço BL"
	CategoryUnknown         ServiceCategory = "Desconhecida"
)

// ActionCustomerCancelled is the action-taken marker written by the call
// center when a customer cancels through SAC. Orders carrying it never open
// a reopening chain.
const ActionCustomerCancelled = "Cliente Cancelou via SAC"

// Material is one bill-of-materials line of a service order.
type Material struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

// ServiceOrder is one line item of a field-service order feed row.
// The (Code, ItemCode) pair is unique after de-duplication; several item
// codes under one order code are duplicate lines to be consolidated.
type ServiceOrder struct {
	Code           string          `json:"codigoOS"`
	ItemCode       string          `json:"codigoItem"`
	TechnicianID   string          `json:"idTecnico"`
	TechnicianName string          `json:"tecnico"`
	ServiceType    string          `json:"tipoServico"`
	ServiceSubtype string          `json:"subtipoServico"`
	Reason         string          `json:"motivo"`
	CustomerCode   string          `json:"codigoCliente"`
	CustomerName   string          `json:"cliente"`
	Status         OrderStatus     `json:"status"`
	CreatedAt      time.Time       `json:"dataCriacao"`
	FinalizedAt    *time.Time      `json:"dataFinalizacao,omitempty"`
	City           string          `json:"cidade"`
	Neighborhood   string          `json:"bairro"`
	SiteInfo       string          `json:"infoEndereco,omitempty"`
	ActionTaken    string          `json:"acaoTomada,omitempty"`
	Materials      []Material      `json:"materiais,omitempty"`
	Category       ServiceCategory `json:"categoria"`
}

// ReferenceTime is the instant reopening matching measures from: the
// finalization time, or the creation time for cancelled orders that never
// got one.
func (o *ServiceOrder) ReferenceTime() time.Time {
	if o.FinalizedAt != nil {
		return *o.FinalizedAt
	}
	return o.CreatedAt
}

// ReopeningPair links an original service order to the corrective order that
// reopened it. Pairs are derived per query and never persisted.
type ReopeningPair struct {
	Original         ServiceOrder    `json:"ordemOriginal"`
	Reopening        ServiceOrder    `json:"ordemReabertura"`
	ElapsedHours     float64         `json:"horasDecorridas"`
	ElapsedDays      int             `json:"diasDecorridos"`
	OriginalCategory ServiceCategory `json:"categoriaOriginal"`
}

// ProductFamily groups sold products for permanence rules.
type ProductFamily string

const (
	FamilyPOS   ProductFamily = "POS"
	FamilyFiber ProductFamily = "BL-DGO"
	FamilyOther ProductFamily = "OUTROS"
)

// Sale is one sold contract from the sales feed.
type Sale struct {
	ProposalNumber  string        `json:"numeroProposta"`
	SellerID        string        `json:"idVendedor"`
	OwnerName       string        `json:"nomeProprietario"`
	ProductGroup    string        `json:"agrupamentoProduto"`
	ProductName     string        `json:"produtoPrincipal"`
	Family          ProductFamily `json:"familia"`
	Value           float64       `json:"valor"`
	Status          string        `json:"statusProposta"`
	HabilitationAt  time.Time     `json:"dataHabilitacao"`
	SecondaryOffers string        `json:"produtosSecundarios,omitempty"`
	PaymentMethod   string        `json:"formaPagamento,omitempty"`
	City            string        `json:"cidade,omitempty"`
	Neighborhood    string        `json:"bairro,omitempty"`
}

// PackageStatus codes carried by the payment/collections feed.
const (
	PackageStatusNormal    = "N"
	PackageStatusSuspended = "S"
	PackageStatusCancelled = "C"
	PackageStatusNoCharge  = "NC"
)

// PaymentRecord is one collections row, matched to a Sale by proposal number.
type PaymentRecord struct {
	ProposalNumber string     `json:"numeroProposta"`
	Step           int        `json:"passoCobranca"`
	CollectionAt   *time.Time `json:"dataCobranca,omitempty"`
	DueAt          *time.Time `json:"vencimentoFatura,omitempty"`
	PackageStatus  string     `json:"statusPacote"`
}

// Standing is the permanence classification of a sold contract.
type Standing string

const (
	StandingAdimplente   Standing = "adimplente"
	StandingInadimplente Standing = "inadimplente"
	StandingCancelado    Standing = "cancelado"
)

// OpportunityTier flags delinquent POS contracts worth a recovery contact.
type OpportunityTier string

const (
	OpportunityNone   OpportunityTier = ""
	OpportunityGold   OpportunityTier = "ouro"
	OpportunityBronze OpportunityTier = "bronze"
)

// PermanenceMetric is the derived standing of one Sale+PaymentRecord pair.
type PermanenceMetric struct {
	Sale            Sale            `json:"venda"`
	Payment         *PaymentRecord  `json:"cobranca,omitempty"`
	Standing        Standing        `json:"classificacao"`
	Opportunity     OpportunityTier `json:"oportunidade,omitempty"`
	PermanenceMonth int             `json:"mesPermanencia"`
	PermanenceYear  int             `json:"anoPermanencia"`
}

// SalesGoal is one row of the "METAS" sheet of the goals workbook,
// persisted so goal panels survive restarts.
type SalesGoal struct {
	BaseModel
	SellerID string  `gorm:"type:varchar(50);not null;index:idx_goal_seller_period,unique" json:"sellerId"`
	Seller   string  `gorm:"type:varchar(200);not null" json:"seller"`
	Month    int     `gorm:"not null;index:idx_goal_seller_period,unique" json:"month"`
	Year     int     `gorm:"not null;index:idx_goal_seller_period,unique" json:"year"`
	Target   float64 `gorm:"not null" json:"target"`
	Category string  `gorm:"type:varchar(100)" json:"category"`
}

// UserRole controls API access level.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// User is an API account stored in the hosted relational store.
type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(320);not null;uniqueIndex" json:"email"`
	Name         string   `gorm:"type:varchar(200);not null" json:"name"`
	PasswordHash string   `gorm:"type:varchar(200);not null;column:password_hash" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	Active       bool     `gorm:"not null;default:true" json:"active"`
}

// Setting is a per-user key/value preference (column visibility, filters).
type Setting struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_setting_user_key,unique" json:"userId"`
	Key    string    `gorm:"type:varchar(200);not null;index:idx_setting_user_key,unique" json:"key"`
	Value  string    `gorm:"type:text;not null" json:"value"`
}

// ImportFeed identifies which collection a spreadsheet upload targets.
type ImportFeed string

const (
	FeedOrders   ImportFeed = "orders"
	FeedSales    ImportFeed = "sales"
	FeedPayments ImportFeed = "payments"
	FeedGoals    ImportFeed = "goals"
)

// ImportStatus is the terminal state of an import batch.
type ImportStatus string

const (
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportBatch records one spreadsheet upload and its outcome.
type ImportBatch struct {
	BaseModel
	Feed        ImportFeed   `gorm:"type:varchar(20);not null;index" json:"feed"`
	Filename    string       `gorm:"type:varchar(500);not null" json:"filename"`
	StoragePath string       `gorm:"type:varchar(500);column:storage_path" json:"storagePath,omitempty"`
	RowCount    int          `gorm:"not null;default:0;column:row_count" json:"rowCount"`
	SkippedRows int          `gorm:"not null;default:0;column:skipped_rows" json:"skippedRows"`
	Status      ImportStatus `gorm:"type:varchar(20);not null" json:"status"`
	Error       string       `gorm:"type:text" json:"error,omitempty"`
	UploadedBy  string       `gorm:"type:varchar(200);column:uploaded_by" json:"uploadedBy,omitempty"`
}
