package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Workflow statuses shared by contracts, terms and shipments.
const (
	StatusDraft     = "DRAFT"
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusSigned    = "SIGNED"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusActive    = "ACTIVE"
)

// LeasingContract binds a customer to monthly payments for a distributor's product.
type LeasingContract struct {
	BaseModel
	ContractNumber string          `gorm:"column:contract_number;size:50;uniqueIndex"`
	DistributorID  uuid.UUID       `gorm:"type:uuid;column:distributor_id;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;column:product_id;not null;index"`
	CustomerName   string          `gorm:"column:customer_name;size:200;not null"`
	StartDate      *time.Time      `gorm:"column:start_date"`
	EndDate        *time.Time      `gorm:"column:end_date"`
	MonthlyAmount  decimal.Decimal `gorm:"column:monthly_amount;type:numeric(19,4);not null"`
	Status         string          `gorm:"column:status;size:30;not null;index"`
	ApprovedAt     *time.Time      `gorm:"column:approved_at"`
	ApprovedBy     string          `gorm:"column:approved_by;size:100"`
	SignedAt       *time.Time      `gorm:"column:signed_at"`
	SignedBy       string          `gorm:"column:signed_by;size:100"`
}

func (LeasingContract) TableName() string  { return "leasing_contracts" }
func (LeasingContract) EntityName() string { return "leasing contract" }

// Shipment tracks delivery of a contracted product.
type Shipment struct {
	BaseModel
	ContractID     uuid.UUID  `gorm:"type:uuid;column:contract_id;index"`
	DistributorID  uuid.UUID  `gorm:"type:uuid;column:distributor_id;not null;index"`
	ProductID      uuid.UUID  `gorm:"type:uuid;column:product_id;index"`
	TrackingNumber string     `gorm:"column:tracking_number;size:100;index"`
	Carrier        string     `gorm:"column:carrier;size:100"`
	Address        string     `gorm:"column:address;size:500"`
	Status         string     `gorm:"column:status;size:30;not null;index"`
	ShippedAt      *time.Time `gorm:"column:shipped_at"`
	DeliveredAt    *time.Time `gorm:"column:delivered_at"`
}

func (Shipment) TableName() string  { return "shipments" }
func (Shipment) EntityName() string { return "shipment" }
