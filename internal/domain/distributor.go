package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Distributor is a company reselling products under lending or leasing terms.
type Distributor struct {
	BaseModel
	Name      string `gorm:"column:name;size:200;not null;index"`
	LegalName string `gorm:"column:legal_name;size:200"`
	TaxID     string `gorm:"column:tax_id;size:50;index"`
	Email     string `gorm:"column:email;size:255"`
	Phone     string `gorm:"column:phone;size:50"`
	Country   string `gorm:"column:country;size:2"`
	Status    string `gorm:"column:status;size:30;not null;index"`
	IsActive  bool   `gorm:"column:is_active;not null"`
}

func (Distributor) TableName() string  { return "distributors" }
func (Distributor) EntityName() string { return "distributor" }

// DistributorBranding holds the white-label look of a distributor's storefront.
type DistributorBranding struct {
	BaseModel
	DistributorID  uuid.UUID `gorm:"type:uuid;column:distributor_id;not null;index"`
	DisplayName    string    `gorm:"column:display_name;size:200"`
	LogoURL        string    `gorm:"column:logo_url;size:500"`
	PrimaryColor   string    `gorm:"column:primary_color;size:20"`
	SecondaryColor string    `gorm:"column:secondary_color;size:20"`
	IsActive       bool      `gorm:"column:is_active;not null"`
}

func (DistributorBranding) TableName() string  { return "distributor_brandings" }
func (DistributorBranding) EntityName() string { return "distributor branding" }

// DistributorOperation records a money movement between the platform and a distributor.
type DistributorOperation struct {
	BaseModel
	DistributorID uuid.UUID       `gorm:"type:uuid;column:distributor_id;not null;index"`
	OperationType string          `gorm:"column:operation_type;size:50;not null"`
	Reference     string          `gorm:"column:reference;size:100"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(19,4);not null"`
	Currency      string          `gorm:"column:currency;size:3"`
	Status        string          `gorm:"column:status;size:30;not null;index"`
	OperationDate time.Time       `gorm:"column:operation_date"`
}

func (DistributorOperation) TableName() string  { return "distributor_operations" }
func (DistributorOperation) EntityName() string { return "distributor operation" }

// DistributorSimulation is a financing quote prepared for a distributor's customer.
type DistributorSimulation struct {
	BaseModel
	DistributorID  uuid.UUID       `gorm:"type:uuid;column:distributor_id;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;column:product_id;index"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(19,4);not null"`
	TermMonths     int             `gorm:"column:term_months;not null"`
	InterestRate   decimal.Decimal `gorm:"column:interest_rate;type:numeric(9,6);not null"`
	MonthlyPayment decimal.Decimal `gorm:"column:monthly_payment;type:numeric(19,4)"`
	Status         string          `gorm:"column:status;size:30;not null;index"`
}

func (DistributorSimulation) TableName() string  { return "distributor_simulations" }
func (DistributorSimulation) EntityName() string { return "distributor simulation" }
