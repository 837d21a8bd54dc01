package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is an item a distributor offers for leasing or lending.
type Product struct {
	BaseModel
	DistributorID  uuid.UUID       `gorm:"type:uuid;column:distributor_id;not null;index"`
	Name           string          `gorm:"column:name;size:200;not null"`
	SKU            string          `gorm:"column:sku;size:100;index"`
	Category       string          `gorm:"column:category;size:100;index"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(19,4);not null"`
	Currency       string          `gorm:"column:currency;size:3"`
	Specifications datatypes.JSON  `gorm:"column:specifications"`
	IsActive       bool            `gorm:"column:is_active;not null"`
}

func (Product) TableName() string  { return "products" }
func (Product) EntityName() string { return "product" }

// LendingConfiguration bounds the loans that can be granted for a product.
type LendingConfiguration struct {
	BaseModel
	ProductID     uuid.UUID       `gorm:"type:uuid;column:product_id;not null;index"`
	MinAmount     decimal.Decimal `gorm:"column:min_amount;type:numeric(19,4);not null"`
	MaxAmount     decimal.Decimal `gorm:"column:max_amount;type:numeric(19,4);not null"`
	InterestRate  decimal.Decimal `gorm:"column:interest_rate;type:numeric(9,6);not null"`
	MaxTermMonths int             `gorm:"column:max_term_months;not null"`
	IsActive      bool            `gorm:"column:is_active;not null"`
}

func (LendingConfiguration) TableName() string  { return "lending_configurations" }
func (LendingConfiguration) EntityName() string { return "lending configuration" }
