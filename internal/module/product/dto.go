package product

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/simp-lee/backoffice/internal/crud"
)

// ProductDTO is the API shape of a product. Specifications is free-form JSON.
type ProductDTO struct {
	crud.Audit
	DistributorID  uuid.UUID        `json:"distributorId" binding:"required"`
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	SKU            string           `json:"sku" binding:"max=100"`
	Category       string           `json:"category" binding:"max=100"`
	Price          *decimal.Decimal `json:"price" binding:"required"`
	Currency       string           `json:"currency" binding:"omitempty,len=3"`
	Specifications datatypes.JSON   `json:"specifications,omitempty"`
	IsActive       *bool            `json:"isActive"`
}

// LendingConfigurationDTO is the API shape of a product's lending terms.
// InterestRate is an annual fraction.
type LendingConfigurationDTO struct {
	crud.Audit
	ProductID     uuid.UUID        `json:"productId" binding:"required"`
	MinAmount     *decimal.Decimal `json:"minAmount" binding:"required"`
	MaxAmount     *decimal.Decimal `json:"maxAmount" binding:"required"`
	InterestRate  *decimal.Decimal `json:"interestRate" binding:"required"`
	MaxTermMonths int              `json:"maxTermMonths" binding:"required,min=1,max=600"`
	IsActive      *bool            `json:"isActive"`
}
