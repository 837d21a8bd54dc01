package distributor

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simp-lee/backoffice/internal/crud"
)

// DistributorDTO is the API shape of a distributor.
type DistributorDTO struct {
	crud.Audit
	Name      string `json:"name" binding:"required,min=2,max=200"`
	LegalName string `json:"legalName" binding:"max=200"`
	TaxID     string `json:"taxId" binding:"max=50"`
	Email     string `json:"email" binding:"omitempty,email,max=255"`
	Phone     string `json:"phone" binding:"max=50"`
	Country   string `json:"country" binding:"omitempty,len=2"`
	Status    string `json:"status" binding:"omitempty,status"`
	IsActive  *bool  `json:"isActive"`
}

// BrandingDTO is the API shape of a distributor's storefront branding.
type BrandingDTO struct {
	crud.Audit
	DistributorID  uuid.UUID `json:"distributorId" binding:"required"`
	DisplayName    string    `json:"displayName" binding:"max=200"`
	LogoURL        string    `json:"logoUrl" binding:"omitempty,url,max=500"`
	PrimaryColor   string    `json:"primaryColor" binding:"omitempty,hexcolor"`
	SecondaryColor string    `json:"secondaryColor" binding:"omitempty,hexcolor"`
	IsActive       *bool     `json:"isActive"`
}

// OperationDTO is the API shape of a distributor operation.
type OperationDTO struct {
	crud.Audit
	DistributorID uuid.UUID        `json:"distributorId" binding:"required"`
	OperationType string           `json:"operationType" binding:"required,max=50"`
	Reference     string           `json:"reference" binding:"max=100"`
	Amount        *decimal.Decimal `json:"amount" binding:"required"`
	Currency      string           `json:"currency" binding:"omitempty,len=3"`
	Status        string           `json:"status" binding:"omitempty,status"`
	OperationDate *time.Time       `json:"operationDate"`
}

// SimulationDTO is the API shape of a financing simulation. MonthlyPayment is
// computed on write when omitted.
type SimulationDTO struct {
	crud.Audit
	DistributorID  uuid.UUID        `json:"distributorId" binding:"required"`
	ProductID      uuid.UUID        `json:"productId"`
	Amount         *decimal.Decimal `json:"amount" binding:"required"`
	TermMonths     int              `json:"termMonths" binding:"required,min=1,max=600"`
	InterestRate   *decimal.Decimal `json:"interestRate" binding:"required"`
	MonthlyPayment *decimal.Decimal `json:"monthlyPayment"`
	Status         string           `json:"status" binding:"omitempty,status"`
}
