package contract

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simp-lee/backoffice/internal/crud"
)

// ContractDTO is the API shape of a leasing contract. Status and the approval
// and signature pairs are read-only: status moves through the status, approve
// and sign routes.
type ContractDTO struct {
	crud.Audit
	ContractNumber string           `json:"contractNumber" binding:"max=50"`
	DistributorID  uuid.UUID        `json:"distributorId" binding:"required"`
	ProductID      uuid.UUID        `json:"productId" binding:"required"`
	CustomerName   string           `json:"customerName" binding:"required,max=200"`
	StartDate      *time.Time       `json:"startDate"`
	EndDate        *time.Time       `json:"endDate"`
	MonthlyAmount  *decimal.Decimal `json:"monthlyAmount" binding:"required"`
	Status         string           `json:"status"`
	ApprovedAt     *time.Time       `json:"approvedAt,omitempty"`
	ApprovedBy     string           `json:"approvedBy,omitempty"`
	SignedAt       *time.Time       `json:"signedAt,omitempty"`
	SignedBy       string           `json:"signedBy,omitempty"`
}

// ApproveRequest is the optional body of POST /leasing-contracts/:id/approve.
// An empty ApproverID falls back to the request actor.
type ApproveRequest struct {
	ApproverID string `json:"approverId" binding:"max=100"`
}

// SignRequest is the optional body of POST /leasing-contracts/:id/sign.
type SignRequest struct {
	SignerID string `json:"signerId" binding:"max=100"`
}
