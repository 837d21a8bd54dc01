package agency

import (
	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
)

// AgencyDTO is the API shape of a distributor agency.
type AgencyDTO struct {
	crud.Audit
	DistributorID uuid.UUID `json:"distributorId" binding:"required"`
	Name          string    `json:"name" binding:"required,max=200"`
	Code          string    `json:"code" binding:"max=50"`
	Address       string    `json:"address" binding:"max=500"`
	City          string    `json:"city" binding:"max=100"`
	Phone         string    `json:"phone" binding:"max=50"`
	IsActive      *bool     `json:"isActive"`
}

// AgentAgencyDTO links an agent to an agency.
type AgentAgencyDTO struct {
	crud.Audit
	AgencyID uuid.UUID `json:"agencyId" binding:"required"`
	AgentID  string    `json:"agentId" binding:"required,max=100"`
	Role     string    `json:"role" binding:"max=50"`
	IsActive *bool     `json:"isActive"`
}

// PaymentMethodDTO is a payment method an agency accepts.
type PaymentMethodDTO struct {
	crud.Audit
	AgencyID         uuid.UUID `json:"agencyId" binding:"required"`
	MethodType       string    `json:"methodType" binding:"required,max=50"`
	Provider         string    `json:"provider" binding:"max=100"`
	AccountReference string    `json:"accountReference" binding:"max=200"`
	IsActive         *bool     `json:"isActive"`
}
