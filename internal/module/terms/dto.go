package terms

import (
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
)

// TemplateDTO is the API shape of a terms and conditions template.
type TemplateDTO struct {
	crud.Audit
	Title        string `json:"title" binding:"required,max=200"`
	Content      string `json:"content" binding:"required"`
	TermsVersion string `json:"termsVersion" binding:"required,max=20"`
	IsActive     *bool  `json:"isActive"`
}

// DistributorTermsDTO is the API shape of the terms a distributor has to
// sign. Status, SignedBy and SignedDate are set by the sign transition only.
type DistributorTermsDTO struct {
	crud.Audit
	DistributorID uuid.UUID  `json:"distributorId" binding:"required"`
	TemplateID    uuid.UUID  `json:"templateId"`
	Title         string     `json:"title" binding:"required,max=200"`
	Content       string     `json:"content" binding:"required"`
	TermsVersion  string     `json:"termsVersion" binding:"required,max=20"`
	Status        string     `json:"status"`
	SignedBy      string     `json:"signedBy,omitempty"`
	SignedDate    *time.Time `json:"signedDate,omitempty"`
}

// SignRequest is the optional body of POST /distributor-terms/:id/sign.
// An empty SignerID falls back to the request actor.
type SignRequest struct {
	SignerID string `json:"signerId" binding:"max=100"`
}
