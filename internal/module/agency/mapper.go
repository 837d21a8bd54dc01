package agency

import (
	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var agencyMapper = crud.Mapper[domain.DistributorAgency, AgencyDTO]{
	Apply: func(dto *AgencyDTO, e *domain.DistributorAgency) {
		e.DistributorID = dto.DistributorID
		e.Name = dto.Name
		e.Code = dto.Code
		e.Address = dto.Address
		e.City = dto.City
		e.Phone = dto.Phone
		setActive(&e.IsActive, dto.IsActive)
	},
	ToDTO: func(e *domain.DistributorAgency) AgencyDTO {
		active := e.IsActive
		return AgencyDTO{
			Audit:         crud.AuditOf(&e.BaseModel),
			DistributorID: e.DistributorID,
			Name:          e.Name,
			Code:          e.Code,
			Address:       e.Address,
			City:          e.City,
			Phone:         e.Phone,
			IsActive:      &active,
		}
	},
}

var agencyFields = pkg.NewFieldSet(map[string]pkg.Field{
	"distributorId": pkg.Eq("distributor_id", pkg.KindUUID),
	"name":          pkg.Eq("name", pkg.KindString),
	"namePrefix":    pkg.Prefix("name"),
	"code":          pkg.Eq("code", pkg.KindString),
	"city":          pkg.Eq("city", pkg.KindString),
	"isActive":      pkg.Eq("is_active", pkg.KindBool),
})

var agentMapper = crud.Mapper[domain.DistributorAgentAgency, AgentAgencyDTO]{
	Apply: func(dto *AgentAgencyDTO, e *domain.DistributorAgentAgency) {
		e.AgencyID = dto.AgencyID
		e.AgentID = dto.AgentID
		e.Role = dto.Role
		setActive(&e.IsActive, dto.IsActive)
	},
	ToDTO: func(e *domain.DistributorAgentAgency) AgentAgencyDTO {
		active := e.IsActive
		return AgentAgencyDTO{
			Audit:    crud.AuditOf(&e.BaseModel),
			AgencyID: e.AgencyID,
			AgentID:  e.AgentID,
			Role:     e.Role,
			IsActive: &active,
		}
	},
}

var agentFields = pkg.NewFieldSet(map[string]pkg.Field{
	"agencyId": pkg.Eq("agency_id", pkg.KindUUID),
	"agentId":  pkg.Eq("agent_id", pkg.KindString),
	"role":     pkg.Eq("role", pkg.KindString),
	"isActive": pkg.Eq("is_active", pkg.KindBool),
})

var paymentMapper = crud.Mapper[domain.AgencyPaymentMethod, PaymentMethodDTO]{
	Apply: func(dto *PaymentMethodDTO, e *domain.AgencyPaymentMethod) {
		e.AgencyID = dto.AgencyID
		e.MethodType = dto.MethodType
		e.Provider = dto.Provider
		e.AccountReference = dto.AccountReference
		setActive(&e.IsActive, dto.IsActive)
	},
	ToDTO: func(e *domain.AgencyPaymentMethod) PaymentMethodDTO {
		active := e.IsActive
		return PaymentMethodDTO{
			Audit:            crud.AuditOf(&e.BaseModel),
			AgencyID:         e.AgencyID,
			MethodType:       e.MethodType,
			Provider:         e.Provider,
			AccountReference: e.AccountReference,
			IsActive:         &active,
		}
	},
}

var paymentFields = pkg.NewFieldSet(map[string]pkg.Field{
	"agencyId":   pkg.Eq("agency_id", pkg.KindUUID),
	"methodType": pkg.Eq("method_type", pkg.KindString),
	"provider":   pkg.Eq("provider", pkg.KindString),
	"isActive":   pkg.Eq("is_active", pkg.KindBool),
})

func setActive(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
