package distributor

import (
	"github.com/shopspring/decimal"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var distributorMapper = crud.Mapper[domain.Distributor, DistributorDTO]{
	Apply: func(dto *DistributorDTO, e *domain.Distributor) {
		e.Name = dto.Name
		e.LegalName = dto.LegalName
		e.TaxID = dto.TaxID
		e.Email = dto.Email
		e.Phone = dto.Phone
		e.Country = dto.Country
		if dto.Status != "" {
			e.Status = dto.Status
		}
		if dto.IsActive != nil {
			e.IsActive = *dto.IsActive
		}
	},
	ToDTO: func(e *domain.Distributor) DistributorDTO {
		return DistributorDTO{
			Audit:     crud.AuditOf(&e.BaseModel),
			Name:      e.Name,
			LegalName: e.LegalName,
			TaxID:     e.TaxID,
			Email:     e.Email,
			Phone:     e.Phone,
			Country:   e.Country,
			Status:    e.Status,
			IsActive:  ptr(e.IsActive),
		}
	},
}

var distributorFields = pkg.NewFieldSet(map[string]pkg.Field{
	"name":       pkg.Eq("name", pkg.KindString),
	"namePrefix": pkg.Prefix("name"),
	"legalName":  pkg.Eq("legal_name", pkg.KindString),
	"taxId":      pkg.Eq("tax_id", pkg.KindString),
	"email":      pkg.Eq("email", pkg.KindString),
	"country":    pkg.Eq("country", pkg.KindString),
	"status":     pkg.Eq("status", pkg.KindString),
	"isActive":   pkg.Eq("is_active", pkg.KindBool),
})

var brandingMapper = crud.Mapper[domain.DistributorBranding, BrandingDTO]{
	Apply: func(dto *BrandingDTO, e *domain.DistributorBranding) {
		e.DistributorID = dto.DistributorID
		e.DisplayName = dto.DisplayName
		e.LogoURL = dto.LogoURL
		e.PrimaryColor = dto.PrimaryColor
		e.SecondaryColor = dto.SecondaryColor
		if dto.IsActive != nil {
			e.IsActive = *dto.IsActive
		}
	},
	ToDTO: func(e *domain.DistributorBranding) BrandingDTO {
		return BrandingDTO{
			Audit:          crud.AuditOf(&e.BaseModel),
			DistributorID:  e.DistributorID,
			DisplayName:    e.DisplayName,
			LogoURL:        e.LogoURL,
			PrimaryColor:   e.PrimaryColor,
			SecondaryColor: e.SecondaryColor,
			IsActive:       ptr(e.IsActive),
		}
	},
}

var brandingFields = pkg.NewFieldSet(map[string]pkg.Field{
	"distributorId": pkg.Eq("distributor_id", pkg.KindUUID),
	"displayName":   pkg.Eq("display_name", pkg.KindString),
	"isActive":      pkg.Eq("is_active", pkg.KindBool),
})

var operationMapper = crud.Mapper[domain.DistributorOperation, OperationDTO]{
	Apply: func(dto *OperationDTO, e *domain.DistributorOperation) {
		e.DistributorID = dto.DistributorID
		e.OperationType = dto.OperationType
		e.Reference = dto.Reference
		if dto.Amount != nil {
			e.Amount = *dto.Amount
		}
		e.Currency = dto.Currency
		if dto.Status != "" {
			e.Status = dto.Status
		}
		if dto.OperationDate != nil {
			e.OperationDate = dto.OperationDate.UTC()
		}
	},
	ToDTO: func(e *domain.DistributorOperation) OperationDTO {
		date := e.OperationDate
		return OperationDTO{
			Audit:         crud.AuditOf(&e.BaseModel),
			DistributorID: e.DistributorID,
			OperationType: e.OperationType,
			Reference:     e.Reference,
			Amount:        ptr(e.Amount),
			Currency:      e.Currency,
			Status:        e.Status,
			OperationDate: &date,
		}
	},
}

var operationFields = pkg.NewFieldSet(map[string]pkg.Field{
	"distributorId":     pkg.Eq("distributor_id", pkg.KindUUID),
	"operationType":     pkg.Eq("operation_type", pkg.KindString),
	"reference":         pkg.Eq("reference", pkg.KindString),
	"currency":          pkg.Eq("currency", pkg.KindString),
	"status":            pkg.Eq("status", pkg.KindString),
	"amount":            pkg.Eq("amount", pkg.KindDecimal),
	"amountFrom":        pkg.Gte("amount", pkg.KindDecimal),
	"amountTo":          pkg.Lte("amount", pkg.KindDecimal),
	"operationDate":     pkg.Eq("operation_date", pkg.KindTime),
	"operationDateFrom": pkg.Gte("operation_date", pkg.KindTime),
	"operationDateTo":   pkg.Lte("operation_date", pkg.KindTime),
})

var simulationMapper = crud.Mapper[domain.DistributorSimulation, SimulationDTO]{
	Apply: func(dto *SimulationDTO, e *domain.DistributorSimulation) {
		e.DistributorID = dto.DistributorID
		e.ProductID = dto.ProductID
		if dto.Amount != nil {
			e.Amount = *dto.Amount
		}
		e.TermMonths = dto.TermMonths
		if dto.InterestRate != nil {
			e.InterestRate = *dto.InterestRate
		}
		if dto.Status != "" {
			e.Status = dto.Status
		}
		if dto.MonthlyPayment != nil {
			e.MonthlyPayment = *dto.MonthlyPayment
		} else {
			e.MonthlyPayment = MonthlyPayment(e.Amount, e.InterestRate, e.TermMonths)
		}
	},
	ToDTO: func(e *domain.DistributorSimulation) SimulationDTO {
		return SimulationDTO{
			Audit:          crud.AuditOf(&e.BaseModel),
			DistributorID:  e.DistributorID,
			ProductID:      e.ProductID,
			Amount:         ptr(e.Amount),
			TermMonths:     e.TermMonths,
			InterestRate:   ptr(e.InterestRate),
			MonthlyPayment: ptr(e.MonthlyPayment),
			Status:         e.Status,
		}
	},
}

var simulationFields = pkg.NewFieldSet(map[string]pkg.Field{
	"distributorId": pkg.Eq("distributor_id", pkg.KindUUID),
	"productId":     pkg.Eq("product_id", pkg.KindUUID),
	"status":        pkg.Eq("status", pkg.KindString),
	"termMonths":    pkg.Eq("term_months", pkg.KindInt),
	"amount":        pkg.Eq("amount", pkg.KindDecimal),
	"amountFrom":    pkg.Gte("amount", pkg.KindDecimal),
	"amountTo":      pkg.Lte("amount", pkg.KindDecimal),
})

func ptr[T bool | decimal.Decimal](v T) *T { return &v }
