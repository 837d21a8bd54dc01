package product

import (
	"github.com/shopspring/decimal"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var productMapper = crud.Mapper[domain.Product, ProductDTO]{
	Apply: func(dto *ProductDTO, e *domain.Product) {
		e.DistributorID = dto.DistributorID
		e.Name = dto.Name
		e.SKU = dto.SKU
		e.Category = dto.Category
		if dto.Price != nil {
			e.Price = *dto.Price
		}
		e.Currency = dto.Currency
		if len(dto.Specifications) > 0 {
			e.Specifications = dto.Specifications
		}
		if dto.IsActive != nil {
			e.IsActive = *dto.IsActive
		}
	},
	ToDTO: func(e *domain.Product) ProductDTO {
		price, active := e.Price, e.IsActive
		return ProductDTO{
			Audit:          crud.AuditOf(&e.BaseModel),
			DistributorID:  e.DistributorID,
			Name:           e.Name,
			SKU:            e.SKU,
			Category:       e.Category,
			Price:          &price,
			Currency:       e.Currency,
			Specifications: e.Specifications,
			IsActive:       &active,
		}
	},
}

var productFields = pkg.NewFieldSet(map[string]pkg.Field{
	"distributorId": pkg.Eq("distributor_id", pkg.KindUUID),
	"name":          pkg.Eq("name", pkg.KindString),
	"namePrefix":    pkg.Prefix("name"),
	"sku":           pkg.Eq("sku", pkg.KindString),
	"category":      pkg.Eq("category", pkg.KindString),
	"currency":      pkg.Eq("currency", pkg.KindString),
	"isActive":      pkg.Eq("is_active", pkg.KindBool),
	"price":         pkg.Eq("price", pkg.KindDecimal),
	"priceFrom":     pkg.Gte("price", pkg.KindDecimal),
	"priceTo":       pkg.Lte("price", pkg.KindDecimal),
})

var lendingMapper = crud.Mapper[domain.LendingConfiguration, LendingConfigurationDTO]{
	Apply: func(dto *LendingConfigurationDTO, e *domain.LendingConfiguration) {
		e.ProductID = dto.ProductID
		setDecimal(&e.MinAmount, dto.MinAmount)
		setDecimal(&e.MaxAmount, dto.MaxAmount)
		setDecimal(&e.InterestRate, dto.InterestRate)
		e.MaxTermMonths = dto.MaxTermMonths
		if dto.IsActive != nil {
			e.IsActive = *dto.IsActive
		}
	},
	ToDTO: func(e *domain.LendingConfiguration) LendingConfigurationDTO {
		minAmount, maxAmount, rate, active := e.MinAmount, e.MaxAmount, e.InterestRate, e.IsActive
		return LendingConfigurationDTO{
			Audit:         crud.AuditOf(&e.BaseModel),
			ProductID:     e.ProductID,
			MinAmount:     &minAmount,
			MaxAmount:     &maxAmount,
			InterestRate:  &rate,
			MaxTermMonths: e.MaxTermMonths,
			IsActive:      &active,
		}
	},
}

var lendingFields = pkg.NewFieldSet(map[string]pkg.Field{
	"productId":     pkg.Eq("product_id", pkg.KindUUID),
	"isActive":      pkg.Eq("is_active", pkg.KindBool),
	"maxTermMonths": pkg.Eq("max_term_months", pkg.KindInt),
	"interestRate":  pkg.Eq("interest_rate", pkg.KindDecimal),
	"minAmount":     pkg.Eq("min_amount", pkg.KindDecimal),
	"maxAmount":     pkg.Eq("max_amount", pkg.KindDecimal),
})

func setDecimal(dst *decimal.Decimal, src *decimal.Decimal) {
	if src != nil {
		*dst = *src
	}
}
