package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var contractMapper = crud.Mapper[domain.LeasingContract, ContractDTO]{
	Apply: func(dto *ContractDTO, e *domain.LeasingContract) {
		if dto.ContractNumber != "" {
			e.ContractNumber = dto.ContractNumber
		}
		e.DistributorID = dto.DistributorID
		e.ProductID = dto.ProductID
		e.CustomerName = dto.CustomerName
		e.StartDate = utc(dto.StartDate)
		e.EndDate = utc(dto.EndDate)
		if dto.MonthlyAmount != nil {
			e.MonthlyAmount = *dto.MonthlyAmount
		}
	},
	ToDTO: func(e *domain.LeasingContract) ContractDTO {
		amount := e.MonthlyAmount
		return ContractDTO{
			Audit:          crud.AuditOf(&e.BaseModel),
			ContractNumber: e.ContractNumber,
			DistributorID:  e.DistributorID,
			ProductID:      e.ProductID,
			CustomerName:   e.CustomerName,
			StartDate:      e.StartDate,
			EndDate:        e.EndDate,
			MonthlyAmount:  &amount,
			Status:         e.Status,
			ApprovedAt:     e.ApprovedAt,
			ApprovedBy:     e.ApprovedBy,
			SignedAt:       e.SignedAt,
			SignedBy:       e.SignedBy,
		}
	},
}

var contractFields = pkg.NewFieldSet(map[string]pkg.Field{
	"contractNumber": pkg.Eq("contract_number", pkg.KindString),
	"distributorId":  pkg.Eq("distributor_id", pkg.KindUUID),
	"productId":      pkg.Eq("product_id", pkg.KindUUID),
	"customerName":   pkg.Eq("customer_name", pkg.KindString),
	"customerPrefix": pkg.Prefix("customer_name"),
	"status":         pkg.Eq("status", pkg.KindString),
	"monthlyAmount":  pkg.Eq("monthly_amount", pkg.KindDecimal),
	"startDate":      pkg.Eq("start_date", pkg.KindTime),
	"startDateFrom":  pkg.Gte("start_date", pkg.KindTime),
	"startDateTo":    pkg.Lte("start_date", pkg.KindTime),
	"approvedBy":     pkg.Eq("approved_by", pkg.KindString),
	"signedBy":       pkg.Eq("signed_by", pkg.KindString),
})

// contractNumber returns a reference like LC-20240401-1A2B3C4D.
func contractNumber(now time.Time) string {
	return fmt.Sprintf("LC-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(uuid.NewString()[:8]))
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
