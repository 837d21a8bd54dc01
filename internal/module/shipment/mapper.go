package shipment

import (
	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var shipmentMapper = crud.Mapper[domain.Shipment, ShipmentDTO]{
	Apply: func(dto *ShipmentDTO, e *domain.Shipment) {
		e.ContractID = dto.ContractID
		e.DistributorID = dto.DistributorID
		e.ProductID = dto.ProductID
		e.TrackingNumber = dto.TrackingNumber
		e.Carrier = dto.Carrier
		e.Address = dto.Address
		if dto.Status != "" {
			e.Status = dto.Status
		}
	},
	ToDTO: func(e *domain.Shipment) ShipmentDTO {
		return ShipmentDTO{
			Audit:          crud.AuditOf(&e.BaseModel),
			ContractID:     e.ContractID,
			DistributorID:  e.DistributorID,
			ProductID:      e.ProductID,
			TrackingNumber: e.TrackingNumber,
			Carrier:        e.Carrier,
			Address:        e.Address,
			Status:         e.Status,
			ShippedAt:      e.ShippedAt,
			DeliveredAt:    e.DeliveredAt,
		}
	},
}

var shipmentFields = pkg.NewFieldSet(map[string]pkg.Field{
	"contractId":     pkg.Eq("contract_id", pkg.KindUUID),
	"distributorId":  pkg.Eq("distributor_id", pkg.KindUUID),
	"productId":      pkg.Eq("product_id", pkg.KindUUID),
	"trackingNumber": pkg.Eq("tracking_number", pkg.KindString),
	"carrier":        pkg.Eq("carrier", pkg.KindString),
	"status":         pkg.Eq("status", pkg.KindString),
	"shippedAt":      pkg.Eq("shipped_at", pkg.KindTime),
	"shippedFrom":    pkg.Gte("shipped_at", pkg.KindTime),
	"shippedTo":      pkg.Lte("shipped_at", pkg.KindTime),
	"deliveredAt":    pkg.Eq("delivered_at", pkg.KindTime),
	"deliveredFrom":  pkg.Gte("delivered_at", pkg.KindTime),
	"deliveredTo":    pkg.Lte("delivered_at", pkg.KindTime),
})
