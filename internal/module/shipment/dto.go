package shipment

import (
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
)

// ShipmentDTO is the API shape of a shipment. ShippedAt and DeliveredAt are
// set by the ship and deliver transitions only.
type ShipmentDTO struct {
	crud.Audit
	ContractID     uuid.UUID  `json:"contractId"`
	DistributorID  uuid.UUID  `json:"distributorId" binding:"required"`
	ProductID      uuid.UUID  `json:"productId"`
	TrackingNumber string     `json:"trackingNumber" binding:"max=100"`
	Carrier        string     `json:"carrier" binding:"max=100"`
	Address        string     `json:"address" binding:"max=500"`
	Status         string     `json:"status" binding:"omitempty,status"`
	ShippedAt      *time.Time `json:"shippedAt,omitempty"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
}
