// Package shipment serves equipment shipments and their delivery tracking.
package shipment

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Transition names reported in change events.
const (
	ActionShip    = "ship"
	ActionDeliver = "deliver"
)

type service = crud.Service[domain.Shipment, *domain.Shipment, ShipmentDTO]

// Module implements app.Module for shipments.
type Module struct {
	handler *crud.Handler[domain.Shipment, *domain.Shipment, ShipmentDTO]
}

// NewModule builds the shipment service on deps. New shipments start
// PENDING.
func NewModule(deps module.Deps) *Module {
	svc := module.NewService[domain.Shipment, *domain.Shipment](deps, shipmentMapper, shipmentFields,
		crud.WithDefaults(func(e *domain.Shipment) { e.Status = domain.StatusPending }),
	)
	return &Module{handler: crud.NewHandler(svc)}
}

// RegisterRoutes registers the shipment routes on api.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/shipments")
	m.handler.Register(g)
	g.POST("/:id/ship", m.ship)
	g.POST("/:id/deliver", m.deliver)
	g.POST("/:id/status", m.handler.UpdateStatus)

	api.GET("/distributors/:id/shipments", m.handler.ListByParam("distributor_id", nil))
}

// MarkShipped sets shipment id to SHIPPED and stamps shipped_at.
func MarkShipped(ctx context.Context, svc *service, id uuid.UUID) (*ShipmentDTO, error) {
	return svc.Transition(ctx, id, ActionShip, func(e *domain.Shipment) error {
		now := svc.Now()
		e.Status = domain.StatusShipped
		e.ShippedAt = &now
		return nil
	})
}

// MarkDelivered sets shipment id to DELIVERED and stamps delivered_at.
func MarkDelivered(ctx context.Context, svc *service, id uuid.UUID) (*ShipmentDTO, error) {
	return svc.Transition(ctx, id, ActionDeliver, func(e *domain.Shipment) error {
		now := svc.Now()
		e.Status = domain.StatusDelivered
		e.DeliveredAt = &now
		return nil
	})
}

func (m *Module) ship(c *gin.Context) {
	m.mark(c, MarkShipped)
}

func (m *Module) deliver(c *gin.Context) {
	m.mark(c, MarkDelivered)
}

func (m *Module) mark(c *gin.Context, fn func(context.Context, *service, uuid.UUID) (*ShipmentDTO, error)) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}

	dto, err := fn(c.Request.Context(), m.handler.Service(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}
