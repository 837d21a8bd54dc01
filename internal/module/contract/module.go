// Package contract serves leasing contracts and their approval workflow.
package contract

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/module"
)

// Module implements app.Module for leasing contracts.
type Module struct {
	handler *Handler
}

// NewModule builds the contract service on deps. New contracts start PENDING
// with a generated number unless the client supplies one.
func NewModule(deps module.Deps) *Module {
	svc := &Service{}
	svc.Service = module.NewService[domain.LeasingContract, *domain.LeasingContract](deps, contractMapper, contractFields,
		crud.WithDefaults(func(e *domain.LeasingContract) {
			e.Status = domain.StatusPending
			e.ContractNumber = contractNumber(svc.Now())
		}),
	)
	return &Module{handler: NewHandler(svc)}
}

// RegisterRoutes registers the contract routes on api.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/leasing-contracts")
	m.handler.Register(g)
	g.POST("/:id/approve", m.handler.Approve)
	g.POST("/:id/sign", m.handler.Sign)
	g.POST("/:id/status", m.handler.UpdateStatus)

	api.GET("/distributors/:id/contracts", m.handler.ListByParam("distributor_id", nil))
}
