// Package distributor serves distributors and the records hanging directly
// off them: storefront branding, operations and financing simulations.
package distributor

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/module"
)

type (
	distributorHandler = crud.Handler[domain.Distributor, *domain.Distributor, DistributorDTO]
	brandingHandler    = crud.Handler[domain.DistributorBranding, *domain.DistributorBranding, BrandingDTO]
	operationHandler   = crud.Handler[domain.DistributorOperation, *domain.DistributorOperation, OperationDTO]
	simulationHandler  = crud.Handler[domain.DistributorSimulation, *domain.DistributorSimulation, SimulationDTO]
)

// Module implements app.Module for the distributor area.
type Module struct {
	distributors *distributorHandler
	brandings    *brandingHandler
	operations   *operationHandler
	simulations  *simulationHandler
}

// NewModule builds the area's services on deps. Panics if deps.DB is nil.
func NewModule(deps module.Deps) *Module {
	distributors := module.NewService[domain.Distributor, *domain.Distributor](deps, distributorMapper, distributorFields,
		crud.WithDefaults(func(e *domain.Distributor) {
			e.Status = domain.StatusPending
			e.IsActive = true
		}),
	)
	brandings := module.NewService[domain.DistributorBranding, *domain.DistributorBranding](deps, brandingMapper, brandingFields,
		crud.WithDefaults(func(e *domain.DistributorBranding) { e.IsActive = true }),
	)
	operations := module.NewService[domain.DistributorOperation, *domain.DistributorOperation](deps, operationMapper, operationFields,
		crud.WithDefaults(func(e *domain.DistributorOperation) {
			e.Status = domain.StatusPending
			e.OperationDate = time.Now().UTC()
		}),
	)
	simulations := module.NewService[domain.DistributorSimulation, *domain.DistributorSimulation](deps, simulationMapper, simulationFields,
		crud.WithDefaults(func(e *domain.DistributorSimulation) { e.Status = domain.StatusDraft }),
	)

	return &Module{
		distributors: crud.NewHandler(distributors),
		brandings:    crud.NewHandler(brandings),
		operations:   crud.NewHandler(operations),
		simulations:  crud.NewHandler(simulations),
	}
}

var active = map[string]any{"is_active": true}

// RegisterRoutes registers the distributor area routes on api.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	d := api.Group("/distributors")
	m.distributors.Register(d)
	d.GET("/active", m.distributors.ListWhere(active))
	d.POST("/:id/activate", m.distributors.Activate)
	d.POST("/:id/deactivate", m.distributors.Deactivate)
	d.POST("/:id/status", m.distributors.UpdateStatus)

	d.GET("/:id/branding", m.brandings.ListByParam("distributor_id", nil))
	d.GET("/:id/branding/active", m.brandings.ListByParam("distributor_id", active))
	d.GET("/:id/operations", m.operations.ListByParam("distributor_id", nil))
	d.GET("/:id/simulations", m.simulations.ListByParam("distributor_id", nil))

	b := api.Group("/distributor-brandings")
	m.brandings.Register(b)
	b.GET("/active", m.brandings.ListWhere(active))
	b.POST("/:id/activate", m.brandings.Activate)
	b.POST("/:id/deactivate", m.brandings.Deactivate)

	o := api.Group("/distributor-operations")
	m.operations.Register(o)
	o.POST("/:id/status", m.operations.UpdateStatus)

	s := api.Group("/distributor-simulations")
	m.simulations.Register(s)
	s.POST("/:id/status", m.simulations.UpdateStatus)
}
