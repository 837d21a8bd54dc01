// Package agency serves distributor agencies, the agents working for them and
// the payment methods they accept.
package agency

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Module implements app.Module for the agency area.
type Module struct {
	agencies *crud.Handler[domain.DistributorAgency, *domain.DistributorAgency, AgencyDTO]
	agents   *crud.Handler[domain.DistributorAgentAgency, *domain.DistributorAgentAgency, AgentAgencyDTO]
	payments *crud.Handler[domain.AgencyPaymentMethod, *domain.AgencyPaymentMethod, PaymentMethodDTO]
}

// NewModule builds the area's services on deps. Every record starts active.
func NewModule(deps module.Deps) *Module {
	agencies := module.NewService[domain.DistributorAgency, *domain.DistributorAgency](deps, agencyMapper, agencyFields,
		crud.WithDefaults(func(e *domain.DistributorAgency) { e.IsActive = true }),
	)
	agents := module.NewService[domain.DistributorAgentAgency, *domain.DistributorAgentAgency](deps, agentMapper, agentFields,
		crud.WithDefaults(func(e *domain.DistributorAgentAgency) { e.IsActive = true }),
	)
	payments := module.NewService[domain.AgencyPaymentMethod, *domain.AgencyPaymentMethod](deps, paymentMapper, paymentFields,
		crud.WithDefaults(func(e *domain.AgencyPaymentMethod) { e.IsActive = true }),
	)
	return &Module{
		agencies: crud.NewHandler(agencies),
		agents:   crud.NewHandler(agents),
		payments: crud.NewHandler(payments),
	}
}

var active = map[string]any{"is_active": true}

// RegisterRoutes registers the agency area routes on api.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	a := api.Group("/agencies")
	m.agencies.Register(a)
	a.GET("/active", m.agencies.ListWhere(active))
	a.POST("/:id/activate", m.agencies.Activate)
	a.POST("/:id/deactivate", m.agencies.Deactivate)
	a.GET("/:id/agents", m.agents.ListByParam("agency_id", nil))
	a.GET("/:id/agents/active", m.agents.ListByParam("agency_id", active))
	a.GET("/:id/payment-methods", m.payments.ListByParam("agency_id", nil))
	a.GET("/:id/payment-methods/active", m.payments.ListByParam("agency_id", active))

	ag := api.Group("/agent-agencies")
	m.agents.Register(ag)
	ag.GET("/agent/:agentId", m.byAgent)
	ag.POST("/:id/activate", m.agents.Activate)
	ag.POST("/:id/deactivate", m.agents.Deactivate)

	pm := api.Group("/agency-payment-methods")
	m.payments.Register(pm)
	pm.POST("/:id/activate", m.payments.Activate)
	pm.POST("/:id/deactivate", m.payments.Deactivate)

	api.GET("/distributors/:id/agencies", m.agencies.ListByParam("distributor_id", nil))
	api.GET("/distributors/:id/agencies/active", m.agencies.ListByParam("distributor_id", active))
}

// byAgent handles GET /agent-agencies/agent/:agentId. Agent ids come from
// the identity provider and are not UUIDs.
func (m *Module) byAgent(c *gin.Context) {
	agentID := c.Param("agentId")
	if agentID == "" {
		pkg.Error(c, domain.ValidationError("agentId is required"))
		return
	}

	items, err := m.agents.Service().ListBy(c.Request.Context(), map[string]any{"agent_id": agentID})
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, items)
}
