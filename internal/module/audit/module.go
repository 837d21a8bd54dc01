// Package audit serves the append-only audit log and records every entity
// change into it.
package audit

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/event"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Module implements app.Module for audit logs.
type Module struct {
	logs *crud.Handler[domain.AuditLog, *domain.AuditLog, LogDTO]
}

// NewModule builds the audit log service on deps. Writes to the log itself
// only go to the debug logger, so they are never audited again.
func NewModule(deps module.Deps) *Module {
	svc := module.NewService[domain.AuditLog, *domain.AuditLog](deps, logMapper, logFields,
		crud.WithPublisher[domain.AuditLog](event.NewLogPublisher(deps.Logger)),
	)
	return &Module{logs: crud.NewHandler(svc)}
}

// RegisterRoutes registers the audit log routes on api. Entries cannot be
// edited.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	g := api.Group("/audit-logs")
	m.logs.Register(g, crud.WithoutUpdate())
	g.GET("/entity/:type/:id", m.byEntity)
}

// byEntity handles GET /audit-logs/entity/:type/:id. Dashes in type stand
// for the spaces of multi-word entity names, e.g. leasing-contract.
func (m *Module) byEntity(c *gin.Context) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}
	items, err := m.logs.Service().ListBy(c.Request.Context(), map[string]any{
		"entity_type": strings.ReplaceAll(c.Param("type"), "-", " "),
		"entity_id":   id,
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, items)
}
