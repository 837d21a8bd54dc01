// Package terms serves terms and conditions templates and the per-distributor
// copies that get signed.
package terms

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// ActionSign is the transition name reported when terms are signed.
const ActionSign = "sign"

type termsService = crud.Service[domain.DistributorTermsAndConditions, *domain.DistributorTermsAndConditions, DistributorTermsDTO]

// Module implements app.Module for terms and conditions.
type Module struct {
	templates *crud.Handler[domain.TermsAndConditionsTemplate, *domain.TermsAndConditionsTemplate, TemplateDTO]
	terms     *crud.Handler[domain.DistributorTermsAndConditions, *domain.DistributorTermsAndConditions, DistributorTermsDTO]
}

// NewModule builds the area's services on deps. Templates start active and
// distributor terms start as DRAFT.
func NewModule(deps module.Deps) *Module {
	templates := module.NewService[domain.TermsAndConditionsTemplate, *domain.TermsAndConditionsTemplate](deps, templateMapper, templateFields,
		crud.WithDefaults(func(e *domain.TermsAndConditionsTemplate) { e.IsActive = true }),
	)
	terms := module.NewService[domain.DistributorTermsAndConditions, *domain.DistributorTermsAndConditions](deps, termsMapper, termsFields,
		crud.WithDefaults(func(e *domain.DistributorTermsAndConditions) { e.Status = domain.StatusDraft }),
	)
	return &Module{
		templates: crud.NewHandler(templates),
		terms:     crud.NewHandler(terms),
	}
}

// RegisterRoutes registers the terms routes on api.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	tpl := api.Group("/terms-templates")
	m.templates.Register(tpl)
	tpl.GET("/active", m.templates.ListWhere(map[string]any{"is_active": true}))
	tpl.POST("/:id/activate", m.templates.Activate)
	tpl.POST("/:id/deactivate", m.templates.Deactivate)

	dt := api.Group("/distributor-terms")
	m.terms.Register(dt)
	dt.POST("/:id/sign", m.sign)

	api.GET("/distributors/:id/terms", m.terms.ListByParam("distributor_id", nil))
}

// Sign marks terms id as SIGNED by signerID, or by the request actor when
// signerID is empty. Title, content and version are left as they are. Terms
// already signed are a Conflict.
func Sign(ctx context.Context, svc *termsService, id uuid.UUID, signerID string) (*DistributorTermsDTO, error) {
	if signerID == "" {
		signerID = domain.ActorFrom(ctx)
	}
	return svc.Transition(ctx, id, ActionSign, func(e *domain.DistributorTermsAndConditions) error {
		if e.Status == domain.StatusSigned {
			return domain.ConflictError(svc.Entity(), "terms "+id.String()+" are already signed")
		}
		now := svc.Now()
		e.Status = domain.StatusSigned
		e.SignedBy = signerID
		e.SignedDate = &now
		return nil
	})
}

// sign handles POST /distributor-terms/:id/sign.
func (m *Module) sign(c *gin.Context) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}

	var req SignRequest
	if c.Request.ContentLength != 0 && !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := Sign(c.Request.Context(), m.terms.Service(), id, req.SignerID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}
