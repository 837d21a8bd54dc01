package crud

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
	"github.com/simp-lee/backoffice/internal/store"
)

// Handler exposes a Service over the uniform REST shape:
//
//	POST   /            create
//	GET    /            paged list, query-string criteria
//	POST   /filter      paged filter, FilterRequest body
//	GET    /:id         get
//	PUT    /:id         update
//	DELETE /:id         delete
type Handler[E any, P store.RecordPtr[E], D any] struct {
	svc *Service[E, P, D]
}

// NewHandler creates a Handler for svc.
func NewHandler[E any, P store.RecordPtr[E], D any](svc *Service[E, P, D]) *Handler[E, P, D] {
	if svc == nil {
		panic("crud.NewHandler: service must not be nil")
	}
	return &Handler[E, P, D]{svc: svc}
}

// RouteOption adjusts which routes Register installs.
type RouteOption func(*routeOptions)

type routeOptions struct {
	noUpdate bool
}

// WithoutUpdate omits PUT /:id for append-only collections.
func WithoutUpdate() RouteOption {
	return func(o *routeOptions) { o.noUpdate = true }
}

// Register installs the uniform routes on g, which is the collection group.
func (h *Handler[E, P, D]) Register(g *gin.RouterGroup, opts ...RouteOption) {
	var o routeOptions
	for _, opt := range opts {
		opt(&o)
	}

	g.POST("", h.Create)
	g.GET("", h.List)
	g.POST("/filter", h.Filter)
	g.GET("/:id", h.Get)
	if !o.noUpdate {
		g.PUT("/:id", h.Update)
	}
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /{collection}.
func (h *Handler[E, P, D]) Create(c *gin.Context) {
	var req D
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, dto)
}

// Get handles GET /{collection}/:id.
func (h *Handler[E, P, D]) Get(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	dto, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}

// List handles GET /{collection}.
func (h *Handler[E, P, D]) List(c *gin.Context) {
	page, err := h.svc.Filter(c.Request.Context(), pkg.ParseFilterRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, page)
}

// Filter handles POST /{collection}/filter.
func (h *Handler[E, P, D]) Filter(c *gin.Context) {
	var req pkg.FilterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	page, err := h.svc.Filter(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, page)
}

// Update handles PUT /{collection}/:id.
func (h *Handler[E, P, D]) Update(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	var req D
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := h.svc.Update(c.Request.Context(), id, &req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}

// Delete handles DELETE /{collection}/:id.
func (h *Handler[E, P, D]) Delete(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.NoContent(c)
}

// ListByParam returns a handler listing the rows whose column equals the
// UUID in path parameter "id", e.g. GET /distributors/:id/products.
func (h *Handler[E, P, D]) ListByParam(column string, extra map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := ParseID(c, "id")
		if !ok {
			return
		}

		conds := map[string]any{column: id}
		for k, v := range extra {
			conds[k] = v
		}
		items, err := h.svc.ListBy(c.Request.Context(), conds)
		if err != nil {
			pkg.Error(c, err)
			return
		}

		pkg.Success(c, items)
	}
}

// ParseID reads a UUID path parameter. On failure it writes a 400 response
// and returns false.
func ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		pkg.Error(c, domain.ValidationError("invalid "+param+" "+raw+": must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}
