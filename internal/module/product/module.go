// Package product serves products and the lending configurations attached to
// them, and keeps the lending-by-distributor read model fresh.
package product

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/pkg"
	"github.com/simp-lee/backoffice/internal/readmodel"
)

type (
	productHandler = crud.Handler[domain.Product, *domain.Product, ProductDTO]
	lendingHandler = crud.Handler[domain.LendingConfiguration, *domain.LendingConfiguration, LendingConfigurationDTO]
)

// Module implements app.Module for the product area.
type Module struct {
	products *productHandler
	lending  *lendingHandler
	reader   readmodel.LendingReader
}

// NewModule builds the area's services on deps. Product writes flush the
// lending view, since a product may move between distributors; lending writes
// invalidate the owning distributor, and the previous one when the
// configuration moved to another product. Panics if deps.DB or lending is nil.
func NewModule(deps module.Deps, lending *readmodel.Lending) *Module {
	if lending == nil {
		panic("product.NewModule: lending read model must not be nil")
	}

	products := module.NewService[domain.Product, *domain.Product](deps, productMapper, productFields,
		crud.WithDefaults(func(e *domain.Product) { e.IsActive = true }),
		crud.WithOnChange(func(context.Context, *domain.Product) { lending.Flush() }),
	)
	configs := module.NewService[domain.LendingConfiguration, *domain.LendingConfiguration](deps, lendingMapper, lendingFields,
		crud.WithDefaults(func(e *domain.LendingConfiguration) { e.IsActive = true }),
		crud.WithOnChange(func(ctx context.Context, e *domain.LendingConfiguration) {
			lending.InvalidateProduct(ctx, e.ProductID)
		}),
		crud.WithOnReplace(func(ctx context.Context, before, after *domain.LendingConfiguration) {
			if before.ProductID != after.ProductID {
				lending.InvalidateProduct(ctx, before.ProductID)
			}
		}),
	)

	return &Module{
		products: crud.NewHandler(products),
		lending:  crud.NewHandler(configs),
		reader:   lending,
	}
}

var active = map[string]any{"is_active": true}

// RegisterRoutes registers the product area routes on api.
func (m *Module) RegisterRoutes(api *gin.RouterGroup) {
	p := api.Group("/products")
	m.products.Register(p)
	p.GET("/active", m.products.ListWhere(active))
	p.POST("/:id/activate", m.products.Activate)
	p.POST("/:id/deactivate", m.products.Deactivate)
	p.GET("/:id/lending-configurations", m.lending.ListByParam("product_id", nil))
	p.GET("/:id/lending-configurations/active", m.lending.ListByParam("product_id", active))

	l := api.Group("/lending-configurations")
	m.lending.Register(l)
	l.GET("/active", m.lending.ListWhere(active))
	l.POST("/:id/activate", m.lending.Activate)
	l.POST("/:id/deactivate", m.lending.Deactivate)

	api.GET("/distributors/:id/products", m.products.ListByParam("distributor_id", nil))
	api.GET("/distributors/:id/products/active", m.products.ListByParam("distributor_id", active))
	api.GET("/distributors/:id/lending-configurations", m.lendingByDistributor)
}

// lendingByDistributor handles GET /distributors/:id/lending-configurations.
func (m *Module) lendingByDistributor(c *gin.Context) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}

	views, err := m.reader.LendingConfigurationsByDistributor(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, views)
}
