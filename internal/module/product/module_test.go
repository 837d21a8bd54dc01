package product

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/simp-lee/backoffice/internal/module"
	"github.com/simp-lee/backoffice/internal/module/moduletest"
	"github.com/simp-lee/backoffice/internal/readmodel"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	deps, _ := moduletest.NewDeps(t)
	sqlDB, err := deps.DB.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	lending := readmodel.NewLending(sqlDB, "sqlite", time.Minute, nil, nil)
	return moduletest.NewRouter(NewModule(deps, lending))
}

func TestModuleRegisterRoutes(t *testing.T) {
	r := setup(t)

	expected := append(moduletest.CRUDRoutes("products"), moduletest.CRUDRoutes("lending-configurations")...)
	expected = append(expected,
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/products/active"},
		moduletest.Route{Method: http.MethodPost, Path: "/api/v1/products/:id/activate"},
		moduletest.Route{Method: http.MethodPost, Path: "/api/v1/products/:id/deactivate"},
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/products/:id/lending-configurations"},
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/products/:id/lending-configurations/active"},
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/lending-configurations/active"},
		moduletest.Route{Method: http.MethodPost, Path: "/api/v1/lending-configurations/:id/activate"},
		moduletest.Route{Method: http.MethodPost, Path: "/api/v1/lending-configurations/:id/deactivate"},
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/distributors/:id/products"},
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/distributors/:id/products/active"},
		moduletest.Route{Method: http.MethodGet, Path: "/api/v1/distributors/:id/lending-configurations"},
	)
	moduletest.AssertRoutes(t, r, expected)
}

func TestNewModule_PanicsOnMissingDeps(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil read model", func() {
			deps, _ := moduletest.NewDeps(t)
			NewModule(deps, nil)
		}},
		{"nil database", func() {
			NewModule(module.Deps{}, readmodel.NewLending(nil, "sqlite", time.Minute, nil, nil))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

const distributorID = "0f8fad5b-d9cb-469f-a165-70867728950e"

func createProduct(t *testing.T, r http.Handler, body string) ProductDTO {
	t.Helper()
	return moduletest.Data[ProductDTO](t, moduletest.Do(r, http.MethodPost, "/api/v1/products", body), http.StatusCreated)
}

func TestProduct_CreateKeepsSpecificationsAndDefaults(t *testing.T) {
	r := setup(t)

	p := createProduct(t, r, `{"distributorId":"`+distributorID+`","name":"Laptop","sku":"LP-1","price":"1299.99","currency":"EUR","specifications":{"ram":"16GB","ports":3}}`)
	if p.IsActive == nil || !*p.IsActive {
		t.Error("new product should default to active")
	}
	if !p.Price.Equal(decimal.RequireFromString("1299.99")) {
		t.Errorf("price = %s; want 1299.99", p.Price)
	}

	got := moduletest.Data[ProductDTO](t, moduletest.Do(r, http.MethodGet, "/api/v1/products/"+p.ID.String(), ""), http.StatusOK)
	if string(got.Specifications) != `{"ram":"16GB","ports":3}` {
		t.Errorf("specifications = %s", got.Specifications)
	}

	w := moduletest.Do(r, http.MethodPost, "/api/v1/products", `{"distributorId":"`+distributorID+`","name":"No price"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing price status = %d; want 400", w.Code)
	}
}

func TestProduct_ByDistributorAndActive(t *testing.T) {
	r := setup(t)

	laptop := createProduct(t, r, `{"distributorId":"`+distributorID+`","name":"Laptop","price":"1000"}`)
	createProduct(t, r, `{"distributorId":"`+distributorID+`","name":"Phone","price":"500"}`)
	createProduct(t, r, `{"distributorId":"1b4e28ba-2fa1-11d2-883f-0016d3cca427","name":"Tractor","price":"90000"}`)

	moduletest.Data[ProductDTO](t, moduletest.Do(r, http.MethodPost, "/api/v1/products/"+laptop.ID.String()+"/deactivate", ""), http.StatusOK)

	all := moduletest.Data[[]ProductDTO](t, moduletest.Do(r, http.MethodGet, "/api/v1/distributors/"+distributorID+"/products", ""), http.StatusOK)
	if len(all) != 2 {
		t.Errorf("products = %d; want 2", len(all))
	}
	onlyActive := moduletest.Data[[]ProductDTO](t, moduletest.Do(r, http.MethodGet, "/api/v1/distributors/"+distributorID+"/products/active", ""), http.StatusOK)
	if len(onlyActive) != 1 || onlyActive[0].Name != "Phone" {
		t.Errorf("active products = %+v; want only Phone", onlyActive)
	}
	everywhere := moduletest.Data[[]ProductDTO](t, moduletest.Do(r, http.MethodGet, "/api/v1/products/active", ""), http.StatusOK)
	if len(everywhere) != 2 {
		t.Errorf("active products across distributors = %d; want 2", len(everywhere))
	}
}

func TestLending_ReadModelFollowsWrites(t *testing.T) {
	r := setup(t)
	laptop := createProduct(t, r, `{"distributorId":"`+distributorID+`","name":"Laptop","price":"1000"}`)
	path := "/api/v1/distributors/" + distributorID + "/lending-configurations"
	body := `{"productId":"` + laptop.ID.String() + `","minAmount":"100","maxAmount":"5000","interestRate":"0.125","maxTermMonths":24}`

	views := moduletest.Data[[]readmodel.LendingView](t, moduletest.Do(r, http.MethodGet, path, ""), http.StatusOK)
	if len(views) != 0 {
		t.Fatalf("views = %d; want 0 before any configuration", len(views))
	}

	first := moduletest.Data[LendingConfigurationDTO](t, moduletest.Do(r, http.MethodPost, "/api/v1/lending-configurations", body), http.StatusCreated)
	views = moduletest.Data[[]readmodel.LendingView](t, moduletest.Do(r, http.MethodGet, path, ""), http.StatusOK)
	if len(views) != 1 {
		t.Fatalf("views = %d; want 1 after create", len(views))
	}
	if views[0].ProductName != "Laptop" || !views[0].InterestRate.Equal(decimal.RequireFromString("0.125")) {
		t.Errorf("view = %+v", views[0])
	}

	moduletest.Data[LendingConfigurationDTO](t, moduletest.Do(r, http.MethodPost, "/api/v1/lending-configurations/"+first.ID.String()+"/deactivate", ""), http.StatusOK)
	views = moduletest.Data[[]readmodel.LendingView](t, moduletest.Do(r, http.MethodGet, path, ""), http.StatusOK)
	if len(views) != 1 || views[0].IsActive {
		t.Errorf("views = %+v; want the deactivated configuration", views)
	}

	w := moduletest.Do(r, http.MethodDelete, "/api/v1/products/"+laptop.ID.String(), "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete product status = %d", w.Code)
	}
	views = moduletest.Data[[]readmodel.LendingView](t, moduletest.Do(r, http.MethodGet, path, ""), http.StatusOK)
	if len(views) != 0 {
		t.Errorf("views = %d; want 0 once the product is gone", len(views))
	}
}

func TestLending_ByProduct(t *testing.T) {
	r := setup(t)
	laptop := createProduct(t, r, `{"distributorId":"`+distributorID+`","name":"Laptop","price":"1000"}`)
	pid := laptop.ID.String()

	for _, active := range []string{"true", "false"} {
		moduletest.Data[LendingConfigurationDTO](t, moduletest.Do(r, http.MethodPost, "/api/v1/lending-configurations",
			`{"productId":"`+pid+`","minAmount":"100","maxAmount":"5000","interestRate":"0.1","maxTermMonths":12,"isActive":`+active+`}`), http.StatusCreated)
	}

	all := moduletest.Data[[]LendingConfigurationDTO](t, moduletest.Do(r, http.MethodGet, "/api/v1/products/"+pid+"/lending-configurations", ""), http.StatusOK)
	if len(all) != 2 {
		t.Errorf("configurations = %d; want 2", len(all))
	}
	onlyActive := moduletest.Data[[]LendingConfigurationDTO](t, moduletest.Do(r, http.MethodGet, "/api/v1/products/"+pid+"/lending-configurations/active", ""), http.StatusOK)
	if len(onlyActive) != 1 {
		t.Errorf("active configurations = %d; want 1", len(onlyActive))
	}
}

func TestLending_MovingConfigurationRefreshesBothDistributors(t *testing.T) {
	r := setup(t)
	const otherDistributor = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
	laptop := createProduct(t, r, `{"distributorId":"`+distributorID+`","name":"Laptop","price":"1000"}`)
	tractor := createProduct(t, r, `{"distributorId":"`+otherDistributor+`","name":"Tractor","price":"90000"}`)

	views := func(distributor string) []readmodel.LendingView {
		t.Helper()
		return moduletest.Data[[]readmodel.LendingView](t,
			moduletest.Do(r, http.MethodGet, "/api/v1/distributors/"+distributor+"/lending-configurations", ""), http.StatusOK)
	}
	body := func(productID string) string {
		return `{"productId":"` + productID + `","minAmount":"100","maxAmount":"5000","interestRate":"0.1","maxTermMonths":12}`
	}

	cfg := moduletest.Data[LendingConfigurationDTO](t,
		moduletest.Do(r, http.MethodPost, "/api/v1/lending-configurations", body(laptop.ID.String())), http.StatusCreated)
	if got := views(distributorID); len(got) != 1 {
		t.Fatalf("first distributor views = %d; want 1", len(got))
	}
	if got := views(otherDistributor); len(got) != 0 {
		t.Fatalf("second distributor views = %d; want 0", len(got))
	}

	moduletest.Data[LendingConfigurationDTO](t,
		moduletest.Do(r, http.MethodPut, "/api/v1/lending-configurations/"+cfg.ID.String(), body(tractor.ID.String())), http.StatusOK)

	if got := views(distributorID); len(got) != 0 {
		t.Errorf("first distributor views = %+v; want none after the move", got)
	}
	got := views(otherDistributor)
	if len(got) != 1 || got[0].ProductName != "Tractor" {
		t.Errorf("second distributor views = %+v; want the moved configuration", got)
	}
}
