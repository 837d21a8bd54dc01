package store

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/metrics"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// setupTestDB creates an in-memory SQLite database with the distributor table.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.Distributor{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newDistributorRepo(db *gorm.DB, opts ...Option) *GormRepository[domain.Distributor, *domain.Distributor] {
	return NewGormRepository[domain.Distributor](db, opts...)
}

func newDistributor(name, taxID string) *domain.Distributor {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Distributor{
		BaseModel: domain.BaseModel{CreatedAt: now, UpdatedAt: now, CreatedBy: "admin", UpdatedBy: "admin", Version: 1},
		Name:      name,
		TaxID:     taxID,
		Status:    domain.StatusActive,
		IsActive:  true,
	}
}

func TestCreateAndFindByID(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	d := newDistributor("Acme", "TAX-1")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if d.ID == uuid.Nil {
		t.Fatal("expected generated ID after Create")
	}

	got, err := repo.FindByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Acme" || got.CreatedBy != "admin" || got.Version != 1 {
		t.Errorf("got %+v; want Name=Acme CreatedBy=admin Version=1", got)
	}
	if !got.CreatedAt.Equal(d.CreatedAt) {
		t.Errorf("CreatedAt = %v; want %v", got.CreatedAt, d.CreatedAt)
	}
}

func TestFindByID_NotFound(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	id := uuid.New()

	_, err := repo.FindByID(context.Background(), id)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	appErr := err.(*domain.AppError)
	if appErr.Entity != "distributor" || appErr.ID != id.String() {
		t.Errorf("error = %+v; want entity distributor id %s", appErr, id)
	}
}

func TestCreate_DuplicateID(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	first := newDistributor("Acme", "TAX-1")
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	dup := newDistributor("Acme Copy", "TAX-2")
	dup.ID = first.ID
	err := repo.Create(ctx, dup)
	if !domain.IsConflict(err) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestUpdate_CompareAndSwap(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	d := newDistributor("Acme", "TAX-1")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}

	d.Name = "Acme Corp"
	if err := repo.Update(ctx, d, 1); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if d.Version != 2 {
		t.Errorf("Version = %d; want 2", d.Version)
	}

	stale := *d
	stale.Name = "Lost Update"
	err := repo.Update(ctx, &stale, 1)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on stale version, got %v", err)
	}
	if stale.Version != 1 {
		t.Errorf("stale Version = %d; want it restored to 1", stale.Version)
	}

	got, err := repo.FindByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Name != "Acme Corp" || got.Version != 2 {
		t.Errorf("stored = %q v%d; want %q v2", got.Name, got.Version, "Acme Corp")
	}
}

func TestUpdate_ZeroValuesArePersisted(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	d := newDistributor("Acme", "TAX-1")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	d.IsActive = false
	d.Phone = ""
	if err := repo.Update(ctx, d, d.Version); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, _ := repo.FindByID(ctx, d.ID)
	if got.IsActive {
		t.Error("IsActive = true; want false to be written")
	}
}

func TestUpdate_MissingRow(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))

	d := newDistributor("Ghost", "TAX-9")
	d.ID = uuid.New()
	err := repo.Update(context.Background(), d, 1)
	if !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	d := newDistributor("Acme", "TAX-1")
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, d.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, d.ID); !domain.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, d.ID); !domain.IsNotFound(err) {
		t.Errorf("second Delete = %v; want not found", err)
	}
}

func TestFindByAndExistsBy(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	for i, name := range []string{"Acme", "Globex", "Initech"} {
		d := newDistributor(name, "TAX-"+name)
		d.CreatedAt = d.CreatedAt.Add(time.Duration(i) * time.Minute)
		d.IsActive = name != "Globex"
		if err := repo.Create(ctx, d); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(all) != 3 || all[0].Name != "Acme" || all[2].Name != "Initech" {
		t.Errorf("FindAll = %d rows in wrong order", len(all))
	}

	active, err := repo.FindBy(ctx, map[string]any{"is_active": true})
	if err != nil {
		t.Fatalf("FindBy: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("len(active) = %d; want 2", len(active))
	}

	ok, err := repo.ExistsBy(ctx, map[string]any{"name": "Globex"})
	if err != nil || !ok {
		t.Errorf("ExistsBy(Globex) = %v, %v; want true, nil", ok, err)
	}
	ok, err = repo.ExistsBy(ctx, map[string]any{"name": "Umbrella"})
	if err != nil || ok {
		t.Errorf("ExistsBy(Umbrella) = %v, %v; want false, nil", ok, err)
	}
}

func TestFilter_DelegatesToEngine(t *testing.T) {
	repo := newDistributorRepo(setupTestDB(t))
	ctx := context.Background()

	for _, name := range []string{"Acme", "Acme West", "Globex"} {
		if err := repo.Create(ctx, newDistributor(name, "TAX-"+name)); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	fields := pkg.NewFieldSet(map[string]pkg.Field{"namePrefix": pkg.Prefix("name")})
	page, err := repo.Filter(ctx, fields, pkg.FilterRequest{Criteria: map[string]any{"namePrefix": "Acme"}, Size: 10})
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if page.TotalElements != 2 {
		t.Errorf("TotalElements = %d; want 2", page.TotalElements)
	}

	_, err = repo.Filter(ctx, fields, pkg.FilterRequest{Criteria: map[string]any{"createdFrom": "soon"}})
	if !domain.IsValidation(err) {
		t.Errorf("expected validation error to pass through, got %v", err)
	}
}

func TestMetricsRecorded(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")
	repo := newDistributorRepo(setupTestDB(t), WithMetrics(m))
	ctx := context.Background()

	if err := repo.Create(ctx, newDistributor("Acme", "TAX-1")); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, _ = repo.FindByID(ctx, uuid.New())

	if got := testutil.ToFloat64(m.StoreOperations.WithLabelValues("distributor", "create", "ok")); got != 1 {
		t.Errorf("create ok count = %v; want 1", got)
	}
	if got := testutil.ToFloat64(m.StoreOperations.WithLabelValues("distributor", "find_by_id", "error")); got != 1 {
		t.Errorf("find_by_id error count = %v; want 1", got)
	}
}
