package pkg

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/domain"
)

type widget struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name      string          `gorm:"column:name"`
	Status    string          `gorm:"column:status"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(19,4)"`
	Quantity  int             `gorm:"column:quantity"`
	IsActive  bool            `gorm:"column:is_active"`
	OwnerID   uuid.UUID       `gorm:"type:uuid;column:owner_id"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime:false"`
	CreatedBy string          `gorm:"column:created_by"`
	UpdatedBy string          `gorm:"column:updated_by"`
}

var widgetFields = NewFieldSet(map[string]Field{
	"name":       Eq("name", KindString),
	"namePrefix": Prefix("name"),
	"status":     Eq("status", KindString),
	"amount":     Eq("amount", KindDecimal),
	"amountFrom": Gte("amount", KindDecimal),
	"quantity":   Eq("quantity", KindInt),
	"isActive":   Eq("is_active", KindBool),
	"ownerId":    Eq("owner_id", KindUUID),
})

var (
	baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ownerA   = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	ownerB   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
)

func setupWidgetDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&widget{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	statuses := []string{"PENDING", "APPROVED", "PENDING", "SIGNED", "PENDING", "APPROVED", "PENDING"}
	for i, status := range statuses {
		owner := ownerA
		if i%2 == 1 {
			owner = ownerB
		}
		w := widget{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("widget-%d", i),
			Status:    status,
			Amount:    decimal.NewFromInt(int64(100 * (i + 1))),
			Quantity:  i,
			IsActive:  i%3 != 0,
			OwnerID:   owner,
			CreatedAt: baseTime.Add(time.Duration(i) * 24 * time.Hour),
			UpdatedAt: baseTime.Add(time.Duration(i) * 24 * time.Hour),
		}
		if err := db.Create(&w).Error; err != nil {
			t.Fatalf("failed to seed widget: %v", err)
		}
	}
	return db
}

func TestQuery_EmptyCriteriaReturnsAllPaginated(t *testing.T) {
	db := setupWidgetDB(t)

	page, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{Criteria: map[string]any{}, Page: 0, Size: 5})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Content) != 5 {
		t.Errorf("len(Content) = %d; want 5", len(page.Content))
	}
	if page.TotalElements != 7 {
		t.Errorf("TotalElements = %d; want 7", page.TotalElements)
	}
	if page.TotalPages != 2 {
		t.Errorf("TotalPages = %d; want 2", page.TotalPages)
	}

	page, err = Query[widget](context.Background(), db, widgetFields, FilterRequest{Size: 50})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(page.Content) != 7 {
		t.Errorf("len(Content) = %d; want 7 when size exceeds rows", len(page.Content))
	}
}

func TestQuery_SingleCriteriaReturnsOnlyMatches(t *testing.T) {
	db := setupWidgetDB(t)

	page, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{
		Criteria: map[string]any{"status": "PENDING"},
		Size:     20,
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if page.TotalElements != 4 {
		t.Errorf("TotalElements = %d; want 4", page.TotalElements)
	}
	for _, w := range page.Content {
		if w.Status != "PENDING" {
			t.Errorf("got widget with status %q", w.Status)
		}
	}
}

func TestQuery_CriteriaKinds(t *testing.T) {
	db := setupWidgetDB(t)

	tests := []struct {
		name     string
		criteria map[string]any
		want     int64
	}{
		{"prefix", map[string]any{"namePrefix": "widget-1"}, 1},
		{"prefix escapes wildcards", map[string]any{"namePrefix": "widget_%"}, 0},
		{"bool from json", map[string]any{"isActive": false}, 3},
		{"bool from query string", map[string]any{"isActive": "true"}, 4},
		{"int from json number", map[string]any{"quantity": float64(2)}, 1},
		{"int at float precision limit", map[string]any{"quantity": float64(1 << 53)}, 0},
		{"decimal equality", map[string]any{"amount": "300"}, 1},
		{"decimal range", map[string]any{"amountFrom": 500.0}, 3},
		{"uuid", map[string]any{"ownerId": ownerB.String()}, 3},
		{"time range inclusive", map[string]any{
			"createdFrom": baseTime.Add(24 * time.Hour).Format(time.RFC3339),
			"createdTo":   baseTime.Add(3 * 24 * time.Hour).Format(time.RFC3339),
		}, 3},
		{"date only lower bound", map[string]any{"createdFrom": "2024-03-05"}, 3},
		{"AND across keys", map[string]any{"status": "PENDING", "ownerId": ownerA.String()}, 4},
		{"AND narrowing", map[string]any{"status": "APPROVED", "isActive": true}, 2},
		{"null value ignored", map[string]any{"status": nil}, 7},
		{"unknown key ignored", map[string]any{"password": "x", "status": "SIGNED"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{Criteria: tt.criteria, Size: 20})
			if err != nil {
				t.Fatalf("Query() error = %v", err)
			}
			if page.TotalElements != tt.want {
				t.Errorf("TotalElements = %d; want %d", page.TotalElements, tt.want)
			}
			if int64(len(page.Content)) != tt.want {
				t.Errorf("len(Content) = %d; want %d", len(page.Content), tt.want)
			}
		})
	}
}

func TestQuery_InvalidValueIsValidationError(t *testing.T) {
	db := setupWidgetDB(t)

	tests := []struct {
		name     string
		criteria map[string]any
	}{
		{"bad uuid", map[string]any{"ownerId": "not-a-uuid"}},
		{"bad bool", map[string]any{"isActive": "maybe"}},
		{"fractional int", map[string]any{"quantity": 1.5}},
		{"int beyond float precision", map[string]any{"quantity": 1e300}},
		{"negative int beyond float precision", map[string]any{"quantity": -1e19}},
		{"infinite int", map[string]any{"quantity": math.Inf(1)}},
		{"bad time", map[string]any{"createdFrom": "yesterday"}},
		{"number for string field", map[string]any{"status": 12.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{Criteria: tt.criteria})
			if !domain.IsValidation(err) {
				t.Errorf("Query() error = %v; want validation error", err)
			}
		})
	}
}

func TestQuery_OutOfRangePageIsEmptyWithTotals(t *testing.T) {
	db := setupWidgetDB(t)

	page, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{Page: 10, Size: 5})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if page.Content == nil || len(page.Content) != 0 {
		t.Errorf("Content = %v; want empty slice", page.Content)
	}
	if page.TotalElements != 7 {
		t.Errorf("TotalElements = %d; want 7", page.TotalElements)
	}
	if page.Page != 10 || page.Size != 5 {
		t.Errorf("Page/Size = %d/%d; want 10/5", page.Page, page.Size)
	}

	for _, p := range []int{2, math.MaxInt/100 + 1, math.MaxInt} {
		huge, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{Page: p, Size: 100})
		if err != nil {
			t.Fatalf("Query(page %d) error = %v", p, err)
		}
		if len(huge.Content) != 0 || huge.TotalElements != 7 || huge.TotalPages != 1 {
			t.Errorf("page %d = %d rows, total %d, pages %d; want 0 rows, total 7, 1 page",
				p, len(huge.Content), huge.TotalElements, huge.TotalPages)
		}
	}
}

func TestQuery_SortAndStablePaging(t *testing.T) {
	db := setupWidgetDB(t)

	page, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{
		Size: 3,
		Sort: []SortOrder{{Field: "quantity", Direction: "asc"}},
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	for i, w := range page.Content {
		if w.Quantity != i {
			t.Errorf("Content[%d].Quantity = %d; want %d", i, w.Quantity, i)
		}
	}

	// Default order is newest first.
	page, err = Query[widget](context.Background(), db, widgetFields, FilterRequest{Size: 2, Sort: []SortOrder{{Field: "bogus"}}})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if page.Content[0].Name != "widget-6" || page.Content[1].Name != "widget-5" {
		t.Errorf("default order = [%s %s]; want [widget-6 widget-5]", page.Content[0].Name, page.Content[1].Name)
	}

	seen := map[uuid.UUID]bool{}
	for p := 0; p < 3; p++ {
		page, err := Query[widget](context.Background(), db, widgetFields, FilterRequest{
			Page: p,
			Size: 3,
			Sort: []SortOrder{{Field: "status", Direction: "asc"}},
		})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		for _, w := range page.Content {
			if seen[w.ID] {
				t.Errorf("widget %s returned on more than one page", w.Name)
			}
			seen[w.ID] = true
		}
	}
	if len(seen) != 7 {
		t.Errorf("paged through %d widgets; want 7", len(seen))
	}
}

func TestNewFieldSet_PanicsOnBadColumn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for malformed column")
		}
	}()
	NewFieldSet(map[string]Field{"evil": Eq("name; DROP TABLE x", KindString)})
}

func TestFilterRequest_Normalize(t *testing.T) {
	got := FilterRequest{Page: -1, Size: 1000}.Normalize()
	if got.Page != 0 || got.Size != 100 {
		t.Errorf("Normalize() = page %d size %d; want 0 100", got.Page, got.Size)
	}
}
