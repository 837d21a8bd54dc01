package pkg

import (
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	dbtest "gorm.io/gorm/utils/tests"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(queryParams url.Values) *gin.Context {
	req := httptest.NewRequest(http.MethodGet, "/?"+queryParams.Encode(), nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c
}

func TestParseFilterRequest_Defaults(t *testing.T) {
	c := newTestContext(url.Values{})
	req := ParseFilterRequest(c)

	if req.Page != 0 {
		t.Errorf("expected Page=0, got %d", req.Page)
	}
	if req.Size != 20 {
		t.Errorf("expected Size=20, got %d", req.Size)
	}
	if len(req.Sort) != 0 {
		t.Errorf("expected no sort, got %v", req.Sort)
	}
	if len(req.Criteria) != 0 {
		t.Errorf("expected empty Criteria, got %v", req.Criteria)
	}
}

func TestParseFilterRequest_CustomValues(t *testing.T) {
	c := newTestContext(url.Values{
		"page":       {"3"},
		"size":       {"50"},
		"sort":       {"name:asc,createdAt:desc"},
		"status":     {"PENDING"},
		"namePrefix": {"Ac"},
	})
	req := ParseFilterRequest(c)

	if req.Page != 3 {
		t.Errorf("expected Page=3, got %d", req.Page)
	}
	if req.Size != 50 {
		t.Errorf("expected Size=50, got %d", req.Size)
	}
	want := []SortOrder{{"name", "asc"}, {"createdAt", "desc"}}
	if len(req.Sort) != len(want) {
		t.Fatalf("expected %d sort terms, got %v", len(want), req.Sort)
	}
	for i := range want {
		if req.Sort[i] != want[i] {
			t.Errorf("Sort[%d] = %+v; want %+v", i, req.Sort[i], want[i])
		}
	}
	if req.Criteria["status"] != "PENDING" {
		t.Errorf("expected Criteria[status]=PENDING, got %v", req.Criteria["status"])
	}
	if req.Criteria["namePrefix"] != "Ac" {
		t.Errorf("expected Criteria[namePrefix]=Ac, got %v", req.Criteria["namePrefix"])
	}
	if _, ok := req.Criteria["page"]; ok {
		t.Error("reserved param page should not become a criteria entry")
	}
}

func TestParseFilterRequest_Clamping(t *testing.T) {
	tests := []struct {
		name     string
		query    url.Values
		wantPage int
		wantSize int
	}{
		{"negative page", url.Values{"page": {"-5"}}, 0, 20},
		{"invalid page", url.Values{"page": {"abc"}}, 0, 20},
		{"size below minimum", url.Values{"size": {"0"}}, 0, 20},
		{"negative size", url.Values{"size": {"-5"}}, 0, 20},
		{"size above maximum", url.Values{"size": {"200"}}, 0, 100},
		{"invalid size", url.Values{"size": {"abc"}}, 0, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := ParseFilterRequest(newTestContext(tt.query))
			if req.Page != tt.wantPage {
				t.Errorf("Page = %d; want %d", req.Page, tt.wantPage)
			}
			if req.Size != tt.wantSize {
				t.Errorf("Size = %d; want %d", req.Size, tt.wantSize)
			}
		})
	}
}

func TestParseFilterRequest_EmptyCriteriaValuesIgnored(t *testing.T) {
	c := newTestContext(url.Values{
		"status": {""},
		"name":   {"acme"},
	})
	req := ParseFilterRequest(c)

	if _, ok := req.Criteria["status"]; ok {
		t.Error("empty status should be ignored")
	}
	if req.Criteria["name"] != "acme" {
		t.Errorf("expected Criteria[name]=acme, got %v", req.Criteria["name"])
	}
}

func TestNewPage(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		size       int
		wantPages  int
		itemsCount int
	}{
		{"exact division", 100, 20, 5, 20},
		{"remainder", 101, 20, 6, 20},
		{"single item", 1, 20, 1, 1},
		{"empty", 0, 20, 0, 0},
		{"zero size", 10, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]int, tt.itemsCount)
			p := NewPage(items, tt.total, FilterRequest{Page: 1, Size: tt.size})
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d; want %d", p.TotalPages, tt.wantPages)
			}
			if p.TotalElements != tt.total {
				t.Errorf("TotalElements = %d; want %d", p.TotalElements, tt.total)
			}
			if p.Page != 1 {
				t.Errorf("Page = %d; want 1", p.Page)
			}
		})
	}
}

func TestNewPage_NilItemsBecomesEmptySlice(t *testing.T) {
	p := NewPage[string](nil, 0, FilterRequest{Size: 10})
	if p.Content == nil {
		t.Fatal("Content should be an empty slice, not nil")
	}
	if len(p.Content) != 0 {
		t.Errorf("expected 0 items, got %d", len(p.Content))
	}
}

func TestMapPage(t *testing.T) {
	src := NewPage([]int{1, 2, 3}, 7, FilterRequest{Page: 2, Size: 3})
	got := MapPage(src, func(n *int) string { return string(rune('a' + *n - 1)) })

	if len(got.Content) != 3 || got.Content[0] != "a" || got.Content[2] != "c" {
		t.Errorf("Content = %v; want [a b c]", got.Content)
	}
	if got.TotalElements != 7 || got.Page != 2 || got.Size != 3 || got.TotalPages != 3 {
		t.Errorf("metadata not preserved: %+v", got)
	}
}

// --------------- helpers for GORM scope tests ---------------

func newDummyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(dbtest.DummyDialector{}, &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	return db
}

func orderColumns(t *testing.T, db *gorm.DB) []clause.OrderByColumn {
	t.Helper()
	c, ok := db.Statement.Clauses["ORDER BY"]
	if !ok {
		t.Fatal("expected ORDER BY clause")
	}
	orderBy, ok := c.Expression.(clause.OrderBy)
	if !ok {
		t.Fatalf("unexpected ORDER BY expression %T", c.Expression)
	}
	return orderBy.Columns
}

// --------------- Sort scope ---------------

func TestSort(t *testing.T) {
	fields := NewFieldSet(map[string]Field{
		"name":       Eq("name", KindString),
		"namePrefix": Prefix("name"),
	})

	tests := []struct {
		name  string
		sort  []SortOrder
		first string
		desc  bool
	}{
		{"allowed field asc", []SortOrder{{"name", "asc"}}, "name", false},
		{"allowed field desc", []SortOrder{{"name", "DESC"}}, "name", true},
		{"empty direction defaults to asc", []SortOrder{{"name", ""}}, "name", false},
		{"audit field", []SortOrder{{"updatedAt", "asc"}}, "updated_at", false},
		{"field not in allow-list", []SortOrder{{"password", "asc"}}, "created_at", true},
		{"prefix key is not sortable", []SortOrder{{"namePrefix", "asc"}}, "created_at", true},
		{"invalid direction", []SortOrder{{"name", "up"}}, "created_at", true},
		{"injection attempt", []SortOrder{{"name;DROP TABLE users--", "asc"}}, "created_at", true},
		{"no terms", nil, "created_at", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Sort(fields, tt.sort)(newDummyDB(t))
			cols := orderColumns(t, result)
			if len(cols) != 2 {
				t.Fatalf("expected 2 order columns, got %+v", cols)
			}
			if cols[0].Column.Name != tt.first || cols[0].Desc != tt.desc {
				t.Errorf("first order = %s desc=%v; want %s desc=%v", cols[0].Column.Name, cols[0].Desc, tt.first, tt.desc)
			}
			if cols[1].Column.Name != "id" || cols[1].Desc {
				t.Errorf("tie-breaker = %+v; want id asc", cols[1])
			}
		})
	}
}

// --------------- Paginate scope ---------------

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		size       int
		wantOffset int
	}{
		{"first page", 0, 10, 0},
		{"second page", 1, 20, 20},
		{"large page number", 100, 50, 5000},
		{"offset past MaxInt is clamped", math.MaxInt / 10, 100, math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Paginate(FilterRequest{Page: tt.page, Size: tt.size})(newDummyDB(t))
			c, ok := result.Statement.Clauses["LIMIT"]
			if !ok {
				t.Fatal("expected LIMIT clause to be applied")
			}
			limit := c.Expression.(clause.Limit)
			if limit.Offset != tt.wantOffset {
				t.Errorf("Offset = %d; want %d", limit.Offset, tt.wantOffset)
			}
			if limit.Limit == nil || *limit.Limit != tt.size {
				t.Errorf("Limit = %v; want %d", limit.Limit, tt.size)
			}
		})
	}
}
