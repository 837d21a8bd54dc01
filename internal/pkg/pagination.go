package pkg

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultPage     = 0
	defaultPageSize = 20
	maxPageSize     = 100
)

// reservedParams lists query parameter names used for pagination/sorting, not for filtering.
var reservedParams = map[string]bool{
	"page": true,
	"size": true,
	"sort": true,
}

// ParseFilterRequest builds a FilterRequest from query params so GET list
// endpoints share the filter engine. Sort is "field:dir[,field:dir...]";
// every other non-empty param becomes a criteria entry.
func ParseFilterRequest(c *gin.Context) FilterRequest {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if err != nil {
		page = defaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil {
		size = defaultPageSize
	}

	var orders []SortOrder
	if raw := c.Query("sort"); raw != "" {
		for _, term := range strings.Split(raw, ",") {
			field, dir, _ := strings.Cut(term, ":")
			orders = append(orders, SortOrder{Field: strings.TrimSpace(field), Direction: strings.TrimSpace(dir)})
		}
	}

	criteria := make(map[string]any)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			criteria[key] = values[0]
		}
	}

	return FilterRequest{
		Criteria: criteria,
		Page:     page,
		Size:     size,
		Sort:     orders,
	}.Normalize()
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the
// normalized request. An offset past math.MaxInt is clamped to it.
func Paginate(req FilterRequest) func(db *gorm.DB) *gorm.DB {
	req = req.Normalize()
	offset := math.MaxInt
	if req.Page <= math.MaxInt/req.Size {
		offset = req.Page * req.Size
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(offset).Limit(req.Size)
	}
}

// Sort returns a GORM scope that applies ORDER BY for the requested fields.
// Fields outside the allow-list and unknown directions are silently ignored.
// Without a usable term the order is newest first; id is always the final
// tie-breaker so paging is stable.
func Sort(fields FieldSet, orders []SortOrder) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		applied := 0
		for _, o := range orders {
			column, ok := fields.sortColumn(o.Field)
			if !ok {
				continue
			}
			var desc bool
			switch strings.ToLower(o.Direction) {
			case "", "asc":
			case "desc":
				desc = true
			default:
				continue
			}
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc})
			applied++
		}
		if applied == 0 {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: true})
		}
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
}
