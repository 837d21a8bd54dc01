package pkg

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/domain"
)

// Op is the comparison a criteria key applies to its column.
type Op int

const (
	OpEq Op = iota
	OpPrefix
	OpGte
	OpLte
)

// Kind is the type a criteria value is coerced to before it reaches the query.
type Kind int

const (
	KindString Kind = iota
	KindBool
	KindInt
	KindDecimal
	KindUUID
	KindTime
)

// Field describes one filterable criteria key.
type Field struct {
	Column string
	Op     Op
	Kind   Kind
}

// Eq matches the column exactly.
func Eq(column string, kind Kind) Field { return Field{Column: column, Op: OpEq, Kind: kind} }

// Prefix matches string columns starting with the value.
func Prefix(column string) Field { return Field{Column: column, Op: OpPrefix, Kind: KindString} }

// Gte bounds the column from below, inclusive.
func Gte(column string, kind Kind) Field { return Field{Column: column, Op: OpGte, Kind: kind} }

// Lte bounds the column from above, inclusive.
func Lte(column string, kind Kind) Field { return Field{Column: column, Op: OpLte, Kind: kind} }

// FieldSet is the explicit allow-list of criteria keys for one entity, keyed by
// the DTO's JSON field name. Keys with OpEq double as sortable fields.
type FieldSet map[string]Field

// validColumn matches only alphanumeric characters and underscores.
var validColumn = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// NewFieldSet merges the audit fields shared by every entity into fields.
// It panics on a malformed column name since field sets are static.
func NewFieldSet(fields map[string]Field) FieldSet {
	fs := FieldSet{
		"id":          Eq("id", KindUUID),
		"createdAt":   Eq("created_at", KindTime),
		"createdBy":   Eq("created_by", KindString),
		"updatedAt":   Eq("updated_at", KindTime),
		"updatedBy":   Eq("updated_by", KindString),
		"createdFrom": Gte("created_at", KindTime),
		"createdTo":   Lte("created_at", KindTime),
		"updatedFrom": Gte("updated_at", KindTime),
		"updatedTo":   Lte("updated_at", KindTime),
	}
	for key, f := range fields {
		if !validColumn.MatchString(f.Column) {
			panic(fmt.Sprintf("pkg: invalid column %q for criteria key %q", f.Column, key))
		}
		fs[key] = f
	}
	return fs
}

// sortColumn resolves a DTO field name to a sortable column.
func (fs FieldSet) sortColumn(key string) (string, bool) {
	f, ok := fs[key]
	if !ok || f.Op != OpEq {
		return "", false
	}
	return f.Column, true
}

// SortOrder is one ORDER BY term expressed in DTO field names.
type SortOrder struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

// FilterRequest is the body of every POST /{collection}/filter call.
// Page is zero-based.
type FilterRequest struct {
	Criteria map[string]any `json:"criteria"`
	Page     int            `json:"page"`
	Size     int            `json:"size"`
	Sort     []SortOrder    `json:"sort"`
}

// Normalize clamps paging to supported bounds.
func (r FilterRequest) Normalize() FilterRequest {
	if r.Page < 0 {
		r.Page = defaultPage
	}
	if r.Size < 1 {
		r.Size = defaultPageSize
	}
	if r.Size > maxPageSize {
		r.Size = maxPageSize
	}
	return r
}

// Page is the pagination envelope returned by list and filter calls.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalPages    int   `json:"totalPages"`
}

// NewPage creates a Page with computed TotalPages.
func NewPage[T any](items []T, total int64, req FilterRequest) *Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Size)))
	}

	if items == nil {
		items = []T{}
	}

	return &Page[T]{
		Content:       items,
		TotalElements: total,
		Page:          req.Page,
		Size:          req.Size,
		TotalPages:    totalPages,
	}
}

// MapPage converts every row of p with fn, keeping the paging metadata.
func MapPage[E, D any](p *Page[E], fn func(*E) D) *Page[D] {
	out := make([]D, len(p.Content))
	for i := range p.Content {
		out[i] = fn(&p.Content[i])
	}
	return &Page[D]{
		Content:       out,
		TotalElements: p.TotalElements,
		Page:          p.Page,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
	}
}

// Query runs a filter request against the table of E: it ANDs every known,
// non-null criteria key, counts the matches and fetches the requested page.
// A page past the end yields empty content with correct totals.
func Query[E any](ctx context.Context, db *gorm.DB, fields FieldSet, req FilterRequest) (*Page[E], error) {
	req = req.Normalize()

	where, err := Criteria(fields, req.Criteria)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.WithContext(ctx).Model(new(E)).Scopes(where).Count(&total).Error; err != nil {
		return nil, err
	}

	var items []E
	// Compared in pages: Page*Size can overflow for huge page numbers.
	if int64(req.Page) < (total+int64(req.Size)-1)/int64(req.Size) {
		err := db.WithContext(ctx).Model(new(E)).
			Scopes(where, Sort(fields, req.Sort), Paginate(req)).
			Find(&items).Error
		if err != nil {
			return nil, err
		}
	}

	return NewPage(items, total, req), nil
}

// Criteria returns a GORM scope applying every allow-listed, non-null key of
// criteria. Keys outside fields are silently ignored; values that cannot be
// coerced to the declared kind produce a validation error.
func Criteria(fields FieldSet, criteria map[string]any) (func(db *gorm.DB) *gorm.DB, error) {
	type cond struct {
		expr  string
		value any
	}

	keys := make([]string, 0, len(criteria))
	for key := range criteria {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	conds := make([]cond, 0, len(keys))
	for _, key := range keys {
		raw := criteria[key]
		f, ok := fields[key]
		if !ok || raw == nil {
			continue
		}
		value, err := coerce(raw, f.Kind)
		if err != nil {
			return nil, domain.ValidationError(fmt.Sprintf("invalid criteria %q: %v", key, err))
		}
		switch f.Op {
		case OpPrefix:
			conds = append(conds, cond{f.Column + ` LIKE ? ESCAPE '\'`, likeEscaper.Replace(value.(string)) + "%"})
		case OpGte:
			conds = append(conds, cond{f.Column + " >= ?", value})
		case OpLte:
			conds = append(conds, cond{f.Column + " <= ?", value})
		default:
			conds = append(conds, cond{f.Column + " = ?", value})
		}
	}

	return func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c.expr, c.value)
		}
		return db
	}, nil
}

// maxExactInt is the largest magnitude up to which a float64 holds every
// integer exactly.
const maxExactInt = 1 << 53

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// coerce converts a decoded JSON or query-string value to the Go type the
// column expects.
func coerce(raw any, kind Kind) (any, error) {
	switch kind {
	case KindBool:
		switch v := raw.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(v)
		}
	case KindInt:
		switch v := raw.(type) {
		case float64:
			if v != math.Trunc(v) {
				return nil, fmt.Errorf("%v is not an integer", v)
			}
			if math.Abs(v) > maxExactInt {
				return nil, fmt.Errorf("%v is outside ±2^53", v)
			}
			return int64(v), nil
		case json.Number:
			return v.Int64()
		case string:
			return strconv.ParseInt(v, 10, 64)
		case int:
			return int64(v), nil
		}
	case KindDecimal:
		switch v := raw.(type) {
		case float64:
			return decimal.NewFromFloat(v), nil
		case json.Number:
			return decimal.NewFromString(v.String())
		case string:
			return decimal.NewFromString(v)
		}
	case KindUUID:
		if v, ok := raw.(string); ok {
			return uuid.Parse(v)
		}
	case KindTime:
		if v, ok := raw.(string); ok {
			return parseTime(v)
		}
	default:
		if v, ok := raw.(string); ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("unsupported value %v", raw)
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC 3339 or YYYY-MM-DD, got %q", s)
	}
	return t.UTC(), nil
}
