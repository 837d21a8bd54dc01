// Package store is the gorm-backed storage collaborator shared by every entity.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/metrics"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Repository is the row-store contract consumed by the entity services.
// Every method returns *domain.AppError kinds: NotFound, Conflict or Persistence.
type Repository[E any] interface {
	Create(ctx context.Context, e *E) error
	// Update writes e only if the stored version equals expectedVersion.
	// On success e's version is expectedVersion+1.
	Update(ctx context.Context, e *E, expectedVersion int64) error
	FindByID(ctx context.Context, id uuid.UUID) (*E, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindAll(ctx context.Context) ([]E, error)
	// FindBy returns rows whose columns equal every value in conds.
	FindBy(ctx context.Context, conds map[string]any) ([]E, error)
	ExistsBy(ctx context.Context, conds map[string]any) (bool, error)
	Filter(ctx context.Context, fields pkg.FieldSet, req pkg.FilterRequest) (*pkg.Page[E], error)
}

// RecordPtr constrains P to be *E implementing domain.Record.
type RecordPtr[E any] interface {
	*E
	domain.Record
}

// GormRepository implements Repository for any entity embedding domain.BaseModel.
type GormRepository[E any, P RecordPtr[E]] struct {
	db      *gorm.DB
	entity  string
	metrics *metrics.Metrics
}

// Option configures a GormRepository.
type Option func(*options)

type options struct {
	metrics *metrics.Metrics
}

// WithMetrics records every operation in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewGormRepository creates a repository for E.
func NewGormRepository[E any, P RecordPtr[E]](db *gorm.DB, opts ...Option) *GormRepository[E, P] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &GormRepository[E, P]{
		db:      db,
		entity:  P(new(E)).EntityName(),
		metrics: o.metrics,
	}
}

var _ Repository[domain.Distributor] = (*GormRepository[domain.Distributor, *domain.Distributor])(nil)

// Create inserts a new row.
func (r *GormRepository[E, P]) Create(ctx context.Context, e *E) (err error) {
	defer r.observe("create", time.Now(), &err)

	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		return mapError(r.entity, err)
	}
	return nil
}

// Update performs a compare-and-swap write on the version column. A write that
// matches no row is reported as Conflict when the row still exists and as
// NotFound when it has been deleted.
func (r *GormRepository[E, P]) Update(ctx context.Context, e *E, expectedVersion int64) (err error) {
	defer r.observe("update", time.Now(), &err)

	base := P(e).Base()
	base.Version = expectedVersion + 1

	err = pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		res := tx.Model(e).Where("version = ?", expectedVersion).Select("*").Updates(e)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var count int64
		if err := tx.Model(new(E)).Where("id = ?", base.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.NotFoundError(r.entity, base.ID)
		}
		return domain.ConflictError(r.entity, fmt.Sprintf("version %d is stale", expectedVersion))
	})
	if err != nil {
		base.Version = expectedVersion
		return mapError(r.entity, err)
	}
	return nil
}

// FindByID retrieves a row by its primary key.
func (r *GormRepository[E, P]) FindByID(ctx context.Context, id uuid.UUID) (_ *E, err error) {
	defer r.observe("find_by_id", time.Now(), &err)

	var e E
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&e).Error; err != nil {
		if isRecordNotFound(err) {
			return nil, domain.NotFoundError(r.entity, id)
		}
		return nil, mapError(r.entity, err)
	}
	return &e, nil
}

// Delete removes a row by ID.
func (r *GormRepository[E, P]) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer r.observe("delete", time.Now(), &err)

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(E))
	if result.Error != nil {
		return mapError(r.entity, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError(r.entity, id)
	}
	return nil
}

// FindAll returns every row, oldest first.
func (r *GormRepository[E, P]) FindAll(ctx context.Context) ([]E, error) {
	return r.FindBy(ctx, nil)
}

// FindBy returns rows matching every column/value pair in conds, oldest first.
func (r *GormRepository[E, P]) FindBy(ctx context.Context, conds map[string]any) (_ []E, err error) {
	defer r.observe("find_by", time.Now(), &err)

	query := r.db.WithContext(ctx).Model(new(E))
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	items := []E{}
	if err := query.Order("created_at").Order("id").Find(&items).Error; err != nil {
		return nil, mapError(r.entity, err)
	}
	return items, nil
}

// ExistsBy reports whether any row matches conds.
func (r *GormRepository[E, P]) ExistsBy(ctx context.Context, conds map[string]any) (_ bool, err error) {
	defer r.observe("exists_by", time.Now(), &err)

	var count int64
	query := r.db.WithContext(ctx).Model(new(E))
	if len(conds) > 0 {
		query = query.Where(conds)
	}
	if err := query.Limit(1).Count(&count).Error; err != nil {
		return false, mapError(r.entity, err)
	}
	return count > 0, nil
}

// Filter runs the filter engine over the entity's table.
func (r *GormRepository[E, P]) Filter(ctx context.Context, fields pkg.FieldSet, req pkg.FilterRequest) (_ *pkg.Page[E], err error) {
	defer r.observe("filter", time.Now(), &err)

	page, err := pkg.Query[E](ctx, r.db, fields, req)
	if err != nil {
		return nil, mapError(r.entity, err)
	}
	return page, nil
}

func (r *GormRepository[E, P]) observe(operation string, start time.Time, err *error) {
	r.metrics.ObserveStore(r.entity, operation, *err, start)
}
