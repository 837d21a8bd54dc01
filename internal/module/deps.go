// Package module holds what the business-area packages share: the
// dependencies every area is built from and the helper that turns them into
// a crud.Service.
package module

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/event"
	"github.com/simp-lee/backoffice/internal/metrics"
	"github.com/simp-lee/backoffice/internal/pkg"
	"github.com/simp-lee/backoffice/internal/store"
)

// Deps are the collaborators shared by every business area.
type Deps struct {
	DB        *gorm.DB
	Publisher event.Publisher
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// NewService builds the repository and service for entity E, wiring in the
// shared publisher, logger and metrics. opts are applied after the shared ones.
// It panics if d.DB is nil.
func NewService[E any, P store.RecordPtr[E], D any](d Deps, mapper crud.Mapper[E, D], fields pkg.FieldSet, opts ...crud.Option[E]) *crud.Service[E, P, D] {
	if d.DB == nil {
		panic("module.NewService: database must not be nil")
	}
	repo := store.NewGormRepository[E, P](d.DB, store.WithMetrics(d.Metrics))

	shared := make([]crud.Option[E], 0, len(opts)+2)
	if d.Publisher != nil {
		shared = append(shared, crud.WithPublisher[E](d.Publisher))
	}
	if d.Logger != nil {
		shared = append(shared, crud.WithLogger[E](d.Logger))
	}
	return crud.NewService[E, P](repo, mapper, fields, append(shared, opts...)...)
}
