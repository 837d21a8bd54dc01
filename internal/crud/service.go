package crud

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/event"
	"github.com/simp-lee/backoffice/internal/pkg"
	"github.com/simp-lee/backoffice/internal/store"
)

// Service implements create, update, delete, lookup, filter and transition
// operations for one entity type E exposed as DTO D.
type Service[E any, P store.RecordPtr[E], D any] struct {
	repo      store.Repository[E]
	mapper    Mapper[E, D]
	fields    pkg.FieldSet
	entity    string
	defaults  func(*E)
	onChange  []func(context.Context, *E)
	onReplace []func(ctx context.Context, before, after *E)
	publisher event.Publisher
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a Service.
type Option[E any] func(*serviceOptions[E])

type serviceOptions[E any] struct {
	defaults  func(*E)
	onChange  []func(context.Context, *E)
	onReplace []func(ctx context.Context, before, after *E)
	publisher event.Publisher
	now       func() time.Time
	logger    *slog.Logger
}

// WithDefaults seeds new entities before the DTO is applied, so unset
// optional DTO fields keep the default.
func WithDefaults[E any](fn func(*E)) Option[E] {
	return func(o *serviceOptions[E]) { o.defaults = fn }
}

// WithOnChange registers a hook run after every committed mutation. Deletes
// pass the row as it was before removal.
func WithOnChange[E any](fn func(context.Context, *E)) Option[E] {
	return func(o *serviceOptions[E]) { o.onChange = append(o.onChange, fn) }
}

// WithOnReplace registers a hook run after every committed update or
// transition with the row as it was read and as it was written, for caches
// keyed on a column the write may have changed.
func WithOnReplace[E any](fn func(ctx context.Context, before, after *E)) Option[E] {
	return func(o *serviceOptions[E]) { o.onReplace = append(o.onReplace, fn) }
}

// WithPublisher sends a change event after every committed mutation.
func WithPublisher[E any](p event.Publisher) Option[E] {
	return func(o *serviceOptions[E]) { o.publisher = p }
}

// WithClock overrides time.Now for audit stamps.
func WithClock[E any](now func() time.Time) Option[E] {
	return func(o *serviceOptions[E]) { o.now = now }
}

// WithLogger sets the logger used for mutation and publish-failure records.
func WithLogger[E any](l *slog.Logger) Option[E] {
	return func(o *serviceOptions[E]) { o.logger = l }
}

// NewService creates a Service. fields is the entity's filter allow-list.
func NewService[E any, P store.RecordPtr[E], D any](repo store.Repository[E], mapper Mapper[E, D], fields pkg.FieldSet, opts ...Option[E]) *Service[E, P, D] {
	if repo == nil {
		panic("crud.NewService: repository must not be nil")
	}
	if mapper.Apply == nil || mapper.ToDTO == nil {
		panic("crud.NewService: mapper must define Apply and ToDTO")
	}
	o := serviceOptions[E]{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.publisher == nil {
		o.publisher = event.NewLogPublisher(o.logger)
	}
	return &Service[E, P, D]{
		repo:      repo,
		mapper:    mapper,
		fields:    fields,
		entity:    P(new(E)).EntityName(),
		defaults:  o.defaults,
		onChange:  o.onChange,
		onReplace: o.onReplace,
		publisher: o.publisher,
		now:       o.now,
		logger:    o.logger,
	}
}

// Entity returns the human-readable entity name used in errors and events.
func (s *Service[E, P, D]) Entity() string { return s.entity }

// Create inserts a new row from dto. Any id or audit value in dto is ignored.
func (s *Service[E, P, D]) Create(ctx context.Context, dto *D) (*D, error) {
	e := new(E)
	if s.defaults != nil {
		s.defaults(e)
	}
	s.mapper.Apply(dto, e)

	base := P(e).Base()
	now := s.stamp()
	actor := domain.ActorFrom(ctx)
	*base = domain.BaseModel{
		CreatedAt: now,
		CreatedBy: actor,
		UpdatedAt: now,
		UpdatedBy: actor,
		Version:   1,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, s.fail(ctx, "create", uuid.Nil, err)
	}
	s.changed(ctx, nil, e, event.ActionCreated)
	return s.render(e), nil
}

// Update replaces the writable fields of row id with dto. The creation audit
// pair is always kept from the stored row. A non-zero dto version that differs
// from the stored one is rejected with Conflict.
func (s *Service[E, P, D]) Update(ctx context.Context, id uuid.UUID, dto *D) (*D, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	stored := *P(existing).Base()

	if v, ok := any(dto).(versioned); ok {
		if want := v.ExpectedVersion(); want != 0 && want != stored.Version {
			return nil, domain.ConflictError(s.entity,
				fmt.Sprintf("version %d does not match stored version %d", want, stored.Version))
		}
	}

	before := *existing
	e := existing
	s.mapper.Apply(dto, e)
	base := P(e).Base()
	base.ID = id
	base.CreatedAt = stored.CreatedAt
	base.CreatedBy = stored.CreatedBy
	s.touch(ctx, base)

	if err := s.repo.Update(ctx, e, stored.Version); err != nil {
		return nil, s.fail(ctx, "update", id, err)
	}
	s.changed(ctx, &before, e, event.ActionUpdated)
	return s.render(e), nil
}

// Transition applies mutate to row id and writes it back. A mutate error
// aborts before any write and is returned as is.
func (s *Service[E, P, D]) Transition(ctx context.Context, id uuid.UUID, action string, mutate func(*E) error) (*D, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *e
	base := P(e).Base()
	expected := base.Version

	if err := mutate(e); err != nil {
		return nil, err
	}
	s.touch(ctx, base)

	if err := s.repo.Update(ctx, e, expected); err != nil {
		return nil, s.fail(ctx, action, id, err)
	}
	s.changed(ctx, &before, e, action)
	return s.render(e), nil
}

// Delete removes row id, failing with NotFound if it does not exist.
func (s *Service[E, P, D]) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(ctx, "delete", id, err)
	}
	s.changed(ctx, nil, e, event.ActionDeleted)
	return nil
}

// Get returns row id or a NotFound error naming the entity and id.
func (s *Service[E, P, D]) Get(ctx context.Context, id uuid.UUID) (*D, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.render(e), nil
}

// Find is Get for callers that treat absence as data: a missing row yields
// (nil, false, nil).
func (s *Service[E, P, D]) Find(ctx context.Context, id uuid.UUID) (*D, bool, error) {
	dto, err := s.Get(ctx, id)
	if domain.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return dto, true, nil
}

// List returns every row, oldest first.
func (s *Service[E, P, D]) List(ctx context.Context) ([]D, error) {
	return s.ListBy(ctx, nil)
}

// ListBy returns the rows whose columns equal every value in conds.
func (s *Service[E, P, D]) ListBy(ctx context.Context, conds map[string]any) ([]D, error) {
	rows, err := s.repo.FindBy(ctx, conds)
	if err != nil {
		return nil, err
	}
	out := make([]D, len(rows))
	for i := range rows {
		out[i] = s.mapper.ToDTO(&rows[i])
	}
	return out, nil
}

// Exists reports whether any row matches conds.
func (s *Service[E, P, D]) Exists(ctx context.Context, conds map[string]any) (bool, error) {
	return s.repo.ExistsBy(ctx, conds)
}

// Filter runs req through the filter engine with the entity's allow-list.
func (s *Service[E, P, D]) Filter(ctx context.Context, req pkg.FilterRequest) (*pkg.Page[D], error) {
	page, err := s.repo.Filter(ctx, s.fields, req)
	if err != nil {
		return nil, err
	}
	return pkg.MapPage(page, s.mapper.ToDTO), nil
}

func (s *Service[E, P, D]) stamp() time.Time {
	return s.now().UTC()
}

func (s *Service[E, P, D]) touch(ctx context.Context, base *domain.BaseModel) {
	base.UpdatedAt = s.stamp()
	base.UpdatedBy = domain.ActorFrom(ctx)
}

func (s *Service[E, P, D]) render(e *E) *D {
	dto := s.mapper.ToDTO(e)
	return &dto
}

func (s *Service[E, P, D]) fail(ctx context.Context, op string, id uuid.UUID, err error) error {
	if domain.IsPersistence(err) {
		s.logger.ErrorContext(ctx, "entity write failed",
			slog.String("entity", s.entity),
			slog.String("operation", op),
			slog.String("id", id.String()),
			slog.Any("error", err),
		)
	}
	return err
}

// changed runs the post-commit hooks. before is the row as read for updates
// and transitions, nil otherwise. A failed publish is logged and never
// surfaces to the caller.
func (s *Service[E, P, D]) changed(ctx context.Context, before, e *E, action string) {
	base := P(e).Base()
	s.logger.DebugContext(ctx, "entity written",
		slog.String("entity", s.entity),
		slog.String("action", action),
		slog.String("id", base.ID.String()),
		slog.Int64("version", base.Version),
	)

	for _, fn := range s.onChange {
		fn(ctx, e)
	}
	if before != nil {
		for _, fn := range s.onReplace {
			fn(ctx, before, e)
		}
	}

	ev := event.Event{
		Entity: s.entity,
		ID:     base.ID,
		Action: action,
		Actor:  domain.ActorFrom(ctx),
		At:     s.stamp(),
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.WarnContext(ctx, "publish change event failed",
			slog.String("entity", s.entity),
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
}
