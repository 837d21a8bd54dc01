// Package readmodel serves cross-entity views that the per-entity services
// cannot express as single-table scans.
package readmodel

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/metrics"
)

const lendingView = "lending_by_distributor"

// LendingView is one lending configuration joined with the product it
// belongs to.
type LendingView struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	ProductID     uuid.UUID       `db:"product_id" json:"productId"`
	ProductName   string          `db:"product_name" json:"productName"`
	ProductSKU    string          `db:"product_sku" json:"productSku"`
	DistributorID uuid.UUID       `db:"distributor_id" json:"distributorId"`
	MinAmount     decimal.Decimal `db:"min_amount" json:"minAmount"`
	MaxAmount     decimal.Decimal `db:"max_amount" json:"maxAmount"`
	InterestRate  decimal.Decimal `db:"interest_rate" json:"interestRate"`
	MaxTermMonths int             `db:"max_term_months" json:"maxTermMonths"`
	IsActive      bool            `db:"is_active" json:"isActive"`
	Version       int64           `db:"version" json:"version"`
}

// LendingReader answers "which lending configurations apply to the products
// of this distributor".
type LendingReader interface {
	LendingConfigurationsByDistributor(ctx context.Context, distributorID uuid.UUID) ([]LendingView, error)
}

// Lending is a LendingReader backed by a SQL join and a per-distributor TTL
// cache. Writers keep it fresh through Invalidate, InvalidateProduct and Flush.
type Lending struct {
	db      *sqlx.DB
	cache   *cache.Cache
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewLending wraps an open connection pool. driverName selects the bind
// style, e.g. "postgres" or "sqlite".
func NewLending(db *sql.DB, driverName string, ttl time.Duration, m *metrics.Metrics, logger *slog.Logger) *Lending {
	if logger == nil {
		logger = slog.Default()
	}
	cleanup := 2 * ttl
	if ttl <= 0 {
		cleanup = 0
	}
	return &Lending{
		db:      sqlx.NewDb(db, driverName),
		cache:   cache.New(ttl, cleanup),
		metrics: m,
		logger:  logger,
	}
}

var _ LendingReader = (*Lending)(nil)

const lendingByDistributorQuery = `
SELECT lc.id, lc.product_id, p.name AS product_name, p.sku AS product_sku,
       p.distributor_id, lc.min_amount, lc.max_amount, lc.interest_rate,
       lc.max_term_months, lc.is_active, lc.version
FROM lending_configurations lc
JOIN products p ON p.id = lc.product_id
WHERE p.distributor_id = ?
ORDER BY lc.created_at, lc.id`

// LendingConfigurationsByDistributor implements LendingReader.
func (l *Lending) LendingConfigurationsByDistributor(ctx context.Context, distributorID uuid.UUID) ([]LendingView, error) {
	key := distributorID.String()
	if cached, ok := l.cache.Get(key); ok {
		l.metrics.ObserveCache(lendingView, true)
		return cached.([]LendingView), nil
	}
	l.metrics.ObserveCache(lendingView, false)

	rows := []LendingView{}
	if err := l.db.SelectContext(ctx, &rows, l.db.Rebind(lendingByDistributorQuery), distributorID); err != nil {
		return nil, domain.NewAppError(domain.CodePersistence, "database error",
			fmt.Errorf("select lending configurations for distributor %s: %w", distributorID, err))
	}

	l.cache.SetDefault(key, rows)
	return rows, nil
}

// Invalidate drops the cached view of one distributor.
func (l *Lending) Invalidate(distributorID uuid.UUID) {
	l.cache.Delete(distributorID.String())
}

// InvalidateProduct drops the cached view of the distributor owning product.
// If the owner cannot be resolved the whole cache is flushed.
func (l *Lending) InvalidateProduct(ctx context.Context, productID uuid.UUID) {
	var distributorID uuid.UUID
	err := l.db.GetContext(ctx, &distributorID, l.db.Rebind(`SELECT distributor_id FROM products WHERE id = ?`), productID)
	switch {
	case err == nil:
		l.Invalidate(distributorID)
	case errors.Is(err, sql.ErrNoRows):
		l.Flush()
	default:
		l.logger.WarnContext(ctx, "resolve product owner failed, flushing lending cache",
			slog.String("product_id", productID.String()),
			slog.Any("error", err),
		)
		l.Flush()
	}
}

// Flush drops every cached view.
func (l *Lending) Flush() {
	l.cache.Flush()
}
