package crud

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Transition names reported in change events.
const (
	ActionActivate   = "activate"
	ActionDeactivate = "deactivate"
	ActionStatus     = "status"
)

// Now returns the service clock in UTC, for transitions stamping their own
// timestamps.
func (s *Service[E, P, D]) Now() time.Time { return s.stamp() }

// SetActive flips the is_active flag of row id.
func (s *Service[E, P, D]) SetActive(ctx context.Context, id uuid.UUID, active bool) (*D, error) {
	action := ActionDeactivate
	if active {
		action = ActionActivate
	}
	return s.Transition(ctx, id, action, func(e *E) error {
		a, ok := any(e).(domain.Activatable)
		if !ok {
			return fmt.Errorf("%s has no active flag", s.entity)
		}
		a.SetActive(active)
		return nil
	})
}

// UpdateStatus sets the status of row id. The value is trimmed and
// upper-cased; an empty or malformed value is a validation error and no row
// is read.
func (s *Service[E, P, D]) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*D, error) {
	status = pkg.NormalizeStatus(status)
	if status == "" {
		return nil, domain.ValidationError("status is required")
	}
	if !pkg.IsStatus(status) {
		return nil, domain.ValidationError("invalid status " + status + ": must be an upper-case code")
	}
	return s.Transition(ctx, id, ActionStatus, func(e *E) error {
		st, ok := any(e).(domain.Statusful)
		if !ok {
			return fmt.Errorf("%s has no status", s.entity)
		}
		st.SetStatus(status)
		return nil
	})
}

// StatusRequest is the body of POST /{collection}/:id/status.
type StatusRequest struct {
	Status string `json:"status" binding:"required,max=30"`
}

// Activate handles POST /{collection}/:id/activate.
func (h *Handler[E, P, D]) Activate(c *gin.Context) { h.setActive(c, true) }

// Deactivate handles POST /{collection}/:id/deactivate.
func (h *Handler[E, P, D]) Deactivate(c *gin.Context) { h.setActive(c, false) }

func (h *Handler[E, P, D]) setActive(c *gin.Context, active bool) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	dto, err := h.svc.SetActive(c.Request.Context(), id, active)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}

// UpdateStatus handles POST /{collection}/:id/status.
func (h *Handler[E, P, D]) UpdateStatus(c *gin.Context) {
	id, ok := ParseID(c, "id")
	if !ok {
		return
	}

	var req StatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}

// ListWhere returns a handler listing every row matching conds, e.g.
// GET /products/active.
func (h *Handler[E, P, D]) ListWhere(conds map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := h.svc.ListBy(c.Request.Context(), conds)
		if err != nil {
			pkg.Error(c, err)
			return
		}

		pkg.Success(c, items)
	}
}

// Service returns the service behind h, for module handlers adding their own
// transitions.
func (h *Handler[E, P, D]) Service() *Service[E, P, D] { return h.svc }
