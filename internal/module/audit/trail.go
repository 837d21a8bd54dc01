package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/event"
	"github.com/simp-lee/backoffice/internal/store"
)

// Trail is an event.Publisher that appends one audit log row per change
// event. The event itself is kept as the row's metadata.
type Trail struct {
	repo store.Repository[domain.AuditLog]
}

// NewTrail creates a Trail writing through repo.
func NewTrail(repo store.Repository[domain.AuditLog]) *Trail {
	if repo == nil {
		panic("audit.NewTrail: repository must not be nil")
	}
	return &Trail{repo: repo}
}

var _ event.Publisher = (*Trail)(nil)

// Publish implements event.Publisher.
func (t *Trail) Publish(ctx context.Context, e event.Event) error {
	metadata, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal audit metadata: %w", err)
	}
	row := &domain.AuditLog{
		BaseModel: domain.BaseModel{
			CreatedAt: e.At,
			CreatedBy: e.Actor,
			UpdatedAt: e.At,
			UpdatedBy: e.Actor,
			Version:   1,
		},
		EntityType: e.Entity,
		EntityID:   e.ID,
		Action:     e.Action,
		ActorID:    e.Actor,
		Metadata:   metadata,
	}
	if err := t.repo.Create(ctx, row); err != nil {
		return fmt.Errorf("append audit log for %s %s: %w", e.Entity, e.ID, err)
	}
	return nil
}
