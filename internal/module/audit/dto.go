package audit

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/simp-lee/backoffice/internal/crud"
)

// LogDTO is the API shape of an audit log entry.
type LogDTO struct {
	crud.Audit
	EntityType string         `json:"entityType" binding:"required,max=100"`
	EntityID   uuid.UUID      `json:"entityId" binding:"required"`
	Action     string         `json:"action" binding:"required,max=50"`
	ActorID    string         `json:"actorId" binding:"max=100"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}
