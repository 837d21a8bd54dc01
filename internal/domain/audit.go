package domain

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog is an append-only record of a back-office action.
type AuditLog struct {
	BaseModel
	EntityType string         `gorm:"column:entity_type;size:100;not null;index:idx_audit_entity"`
	EntityID   uuid.UUID      `gorm:"type:uuid;column:entity_id;index:idx_audit_entity"`
	Action     string         `gorm:"column:action;size:50;not null"`
	ActorID    string         `gorm:"column:actor_id;size:100;index"`
	Metadata   datatypes.JSON `gorm:"column:metadata"`
}

func (AuditLog) TableName() string  { return "audit_logs" }
func (AuditLog) EntityName() string { return "audit log" }
