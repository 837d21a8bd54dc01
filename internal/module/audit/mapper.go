package audit

import (
	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

var logMapper = crud.Mapper[domain.AuditLog, LogDTO]{
	Apply: func(dto *LogDTO, e *domain.AuditLog) {
		e.EntityType = dto.EntityType
		e.EntityID = dto.EntityID
		e.Action = dto.Action
		e.ActorID = dto.ActorID
		if len(dto.Metadata) > 0 {
			e.Metadata = dto.Metadata
		}
	},
	ToDTO: func(e *domain.AuditLog) LogDTO {
		return LogDTO{
			Audit:      crud.AuditOf(&e.BaseModel),
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Action:     e.Action,
			ActorID:    e.ActorID,
			Metadata:   e.Metadata,
		}
	},
}

var logFields = pkg.NewFieldSet(map[string]pkg.Field{
	"entityType": pkg.Eq("entity_type", pkg.KindString),
	"entityId":   pkg.Eq("entity_id", pkg.KindUUID),
	"action":     pkg.Eq("action", pkg.KindString),
	"actorId":    pkg.Eq("actor_id", pkg.KindString),
})
