// Package crud implements the lifecycle shared by every entity: a generic
// service over store.Repository and a generic REST handler on top of it.
package crud

import (
	"time"

	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/domain"
)

// Audit is embedded in every DTO. Its fields are server-owned; values sent by
// clients are ignored except Version, which is checked on update.
type Audit struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy string    `json:"updatedBy"`
	Version   int64     `json:"version"`
}

// AuditOf copies the audit fields of a stored row.
func AuditOf(b *domain.BaseModel) Audit {
	return Audit{
		ID:        b.ID,
		CreatedAt: b.CreatedAt,
		CreatedBy: b.CreatedBy,
		UpdatedAt: b.UpdatedAt,
		UpdatedBy: b.UpdatedBy,
		Version:   b.Version,
	}
}

// ExpectedVersion returns the version a client last read, or 0 if unknown.
func (a Audit) ExpectedVersion() int64 { return a.Version }

type versioned interface {
	ExpectedVersion() int64
}

// Mapper converts between an entity and its DTO.
type Mapper[E, D any] struct {
	// Apply copies the client-writable fields of dto onto e. It must not touch
	// e's BaseModel. Optional fields left unset in dto keep e's value.
	Apply func(dto *D, e *E)
	// ToDTO renders e, including its audit fields.
	ToDTO func(e *E) D
}
