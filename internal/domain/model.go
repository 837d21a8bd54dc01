package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
// Timestamps are owned by the service layer, so gorm's auto timestamps are off.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
	CreatedBy string    `gorm:"column:created_by;size:100"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	UpdatedBy string    `gorm:"column:updated_by;size:100"`
	Version   int64     `gorm:"column:version;not null"`
}

// Base gives generic code access to the audit fields of any embedding entity.
func (b *BaseModel) Base() *BaseModel { return b }

// BeforeCreate assigns a fresh identifier when none was set.
func (b *BaseModel) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Record is implemented by pointers to every persisted entity.
type Record interface {
	Base() *BaseModel
	EntityName() string
}

// AllModels lists every entity for schema migration.
func AllModels() []any {
	return []any{
		&Distributor{},
		&DistributorBranding{},
		&DistributorOperation{},
		&DistributorSimulation{},
		&Product{},
		&LendingConfiguration{},
		&LeasingContract{},
		&Shipment{},
		&TermsAndConditionsTemplate{},
		&DistributorTermsAndConditions{},
		&DistributorAgency{},
		&DistributorAgentAgency{},
		&AgencyPaymentMethod{},
		&AuditLog{},
	}
}
