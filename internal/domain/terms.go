package domain

import (
	"time"

	"github.com/google/uuid"
)

// TermsAndConditionsTemplate is the reusable source text for distributor agreements.
type TermsAndConditionsTemplate struct {
	BaseModel
	Title        string `gorm:"column:title;size:200;not null"`
	Content      string `gorm:"column:content;type:text;not null"`
	TermsVersion string `gorm:"column:version_label;size:20;not null"`
	IsActive     bool   `gorm:"column:is_active;not null"`
}

func (TermsAndConditionsTemplate) TableName() string  { return "terms_and_conditions_templates" }
func (TermsAndConditionsTemplate) EntityName() string { return "terms and conditions template" }

// DistributorTermsAndConditions is an agreement issued to one distributor.
type DistributorTermsAndConditions struct {
	BaseModel
	DistributorID uuid.UUID  `gorm:"type:uuid;column:distributor_id;not null;index"`
	TemplateID    uuid.UUID  `gorm:"type:uuid;column:template_id;index"`
	Title         string     `gorm:"column:title;size:200;not null"`
	Content       string     `gorm:"column:content;type:text;not null"`
	TermsVersion  string     `gorm:"column:version_label;size:20;not null"`
	Status        string     `gorm:"column:status;size:30;not null;index"`
	SignedBy      string     `gorm:"column:signed_by;size:100"`
	SignedDate    *time.Time `gorm:"column:signed_date"`
}

func (DistributorTermsAndConditions) TableName() string  { return "distributor_terms_and_conditions" }
func (DistributorTermsAndConditions) EntityName() string { return "distributor terms and conditions" }
