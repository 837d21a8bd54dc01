package domain

import "github.com/google/uuid"

// DistributorAgency is a physical branch of a distributor.
type DistributorAgency struct {
	BaseModel
	DistributorID uuid.UUID `gorm:"type:uuid;column:distributor_id;not null;index"`
	Name          string    `gorm:"column:name;size:200;not null"`
	Code          string    `gorm:"column:code;size:50;index"`
	Address       string    `gorm:"column:address;size:500"`
	City          string    `gorm:"column:city;size:100;index"`
	Phone         string    `gorm:"column:phone;size:50"`
	IsActive      bool      `gorm:"column:is_active;not null"`
}

func (DistributorAgency) TableName() string  { return "distributor_agencies" }
func (DistributorAgency) EntityName() string { return "distributor agency" }

// DistributorAgentAgency assigns a sales agent to an agency.
type DistributorAgentAgency struct {
	BaseModel
	AgencyID uuid.UUID `gorm:"type:uuid;column:agency_id;not null;index"`
	AgentID  string    `gorm:"column:agent_id;size:100;not null;index"`
	Role     string    `gorm:"column:role;size:50"`
	IsActive bool      `gorm:"column:is_active;not null"`
}

func (DistributorAgentAgency) TableName() string  { return "distributor_agent_agencies" }
func (DistributorAgentAgency) EntityName() string { return "distributor agent agency" }

// AgencyPaymentMethod is a way an agency accepts customer payments.
type AgencyPaymentMethod struct {
	BaseModel
	AgencyID         uuid.UUID `gorm:"type:uuid;column:agency_id;not null;index"`
	MethodType       string    `gorm:"column:method_type;size:50;not null"`
	Provider         string    `gorm:"column:provider;size:100"`
	AccountReference string    `gorm:"column:account_reference;size:200"`
	IsActive         bool      `gorm:"column:is_active;not null"`
}

func (AgencyPaymentMethod) TableName() string  { return "agency_payment_methods" }
func (AgencyPaymentMethod) EntityName() string { return "agency payment method" }
