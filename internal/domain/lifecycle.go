package domain

// Activatable is implemented by entities carrying an is_active flag.
type Activatable interface {
	SetActive(active bool)
}

// Statusful is implemented by entities whose status is a free status code.
type Statusful interface {
	SetStatus(status string)
}

func (d *Distributor) SetActive(active bool)                { d.IsActive = active }
func (b *DistributorBranding) SetActive(active bool)        { b.IsActive = active }
func (p *Product) SetActive(active bool)                    { p.IsActive = active }
func (l *LendingConfiguration) SetActive(active bool)       { l.IsActive = active }
func (t *TermsAndConditionsTemplate) SetActive(active bool) { t.IsActive = active }
func (a *DistributorAgency) SetActive(active bool)          { a.IsActive = active }
func (a *DistributorAgentAgency) SetActive(active bool)     { a.IsActive = active }
func (m *AgencyPaymentMethod) SetActive(active bool)        { m.IsActive = active }

func (d *Distributor) SetStatus(status string)           { d.Status = status }
func (o *DistributorOperation) SetStatus(status string)  { o.Status = status }
func (s *DistributorSimulation) SetStatus(status string) { s.Status = status }
func (c *LeasingContract) SetStatus(status string)       { c.Status = status }
func (s *Shipment) SetStatus(status string)              { s.Status = status }
