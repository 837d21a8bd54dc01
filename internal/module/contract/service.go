package contract

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Transition names reported in change events.
const (
	ActionApprove = "approve"
	ActionSign    = "sign"
)

// Service adds the approval workflow to the generic contract service.
type Service struct {
	*crud.Service[domain.LeasingContract, *domain.LeasingContract, ContractDTO]
}

// Approve moves contract id to APPROVED, stamping approverID, or the request
// actor when approverID is empty. A signed contract cannot be re-approved.
func (s *Service) Approve(ctx context.Context, id uuid.UUID, approverID string) (*ContractDTO, error) {
	if approverID == "" {
		approverID = domain.ActorFrom(ctx)
	}
	return s.Transition(ctx, id, ActionApprove, func(e *domain.LeasingContract) error {
		if e.Status == domain.StatusSigned {
			return domain.ConflictError(s.Entity(), "contract "+id.String()+" is already signed")
		}
		now := s.Now()
		e.Status = domain.StatusApproved
		e.ApprovedAt = &now
		e.ApprovedBy = approverID
		return nil
	})
}

// Sign moves an APPROVED contract id to SIGNED. Any other status is a
// Conflict.
func (s *Service) Sign(ctx context.Context, id uuid.UUID, signerID string) (*ContractDTO, error) {
	if signerID == "" {
		signerID = domain.ActorFrom(ctx)
	}
	return s.Transition(ctx, id, ActionSign, func(e *domain.LeasingContract) error {
		if e.Status != domain.StatusApproved {
			return domain.ConflictError(s.Entity(), "contract "+id.String()+" must be APPROVED to sign, is "+e.Status)
		}
		now := s.Now()
		e.Status = domain.StatusSigned
		e.SignedAt = &now
		e.SignedBy = signerID
		return nil
	})
}

// UpdateStatus sets any workflow status except APPROVED and SIGNED, which
// only Approve and Sign may set so their audit pairs are always stamped. A
// signed contract is final.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*ContractDTO, error) {
	status = pkg.NormalizeStatus(status)
	switch status {
	case domain.StatusApproved:
		return nil, domain.ConflictError(s.Entity(), "status APPROVED is set by the approve transition")
	case domain.StatusSigned:
		return nil, domain.ConflictError(s.Entity(), "status SIGNED is set by the sign transition")
	}
	if !pkg.IsStatus(status) {
		return nil, domain.ValidationError(fmt.Sprintf("invalid status %q: must be an upper-case code", status))
	}
	return s.Transition(ctx, id, crud.ActionStatus, func(e *domain.LeasingContract) error {
		if e.Status == domain.StatusSigned {
			return domain.ConflictError(s.Entity(), "contract "+id.String()+" is already signed")
		}
		e.Status = status
		return nil
	})
}
