package contract

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/backoffice/internal/crud"
	"github.com/simp-lee/backoffice/internal/domain"
	"github.com/simp-lee/backoffice/internal/pkg"
)

// Handler serves leasing contracts: the uniform routes plus approve and sign.
type Handler struct {
	*crud.Handler[domain.LeasingContract, *domain.LeasingContract, ContractDTO]
	svc *Service
}

// NewHandler creates a Handler for svc.
func NewHandler(svc *Service) *Handler {
	if svc == nil || svc.Service == nil {
		panic("contract.NewHandler: service must not be nil")
	}
	return &Handler{Handler: crud.NewHandler(svc.Service), svc: svc}
}

// Approve handles POST /leasing-contracts/:id/approve.
func (h *Handler) Approve(c *gin.Context) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}

	var req ApproveRequest
	if c.Request.ContentLength != 0 && !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := h.svc.Approve(c.Request.Context(), id, req.ApproverID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}

// Sign handles POST /leasing-contracts/:id/sign.
func (h *Handler) Sign(c *gin.Context) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}

	var req SignRequest
	if c.Request.ContentLength != 0 && !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := h.svc.Sign(c.Request.Context(), id, req.SignerID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}

// UpdateStatus handles POST /leasing-contracts/:id/status.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := crud.ParseID(c, "id")
	if !ok {
		return
	}

	var req crud.StatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	dto, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, dto)
}
