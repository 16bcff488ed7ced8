package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/application/sales"
)

// PartyHandler clientes, distribuidores y recálculo de deudas (protegido).
type PartyHandler struct {
	svc *sales.Service
}

// NewPartyHandler construye el handler.
func NewPartyHandler(svc *sales.Service) *PartyHandler {
	return &PartyHandler{svc: svc}
}

// CreateClient alta de cliente con deuda cero.
// @Summary      Crear cliente
// @Tags         parties
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.PartyRequest  true  "id (opcional), name, phone"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *PartyHandler) CreateClient(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	client, err := h.svc.CreateClient(c.Context(), sales.PartyInput{ID: in.ID, Name: in.Name, Phone: in.Phone})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toClientResponse(client))
}

// @Summary      Obtener cliente con su deuda
// @Tags         parties
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *PartyHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.svc.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toClientResponse(client))
}

// @Summary      Crear distribuidor
// @Tags         parties
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.PartyRequest  true  "id (opcional), name, phone"
// @Success      201   {object}  dto.DistributorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/distributors [post]
func (h *PartyHandler) CreateDistributor(c *fiber.Ctx) error {
	var in dto.PartyRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	d, err := h.svc.CreateDistributor(c.Context(), sales.PartyInput{ID: in.ID, Name: in.Name, Phone: in.Phone})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDistributorResponse(d))
}

// @Summary      Obtener distribuidor con su saldo pendiente
// @Tags         parties
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del distribuidor"
// @Success      200  {object}  dto.DistributorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/distributors/{id} [get]
func (h *PartyHandler) GetDistributor(c *fiber.Ctx) error {
	d, err := h.svc.GetDistributor(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toDistributorResponse(d))
}

// RecomputeDebts recalcula deuda de clientes y saldo pendiente con distribuidores (idempotente).
// @Summary      Recalcular deudas
// @Tags         parties
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  sales.DebtsReport
// @Router       /api/debts/recompute [post]
func (h *PartyHandler) RecomputeDebts(c *fiber.Ctx) error {
	report, err := h.svc.RecomputeDebts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
