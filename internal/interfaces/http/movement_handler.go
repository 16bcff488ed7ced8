package http

import (
	"github.com/gofiber/fiber/v2"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
)

// MovementHandler operaciones sobre movimientos individuales (solo admin).
type MovementHandler struct {
	ledger *ledgerapp.Service
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *ledgerapp.Service) *MovementHandler {
	return &MovementHandler{ledger: ledger}
}

// Delete godoc
// @Summary      Eliminar movimiento revirtiendo su efecto
// @Description  Si es una pata de transferencia se revierten ambas patas.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	removed, err := h.ledger.DeleteMovement(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"deleted": toMovementList(removed)})
}
