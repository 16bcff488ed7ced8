package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/application/transfer"
)

// TransferHandler transferencias entre cuentas (protegido).
type TransferHandler struct {
	svc *transfer.Service
}

// NewTransferHandler construye el handler.
func NewTransferHandler(svc *transfer.Service) *TransferHandler {
	return &TransferHandler{svc: svc}
}

// Create godoc
// @Summary      Transferir entre cuentas
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string               false  "Llave para reintentos seguros"
// @Param        body             body    dto.TransferRequest  true   "origen, destino, monto, nota"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "fondos insuficientes"
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.Transfer(c.Context(), transfer.Input{
		OriginAccountID:      in.OriginAccountID,
		DestinationAccountID: in.DestinationAccountID,
		Amount:               in.Amount,
		Note:                 in.Note,
		UserID:               GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(res))
}
