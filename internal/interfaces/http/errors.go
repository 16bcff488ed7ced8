package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/domain"
)

// statusByCode código de dominio → estado HTTP. Lo que no aparece es 500.
var statusByCode = map[string]int{
	"INVALID_AMOUNT":     fiber.StatusBadRequest,
	"VALIDATION_ERROR":   fiber.StatusBadRequest,
	"SAME_ACCOUNT":       fiber.StatusBadRequest,
	"NOT_FOUND":          fiber.StatusNotFound,
	"INSUFFICIENT_FUNDS": fiber.StatusConflict,
	"INSUFFICIENT_STOCK": fiber.StatusConflict,
	"CONFLICT":           fiber.StatusConflict,
	"DUPLICATE":          fiber.StatusConflict,
	"UNAUTHORIZED":       fiber.StatusUnauthorized,
}

// respondError escribe el error de dominio como dto.ErrorResponse. Los errores de persistencia no
// exponen su detalle.
func respondError(c *fiber.Ctx, err error) error {
	code := domain.Code(err)
	status, ok := statusByCode[code]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	resp := dto.ErrorResponse{Code: code, Message: err.Error()}
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Details = verr.Errors
	}
	return c.Status(status).JSON(resp)
}
