package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidAmount     = errors.New("monto inválido")
	ErrInsufficientFunds = errors.New("fondos insuficientes")
	ErrSameAccount       = errors.New("la cuenta origen y destino deben ser diferentes")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrDuplicate         = errors.New("recurso duplicado")
)

// InvalidAmountError monto <= 0 (o negativo) donde se requiere uno válido.
type InvalidAmountError struct {
	Field  string
	Amount decimal.Decimal
	Reason string
}

func (e *InvalidAmountError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("monto inválido en %s (%s): %s", e.Field, e.Amount.String(), e.Reason)
	}
	return fmt.Sprintf("monto inválido en %s: %s", e.Field, e.Amount.String())
}

func (e *InvalidAmountError) Is(target error) bool { return target == ErrInvalidAmount }

// InsufficientFundsError el saldo de la cuenta no cubre el monto solicitado.
// El mensaje siempre incluye el saldo disponible.
type InsufficientFundsError struct {
	AccountID string
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("fondos insuficientes en %s. Disponible: $%s, solicitado: $%s",
		e.AccountID, e.Available.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientFundsError) Is(target error) bool { return target == ErrInsufficientFunds }

// SameAccountError transferencia con origen igual a destino.
type SameAccountError struct {
	AccountID string
}

func (e *SameAccountError) Error() string {
	return fmt.Sprintf("la cuenta origen y destino deben ser diferentes (%s)", e.AccountID)
}

func (e *SameAccountError) Is(target error) bool { return target == ErrSameAccount }

// StockInsufficientError la orden de compra no tiene stock para la cantidad pedida.
type StockInsufficientError struct {
	PurchaseOrderID string
	Available       int64
	Requested       int64
}

func (e *StockInsufficientError) Error() string {
	return fmt.Sprintf("stock insuficiente en orden %s. Disponible: %d, solicitado: %d",
		e.PurchaseOrderID, e.Available, e.Requested)
}

func (e *StockInsufficientError) Is(target error) bool { return target == ErrInsufficientStock }

// NotFoundError recurso referenciado inexistente (cuenta, venta, orden, movimiento).
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q no encontrado", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// NewNotFound atajo para construir un NotFoundError.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError la entrada no pasa las reglas de negocio; Errors lista cada motivo.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "entrada inválida: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Code código estable de un error de dominio, usado en respuestas HTTP y métricas.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidAmount):
		return "INVALID_AMOUNT"
	case errors.Is(err, ErrInsufficientFunds):
		return "INSUFFICIENT_FUNDS"
	case errors.Is(err, ErrSameAccount):
		return "SAME_ACCOUNT"
	case errors.Is(err, ErrInsufficientStock):
		return "INSUFFICIENT_STOCK"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrConflict):
		return "CONFLICT"
	case errors.Is(err, ErrDuplicate):
		return "DUPLICATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	default:
		return "INTERNAL_ERROR"
	}
}
