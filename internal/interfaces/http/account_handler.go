package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	ledgerapp "github.com/jhoicas/chronos-ledger/internal/application/ledger"
	"github.com/jhoicas/chronos-ledger/internal/application/reconciliation"
	"github.com/jhoicas/chronos-ledger/internal/domain"
	"github.com/jhoicas/chronos-ledger/internal/domain/entity"
	"github.com/jhoicas/chronos-ledger/internal/domain/repository"
)

// AccountHandler cuentas bancarias: catálogo, movimientos manuales, corte y recálculo (protegido).
type AccountHandler struct {
	ledger    *ledgerapp.Service
	reconcile *reconciliation.Service
}

// NewAccountHandler construye el handler.
func NewAccountHandler(ledger *ledgerapp.Service, reconcile *reconciliation.Service) *AccountHandler {
	return &AccountHandler{ledger: ledger, reconcile: reconcile}
}

// Create godoc
// @Summary      Crear cuenta
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAccountRequest  true  "id, name, kind (automatic|manual)"
// @Success      201   {object}  dto.AccountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/accounts [post]
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAccountRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	acc, err := h.ledger.CreateAccount(c.Context(), ledgerapp.CreateAccountInput{ID: in.ID, Name: in.Name, Kind: in.Kind})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAccountResponse(acc))
}

// List godoc
// @Summary      Listar cuentas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AccountResponse
// @Router       /api/accounts [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	list, err := h.ledger.ListAccounts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAccountResponse(a))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounts/{id} [get]
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	acc, err := h.ledger.GetAccount(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toAccountResponse(acc))
}

// ListMovements godoc
// @Summary      Movimientos de una cuenta
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID de la cuenta"
// @Param        from    query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to      query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit   query  int     false  "Máximo 500"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/accounts/{id}/movements [get]
func (h *AccountHandler) ListMovements(c *fiber.Ctx) error {
	from, err := dateParam(c, "from", false)
	if err != nil {
		return respondError(c, err)
	}
	to, err := dateParam(c, "to", true)
	if err != nil {
		return respondError(c, err)
	}
	limit, offset := pageParams(c)
	filter := repository.MovementFilter{AccountID: c.Params("id"), From: from, To: to, Limit: limit, Offset: offset}
	list, err := h.ledger.ListMovements(c.Context(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MovementListResponse{
		Items: toMovementList(list),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Income godoc
// @Summary      Registrar ingreso manual
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la cuenta"
// @Param        body  body  dto.ManualMovementRequest  true  "amount, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/income [post]
func (h *AccountHandler) Income(c *fiber.Ctx) error {
	return h.manual(c, h.ledger.RegisterIncome)
}

// Expense godoc
// @Summary      Registrar gasto manual
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la cuenta"
// @Param        body  body  dto.ManualMovementRequest  true  "amount, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "fondos insuficientes"
// @Router       /api/accounts/{id}/expense [post]
func (h *AccountHandler) Expense(c *fiber.Ctx) error {
	return h.manual(c, h.ledger.RegisterExpense)
}

func (h *AccountHandler) manual(c *fiber.Ctx, register func(context.Context, ledgerapp.ManualInput) (*entity.Movement, error)) error {
	var in dto.ManualMovementRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	m, err := register(c.Context(), ledgerapp.ManualInput{
		AccountID: c.Params("id"),
		Amount:    in.Amount,
		Note:      in.Note,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(m))
}

// Reconcile godoc
// @Summary      Corte de caja: ajustar al conteo físico
// @Tags         accounts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID de la cuenta"
// @Param        body  body  dto.ReconcileRequest  true  "physical_count, note"
// @Success      200   {object}  dto.ReconcileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounts/{id}/reconcile [post]
func (h *AccountHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.reconcile.Reconcile(c.Context(), reconciliation.Input{
		AccountID:     c.Params("id"),
		PhysicalCount: in.PhysicalCount,
		Note:          in.Note,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toReconcileResponse(res))
}

// Summary godoc
// @Summary      Resumen de corte en un rango de fechas
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID de la cuenta"
// @Param        from  query  string  true  "Desde"
// @Param        to    query  string  true  "Hasta"
// @Success      200  {object}  dto.SummaryResponse
// @Router       /api/accounts/{id}/summary [get]
func (h *AccountHandler) Summary(c *fiber.Ctx) error {
	from, err := dateParam(c, "from", false)
	if err != nil {
		return respondError(c, err)
	}
	to, err := dateParam(c, "to", true)
	if err != nil {
		return respondError(c, err)
	}
	if from == nil || to == nil {
		return respondError(c, &domain.ValidationError{Errors: []string{"from y to son requeridos"}})
	}
	sum, err := h.ledger.Summary(c.Context(), c.Params("id"), *from, *to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSummaryResponse(sum))
}

// Recompute godoc
// @Summary      Recalcular contadores desde el historial
// @Description  Con fix=true corrige los contadores aplicando la diferencia como delta.
// @Tags         accounts
// @Security     Bearer
// @Produce      json
// @Param        id   path   string  true   "ID de la cuenta"
// @Param        fix  query  bool    false  "Corregir contadores"
// @Success      200  {object}  ledgerapp.RecomputeResult
// @Router       /api/accounts/{id}/recompute [post]
func (h *AccountHandler) Recompute(c *fiber.Ctx) error {
	res, err := h.ledger.RecomputeAccount(c.Context(), c.Params("id"), c.QueryBool("fix", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"account_id": res.AccountID,
		"stored":     res.Stored,
		"folded":     res.Folded,
		"drift":      res.Drift,
		"fixed":      res.Fixed,
		"consistent": res.Consistent(),
	})
}
