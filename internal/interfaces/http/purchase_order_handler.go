package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/application/sales"
)

// PurchaseOrderHandler órdenes de compra y pagos a distribuidores (protegido).
type PurchaseOrderHandler struct {
	svc *sales.Service
}

// NewPurchaseOrderHandler construye el handler.
func NewPurchaseOrderHandler(svc *sales.Service) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{svc: svc}
}

// Create godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "distribuidor, cantidad, costo, flete, pago inicial"
// @Success      201   {object}  dto.PurchaseOrderResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *PurchaseOrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.CreatePurchaseOrder(c.Context(), sales.CreatePurchaseOrderInput{
		DistributorID:   in.DistributorID,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		UnitFreight:     in.UnitFreight,
		InitialPayment:  in.InitialPayment,
		SourceAccountID: in.SourceAccountID,
		Note:            in.Note,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResultResponse(res))
}

// Pay godoc
// @Summary      Pagar al distribuidor
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la orden"
// @Param        body  body  dto.PayDistributorRequest  true  "amount, source_account_id"
// @Success      201   {object}  dto.PurchaseOrderResultResponse
// @Failure      409   {object}  dto.ErrorResponse  "fondos insuficientes"
// @Router       /api/purchase-orders/{id}/payments [post]
func (h *PurchaseOrderHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayDistributorRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.PayDistributor(c.Context(), sales.PayDistributorInput{
		PurchaseOrderID: c.Params("id"),
		Amount:          in.Amount,
		SourceAccountID: in.SourceAccountID,
		Note:            in.Note,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOrderResultResponse(res))
}

// GetByID godoc
// @Summary      Obtener orden de compra con stock disponible
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la orden"
// @Success      200  {object}  dto.PurchaseOrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchase-orders/{id} [get]
func (h *PurchaseOrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.svc.GetPurchaseOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toPurchaseOrderResponse(order))
}

// List godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PurchaseOrderListResponse
// @Router       /api/purchase-orders [get]
func (h *PurchaseOrderHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.svc.ListPurchaseOrders(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, toPurchaseOrderResponse(o))
	}
	return c.JSON(dto.PurchaseOrderListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}
