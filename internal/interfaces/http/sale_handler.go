package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/application/sales"
	"github.com/jhoicas/chronos-ledger/internal/domain"
)

// SaleHandler ventas y abonos (protegido).
type SaleHandler struct {
	svc *sales.Service
}

// NewSaleHandler construye el handler.
func NewSaleHandler(svc *sales.Service) *SaleHandler {
	return &SaleHandler{svc: svc}
}

func saleInput(c *fiber.Ctx, in dto.CreateSaleRequest) sales.CreateSaleInput {
	return sales.CreateSaleInput{
		ClientID:          in.ClientID,
		PurchaseOrderID:   in.PurchaseOrderID,
		Quantity:          in.Quantity,
		SaleUnitPrice:     in.SaleUnitPrice,
		PurchaseUnitPrice: in.PurchaseUnitPrice,
		FreightUnitPrice:  in.FreightUnitPrice,
		AmountPaid:        in.AmountPaid,
		Note:              in.Note,
		UserID:            GetUserID(c),
	}
}

// Create godoc
// @Summary      Registrar venta con distribución GYA
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "cliente, orden, cantidad, precios, abono inicial"
// @Success      201   {object}  dto.SaleResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "stock insuficiente"
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.CreateSale(c.Context(), saleInput(c, in))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResultResponse(res))
}

// Preview godoc
// @Summary      Vista previa de distribución y márgenes (no persiste)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "precios y cantidad"
// @Success      200   {object}  dto.SalePreviewResponse
// @Router       /api/sales/preview [post]
func (h *SaleHandler) Preview(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, &domain.ValidationError{Errors: []string{"cuerpo inválido"}})
	}
	return c.JSON(toPreviewResponse(h.svc.PreviewSale(saleInput(c, in))))
}

// Advance godoc
// @Summary      Registrar abono a una venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la venta"
// @Param        body  body  dto.AdvanceRequest  true  "amount, note"
// @Success      201   {object}  dto.SaleResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse  "venta ya pagada"
// @Router       /api/sales/{id}/advances [post]
func (h *SaleHandler) Advance(c *fiber.Ctx) error {
	var in dto.AdvanceRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.svc.RegisterAdvance(c.Context(), sales.AdvanceInput{
		SaleID: c.Params("id"),
		Amount: in.Amount,
		Note:   in.Note,
		UserID: GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResultResponse(res))
}

// GetByID godoc
// @Summary      Obtener venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.svc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// List godoc
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	list, err := h.svc.ListSales(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSaleResponse(s))
	}
	return c.JSON(dto.SaleListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}
