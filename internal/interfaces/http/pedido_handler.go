package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/application/vendas"
)

// PedidoHandler pedidos de venda (protegido).
type PedidoHandler struct {
	uc *vendas.PedidoUseCase
}

// NewPedidoHandler constrói o handler.
func NewPedidoHandler(uc *vendas.PedidoUseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Create godoc
// @Summary      Criar pedido de venda
// @Description  Débito de estoque, receita e CMV numa única transação.
//
//	Aceita o header Idempotency-Key para retry seguro.
//
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Chave de deduplicação"
// @Param        body  body  dto.CriarPedidoRequest  true  "comprador, forma_pagamento, itens"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarPedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	pedido, err := h.uc.Criar(c.Context(), GetUserID(c), IdempotencyKey(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToPedidoResponse(pedido))
}

// UpdateStatus godoc
// @Summary      Avançar status informativo do pedido
// @Tags         pedidos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID do pedido"
// @Param        body  body  dto.AtualizarStatusRequest  true  "status destino"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/status [post]
func (h *PedidoHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.AtualizarStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	pedido, err := h.uc.AtualizarStatus(c.Context(), c.Params("id"), in.Status, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPedidoResponse(pedido))
}

// GetByID godoc
// @Summary      Buscar pedido
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	pedido, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToPedidoResponse(pedido))
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por status"
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	pedidos, err := h.uc.Listar(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PedidoResponse, 0, len(pedidos))
	for _, p := range pedidos {
		out = append(out, dto.ToPedidoResponse(p))
	}
	return c.JSON(out)
}
