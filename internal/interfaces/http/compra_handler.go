package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/compras"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
)

// CompraHandler ordens de compra (protegido).
type CompraHandler struct {
	uc *compras.CompraUseCase
}

// NewCompraHandler constrói o handler.
func NewCompraHandler(uc *compras.CompraUseCase) *CompraHandler {
	return &CompraHandler{uc: uc}
}

// Create godoc
// @Summary      Criar ordem de compra
// @Description  Sem efeito em estoque; aceita o header Idempotency-Key.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Chave de deduplicação"
// @Param        body  body  dto.CriarCompraRequest  true  "fornecedor_id, itens"
// @Success      201   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *CompraHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	compra, err := h.uc.Criar(c.Context(), GetUserID(c), IdempotencyKey(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCompraResponse(compra))
}

// Receber godoc
// @Summary      Receber mercadoria da ordem
// @Description  Entradas de estoque com custeio, recibo e lançamento contábil.
//
//	Reexecutar sobre ordem já recebida devolve a ordem inalterada.
//
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da ordem"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/receber [post]
func (h *CompraHandler) Receber(c *fiber.Ctx) error {
	compra, err := h.uc.Receber(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCompraResponse(compra))
}

// Pagar godoc
// @Summary      Pagar ordem (parcial ou total)
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID da ordem"
// @Param        body  body  dto.PagarCompraRequest  true  "valor"
// @Success      200   {object}  dto.CompraResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/pagar [post]
func (h *CompraHandler) Pagar(c *fiber.Ctx) error {
	var in dto.PagarCompraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	compra, err := h.uc.Pagar(c.Context(), c.Params("id"), in.Valor, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCompraResponse(compra))
}

// Cancelar godoc
// @Summary      Cancelar ordem recebida e não paga
// @Description  Saídas compensatórias, custeio reverso e lançamento inverso.
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da ordem"
// @Success      200  {object}  dto.CompraResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id}/cancelar [post]
func (h *CompraHandler) Cancelar(c *fiber.Ctx) error {
	compra, err := h.uc.Cancelar(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCompraResponse(compra))
}

// GetByID godoc
// @Summary      Buscar ordem de compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da ordem"
// @Success      200  {object}  dto.CompraResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *CompraHandler) GetByID(c *fiber.Ctx) error {
	compra, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToCompraResponse(compra))
}

// List godoc
// @Summary      Listar ordens de compra
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por status"
// @Success      200  {array}  dto.CompraResponse
// @Router       /api/compras [get]
func (h *CompraHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	ordens, err := h.uc.Listar(c.Context(), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CompraResponse, 0, len(ordens))
	for _, o := range ordens {
		out = append(out, dto.ToCompraResponse(o))
	}
	return c.JSON(out)
}
