package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/catalogo"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
)

// FornecedorHandler cadastro de fornecedores (protegido).
type FornecedorHandler struct {
	uc *catalogo.FornecedorUseCase
}

// NewFornecedorHandler constrói o handler.
func NewFornecedorHandler(uc *catalogo.FornecedorUseCase) *FornecedorHandler {
	return &FornecedorHandler{uc: uc}
}

// Create godoc
// @Summary      Criar fornecedor
// @Tags         fornecedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarFornecedorRequest  true  "nome, documento"
// @Success      201   {object}  dto.FornecedorResponse
// @Router       /api/fornecedores [post]
func (h *FornecedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarFornecedorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	f, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToFornecedorResponse(f))
}

// List godoc
// @Summary      Listar fornecedores
// @Tags         fornecedores
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.FornecedorResponse
// @Router       /api/fornecedores [get]
func (h *FornecedorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	fornecedores, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.FornecedorResponse, 0, len(fornecedores))
	for _, f := range fornecedores {
		out = append(out, dto.ToFornecedorResponse(f))
	}
	return c.JSON(out)
}

// CentroCustoHandler cadastro de centros de custo (protegido).
type CentroCustoHandler struct {
	uc *catalogo.CentroCustoUseCase
}

// NewCentroCustoHandler constrói o handler.
func NewCentroCustoHandler(uc *catalogo.CentroCustoUseCase) *CentroCustoHandler {
	return &CentroCustoHandler{uc: uc}
}

// Create godoc
// @Summary      Criar centro de custo
// @Tags         centros-custo
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarCentroCustoRequest  true  "codigo, nome"
// @Success      201   {object}  dto.CentroCustoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/centros-custo [post]
func (h *CentroCustoHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarCentroCustoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cc, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToCentroCustoResponse(cc))
}

// List godoc
// @Summary      Listar centros de custo
// @Tags         centros-custo
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CentroCustoResponse
// @Router       /api/centros-custo [get]
func (h *CentroCustoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	centros, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.CentroCustoResponse, 0, len(centros))
	for _, cc := range centros {
		out = append(out, dto.ToCentroCustoResponse(cc))
	}
	return c.JSON(out)
}
