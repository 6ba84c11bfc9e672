package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/catalogo"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
)

// DepositoHandler CRUD de depósitos (protegido).
type DepositoHandler struct {
	uc *catalogo.DepositoUseCase
}

// NewDepositoHandler constrói o handler.
func NewDepositoHandler(uc *catalogo.DepositoUseCase) *DepositoHandler {
	return &DepositoHandler{uc: uc}
}

// Create godoc
// @Summary      Criar depósito
// @Tags         depositos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CriarDepositoRequest  true  "nome"
// @Success      201   {object}  dto.DepositoResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/depositos [post]
func (h *DepositoHandler) Create(c *fiber.Ctx) error {
	var in dto.CriarDepositoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	w, err := h.uc.Criar(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToDepositoResponse(w))
}

// GetByID godoc
// @Summary      Buscar depósito
// @Tags         depositos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do depósito"
// @Success      200  {object}  dto.DepositoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/depositos/{id} [get]
func (h *DepositoHandler) GetByID(c *fiber.Ctx) error {
	w, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToDepositoResponse(w))
}

// List godoc
// @Summary      Listar depósitos
// @Tags         depositos
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DepositoResponse
// @Router       /api/depositos [get]
func (h *DepositoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	warehouses, err := h.uc.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.DepositoResponse, 0, len(warehouses))
	for _, w := range warehouses {
		out = append(out, dto.ToDepositoResponse(w))
	}
	return c.JSON(out)
}
