package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
)

// FinanceiroHandler razão e títulos (protegido).
type FinanceiroHandler struct {
	uc *financeiro.LancamentoUseCase
}

// NewFinanceiroHandler constrói o handler.
func NewFinanceiroHandler(uc *financeiro.LancamentoUseCase) *FinanceiroHandler {
	return &FinanceiroHandler{uc: uc}
}

// ListLancamentos godoc
// @Summary      Listar lançamentos do razão
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LancamentoResponse
// @Router       /api/financeiro/lancamentos [get]
func (h *FinanceiroHandler) ListLancamentos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	entries, err := h.uc.ListarLancamentos(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.LancamentoResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ToLancamentoResponse(e))
	}
	return c.JSON(out)
}

// ListTitulos godoc
// @Summary      Listar títulos
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        tipo  query  string  false  "RECEBER | PAGAR"
// @Success      200  {array}  dto.TituloResponse
// @Router       /api/financeiro/titulos [get]
func (h *FinanceiroHandler) ListTitulos(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	titulos, err := h.uc.ListarTitulos(c.Context(), c.Query("tipo"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.TituloResponse, 0, len(titulos))
	for _, t := range titulos {
		out = append(out, dto.ToTituloResponse(t))
	}
	return c.JSON(out)
}

// GetTitulo godoc
// @Summary      Buscar título com parcelas
// @Tags         financeiro
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do título"
// @Success      200  {object}  dto.TituloResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/financeiro/titulos/{id} [get]
func (h *FinanceiroHandler) GetTitulo(c *fiber.Ctx) error {
	titulo, err := h.uc.GetTitulo(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTituloResponse(titulo))
}

// PagarParcela godoc
// @Summary      Pagar uma parcela (valor integral)
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string  true  "ID do título"
// @Param        parcelaID  path  string  true  "ID da parcela"
// @Param        body       body  dto.PagarParcelaRequest  true  "valor"
// @Success      200  {object}  dto.TituloResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/financeiro/titulos/{id}/parcelas/{parcelaID}/pagar [post]
func (h *FinanceiroHandler) PagarParcela(c *fiber.Ctx) error {
	var in dto.PagarParcelaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	titulo, err := h.uc.PagarParcela(c.Context(), c.Params("id"), c.Params("parcelaID"), in.Valor, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTituloResponse(titulo))
}

// ReceberVenda godoc
// @Summary      Registrar recebimento de uma venda a prazo
// @Description  Quita uma parcela de título a receber e lança Caixa/Clientes.
// @Tags         financeiro
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceberVendaRequest  true  "titulo_id, parcela_id, valor"
// @Success      200  {object}  dto.TituloResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/financeiro/receber-venda [post]
func (h *FinanceiroHandler) ReceberVenda(c *fiber.Ctx) error {
	var in dto.ReceberVendaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	titulo, err := h.uc.PagarParcela(c.Context(), in.TituloID, in.ParcelaID, in.Valor, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToTituloResponse(titulo))
}
