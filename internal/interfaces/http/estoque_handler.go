package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/application/estoque"
)

// EstoqueHandler movimentos e consultas de estoque (protegido).
type EstoqueHandler struct {
	uc *estoque.MovimentoUseCase
}

// NewEstoqueHandler constrói o handler.
func NewEstoqueHandler(uc *estoque.MovimentoUseCase) *EstoqueHandler {
	return &EstoqueHandler{uc: uc}
}

// Entrada godoc
// @Summary      Registrar entrada manual de estoque
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EntradaRequest  true  "produto_id, quantidade, custo_unitario"
// @Success      201   {object}  dto.MovimentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/estoque/entrada [post]
func (h *EstoqueHandler) Entrada(c *fiber.Ctx) error {
	var in dto.EntradaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.uc.RegistrarEntrada(c.Context(), estoque.EntradaInput{
		ProductID:   in.ProdutoID,
		WarehouseID: in.DepositoID,
		Quantity:    in.Quantidade,
		UnitCost:    in.CustoUnit,
		Note:        in.Observacao,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovimentoResponse(mov))
}

// Ajuste godoc
// @Summary      Registrar ajuste de estoque (quantidade com sinal)
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AjusteRequest  true  "produto_id, quantidade (≠0), motivo"
// @Success      201   {object}  dto.MovimentoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estoque/ajuste [post]
func (h *EstoqueHandler) Ajuste(c *fiber.Ctx) error {
	var in dto.AjusteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	mov, err := h.uc.RegistrarAjuste(c.Context(), estoque.AjusteInput{
		ProductID:   in.ProdutoID,
		WarehouseID: in.DepositoID,
		Quantity:    in.Quantidade,
		Reason:      in.Motivo,
		Actor:       GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovimentoResponse(mov))
}

// Transferir godoc
// @Summary      Transferir estoque entre depósitos
// @Tags         estoque
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferenciaRequest  true  "produto_id, deposito_origem_id, deposito_destino_id, quantidade"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/estoque/transferir [post]
func (h *EstoqueHandler) Transferir(c *fiber.Ctx) error {
	var in dto.TransferenciaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	err := h.uc.Transferir(c.Context(), estoque.TransferenciaInput{
		ProductID:       in.ProdutoID,
		FromWarehouseID: in.DepositoOrigemID,
		ToWarehouseID:   in.DepositoDestID,
		Quantity:        in.Quantidade,
		Actor:           GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transferência registrada"})
}

// Saldo godoc
// @Summary      Saldo de um produto (derivado da soma dos movimentos)
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        produto_id   query  string  true   "ID do produto"
// @Param        deposito_id  query  string  false  "ID do depósito; vazio = global"
// @Success      200  {object}  dto.SaldoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/saldo [get]
func (h *EstoqueHandler) Saldo(c *fiber.Ctx) error {
	produtoID := c.Query("produto_id")
	if produtoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "produto_id obrigatório"})
	}
	depositoID := c.Query("deposito_id")
	saldo, err := h.uc.Saldo(c.Context(), produtoID, depositoID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SaldoResponse{ProdutoID: produtoID, DepositoID: depositoID, Saldo: saldo})
}

// Historico godoc
// @Summary      Histórico de movimentos por produto ou depósito
// @Tags         estoque
// @Security     Bearer
// @Produce      json
// @Param        produto_id   query  string  false  "ID do produto"
// @Param        deposito_id  query  string  false  "ID do depósito"
// @Param        de           query  string  false  "Início (RFC3339)"
// @Param        ate          query  string  false  "Fim (RFC3339)"
// @Success      200  {array}  dto.MovimentoResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/estoque/historico [get]
func (h *EstoqueHandler) Historico(c *fiber.Ctx) error {
	produtoID := c.Query("produto_id")
	depositoID := c.Query("deposito_id")
	if produtoID == "" && depositoID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "informe produto_id ou deposito_id"})
	}
	from, err := parseTimeQuery(c.Query("de"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "de inválido (RFC3339)"})
	}
	to, err := parseTimeQuery(c.Query("ate"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ate inválido (RFC3339)"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()

	movs, err := h.uc.Historico(c.Context(), produtoID, depositoID, from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovimentoResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.ToMovimentoResponse(m))
	}
	return c.JSON(out)
}

func parseTimeQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
