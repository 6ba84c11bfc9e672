package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/dto"
)

// AuditoriaHandler trilha de auditoria e verificação de consistência (admin).
type AuditoriaHandler struct {
	consistencia *auditoria.ConsistenciaUseCase
	logs         *auditoria.LogsUseCase
}

// NewAuditoriaHandler constrói o handler.
func NewAuditoriaHandler(consistencia *auditoria.ConsistenciaUseCase, logs *auditoria.LogsUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{consistencia: consistencia, logs: logs}
}

// Consistencia godoc
// @Summary      Verificação de consistência dos quatro livros
// @Description  Rederiva saldos do log de movimentos e confere totais de
//
//	compra e somas de parcelas; devolve as divergências.
//
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ConsistenciaResponse
// @Router       /api/auditoria/consistencia [get]
func (h *AuditoriaHandler) Consistencia(c *fiber.Ctx) error {
	report, err := h.consistencia.Verificar(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Logs godoc
// @Summary      Listar trilha de auditoria
// @Tags         auditoria
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AuditLogResponse
// @Router       /api/auditoria/logs [get]
func (h *AuditoriaHandler) Logs(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	page.DefaultPage()
	logs, err := h.logs.Listar(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.ToAuditLogResponse(l))
	}
	return c.JSON(out)
}
