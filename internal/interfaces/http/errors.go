package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/domain"
)

// respondError traduz erros de domínio para status HTTP. Estoque insuficiente
// e teto de pagamento são 400: a requisição pede algo que o estado atual não
// comporta, não há conflito de versão a resolver.
func respondError(c *fiber.Ctx, err error) error {
	var insuf *domain.InsufficientStockError
	if errors.As(err, &insuf) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: insuf.Error()})
	}
	var exceeds *domain.ExceedsOutstandingError
	if errors.As(err, &exceeds) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EXCEEDS_OUTSTANDING", Message: exceeds.Error()})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidTransfer),
		errors.Is(err, domain.ErrInconsistentParcelas),
		errors.Is(err, domain.ErrCancelPaidOrder),
		errors.Is(err, domain.ErrCancelUnreceivedOrder):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso não encontrado"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciais inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "registro duplicado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email já cadastrado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
