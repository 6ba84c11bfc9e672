package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros de domínio (sem dependências externas além de decimal nas variantes parametrizadas).
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrUserNotFound          = errors.New("usuário não encontrado")
	ErrEmailAlreadyExists    = errors.New("o e-mail já está cadastrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidQuantity       = errors.New("quantidade inválida")
	ErrInvalidTransfer       = errors.New("transferência inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("não autorizado")
	ErrForbidden             = errors.New("acesso negado")
	ErrConflict              = errors.New("conflito com o estado atual")
	ErrMissingAccount        = errors.New("conta contábil não cadastrada")
	ErrInconsistentParcelas  = errors.New("soma das parcelas difere do valor do título")
	ErrCancelPaidOrder       = errors.New("compra com pagamento não pode ser cancelada")
	ErrCancelUnreceivedOrder = errors.New("compra ainda não recebida não pode ser cancelada")
)

// InsufficientStockError indica saldo insuficiente, nomeando o primeiro produto que falhou.
type InsufficientStockError struct {
	ProductID string
	SKU       string
}

func (e *InsufficientStockError) Error() string {
	if e.SKU != "" {
		return fmt.Sprintf("estoque insuficiente para o produto %s", e.SKU)
	}
	return fmt.Sprintf("estoque insuficiente para o produto %s", e.ProductID)
}

// ExceedsOutstandingError indica pagamento acima do saldo devedor da compra.
type ExceedsOutstandingError struct {
	Outstanding decimal.Decimal
	Requested   decimal.Decimal
}

func (e *ExceedsOutstandingError) Error() string {
	return fmt.Sprintf("pagamento de %s excede o saldo devedor de %s",
		e.Requested.StringFixed(2), e.Outstanding.StringFixed(2))
}
