package entity

// Plano de contas fixo. A resolução é por nome; conta ausente é erro de
// configuração sinalizado no momento do lançamento, nunca ignorado.
const (
	AccountCaixa         = "Caixa"
	AccountEstoque       = "Estoque"
	AccountReceitaVendas = "Receita de Vendas"
	AccountCMV           = "CMV"
	AccountFornecedores  = "Fornecedores"
	AccountClientes      = "Clientes"
)

// Naturezas de conta.
const (
	AccountAtivo   = "ATIVO"
	AccountPassivo = "PASSIVO"
	AccountReceita = "RECEITA"
	AccountDespesa = "DESPESA"
)

// Account é uma conta do razão.
type Account struct {
	ID   string
	Name string
	Kind string
}
