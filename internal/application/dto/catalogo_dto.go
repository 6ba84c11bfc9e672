package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// CriarProdutoRequest body de POST /api/produtos.
type CriarProdutoRequest struct {
	SKU       string          `json:"sku"`
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao,omitempty"`
	Preco     decimal.Decimal `json:"preco"`
}

// AtualizarProdutoRequest body de PUT /api/produtos/:id. O custo não é
// editável por aqui; só o motor de custeio escreve nele.
type AtualizarProdutoRequest struct {
	Nome      string          `json:"nome"`
	Descricao string          `json:"descricao,omitempty"`
	Preco     decimal.Decimal `json:"preco"`
}

// ProdutoResponse resposta de produto.
type ProdutoResponse struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	SKU       string    `json:"sku"`
	Nome      string    `json:"nome"`
	Descricao string    `json:"descricao,omitempty"`
	Preco     string    `json:"preco"`
	Custo     string    `json:"custo"`
	CriadoEm  time.Time `json:"criado_em"`
}

// ToProdutoResponse converte a entidade; dinheiro com 2 casas.
func ToProdutoResponse(p *entity.Product) ProdutoResponse {
	return ProdutoResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		SKU:       p.SKU,
		Nome:      p.Name,
		Descricao: p.Description,
		Preco:     p.Price.StringFixed(2),
		Custo:     p.Cost.StringFixed(2),
		CriadoEm:  p.CreatedAt,
	}
}

// CriarDepositoRequest body de POST /api/depositos.
type CriarDepositoRequest struct {
	Nome string `json:"nome"`
}

// DepositoResponse resposta de depósito.
type DepositoResponse struct {
	ID       string    `json:"id"`
	Nome     string    `json:"nome"`
	Slug     string    `json:"slug"`
	CriadoEm time.Time `json:"criado_em"`
}

// ToDepositoResponse converte a entidade.
func ToDepositoResponse(w *entity.Warehouse) DepositoResponse {
	return DepositoResponse{ID: w.ID, Nome: w.Name, Slug: w.Slug, CriadoEm: w.CreatedAt}
}

// CriarFornecedorRequest body de POST /api/fornecedores.
type CriarFornecedorRequest struct {
	Nome      string `json:"nome"`
	Documento string `json:"documento,omitempty"`
}

// CriarCentroCustoRequest body de POST /api/centros-custo.
type CriarCentroCustoRequest struct {
	Codigo string `json:"codigo"`
	Nome   string `json:"nome"`
}

// FornecedorResponse resposta de fornecedor.
type FornecedorResponse struct {
	ID        string    `json:"id"`
	Nome      string    `json:"nome"`
	Documento string    `json:"documento,omitempty"`
	CriadoEm  time.Time `json:"criado_em"`
}

// ToFornecedorResponse converte a entidade.
func ToFornecedorResponse(f *entity.Fornecedor) FornecedorResponse {
	return FornecedorResponse{ID: f.ID, Nome: f.Name, Documento: f.Document, CriadoEm: f.CreatedAt}
}

// CentroCustoResponse resposta de centro de custo.
type CentroCustoResponse struct {
	ID       string    `json:"id"`
	Codigo   string    `json:"codigo"`
	Nome     string    `json:"nome"`
	CriadoEm time.Time `json:"criado_em"`
}

// ToCentroCustoResponse converte a entidade.
func ToCentroCustoResponse(c *entity.CostCenter) CentroCustoResponse {
	return CentroCustoResponse{ID: c.ID, Codigo: c.Code, Nome: c.Name, CriadoEm: c.CreatedAt}
}
