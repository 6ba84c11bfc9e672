package catalogo

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestorsoft/gestor-api/internal/application/dto"
	"github.com/gestorsoft/gestor-api/internal/domain"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
	"github.com/gestorsoft/gestor-api/internal/domain/repository"
	"github.com/gestorsoft/gestor-api/pkg/slug"
)

// ProdutoUseCase CRUD do catálogo de produtos. O custo médio não é editável
// por aqui; ele pertence ao motor de custeio.
type ProdutoUseCase struct {
	produtos repository.ProductRepository
}

// NewProdutoUseCase constrói o caso de uso.
func NewProdutoUseCase(produtos repository.ProductRepository) *ProdutoUseCase {
	return &ProdutoUseCase{produtos: produtos}
}

// Criar registra um produto novo com custo zero.
func (uc *ProdutoUseCase) Criar(ctx context.Context, in dto.CriarProdutoRequest) (*entity.Product, error) {
	if in.SKU == "" || in.Nome == "" || in.Preco.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	p := &entity.Product{
		ID:          uuid.New().String(),
		Slug:        slug.Make(in.Nome),
		SKU:         strings.TrimSpace(in.SKU),
		Name:        in.Nome,
		Description: in.Descricao,
		Price:       in.Preco,
		Cost:        decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.produtos.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Atualizar edita nome, descrição e preço. Mudar o preço não reescreve
// pedidos antigos: cada item carrega a foto do preço do momento da venda.
func (uc *ProdutoUseCase) Atualizar(ctx context.Context, id string, in dto.AtualizarProdutoRequest) (*entity.Product, error) {
	if in.Nome == "" || in.Preco.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.produtos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.Name = in.Nome
	p.Slug = slug.Make(in.Nome)
	p.Description = in.Descricao
	p.Price = in.Preco
	p.UpdatedAt = time.Now().UTC()
	if err := uc.produtos.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get busca por id.
func (uc *ProdutoUseCase) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.produtos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Listar pagina o catálogo.
func (uc *ProdutoUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.produtos.List(limit, offset)
}

// DepositoUseCase CRUD de depósitos.
type DepositoUseCase struct {
	depositos repository.WarehouseRepository
}

// NewDepositoUseCase constrói o caso de uso.
func NewDepositoUseCase(depositos repository.WarehouseRepository) *DepositoUseCase {
	return &DepositoUseCase{depositos: depositos}
}

// Criar registra um depósito; o slug é derivado do nome.
func (uc *DepositoUseCase) Criar(ctx context.Context, in dto.CriarDepositoRequest) (*entity.Warehouse, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	w := &entity.Warehouse{
		ID:        uuid.New().String(),
		Name:      in.Nome,
		Slug:      slug.Make(in.Nome),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.depositos.Create(w); err != nil {
		return nil, err
	}
	return w, nil
}

// Get busca por id.
func (uc *DepositoUseCase) Get(ctx context.Context, id string) (*entity.Warehouse, error) {
	w, err := uc.depositos.GetByID(id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// Listar pagina depósitos.
func (uc *DepositoUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	return uc.depositos.List(limit, offset)
}

// FornecedorUseCase CRUD de fornecedores.
type FornecedorUseCase struct {
	fornecedores repository.FornecedorRepository
}

// NewFornecedorUseCase constrói o caso de uso.
func NewFornecedorUseCase(fornecedores repository.FornecedorRepository) *FornecedorUseCase {
	return &FornecedorUseCase{fornecedores: fornecedores}
}

// Criar registra um fornecedor.
func (uc *FornecedorUseCase) Criar(ctx context.Context, in dto.CriarFornecedorRequest) (*entity.Fornecedor, error) {
	if in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	f := &entity.Fornecedor{
		ID:        uuid.New().String(),
		Name:      in.Nome,
		Document:  in.Documento,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.fornecedores.Create(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Get busca por id.
func (uc *FornecedorUseCase) Get(ctx context.Context, id string) (*entity.Fornecedor, error) {
	f, err := uc.fornecedores.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return f, nil
}

// Listar pagina fornecedores.
func (uc *FornecedorUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.Fornecedor, error) {
	return uc.fornecedores.List(limit, offset)
}

// CentroCustoUseCase CRUD de centros de custo.
type CentroCustoUseCase struct {
	centros repository.CostCenterRepository
}

// NewCentroCustoUseCase constrói o caso de uso.
func NewCentroCustoUseCase(centros repository.CostCenterRepository) *CentroCustoUseCase {
	return &CentroCustoUseCase{centros: centros}
}

// Criar registra um centro de custo com código único.
func (uc *CentroCustoUseCase) Criar(ctx context.Context, in dto.CriarCentroCustoRequest) (*entity.CostCenter, error) {
	if in.Codigo == "" || in.Nome == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, err := uc.centros.GetByCode(in.Codigo)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.CostCenter{
		ID:        uuid.New().String(),
		Code:      strings.ToUpper(strings.TrimSpace(in.Codigo)),
		Name:      in.Nome,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.centros.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Listar pagina centros de custo.
func (uc *CentroCustoUseCase) Listar(ctx context.Context, limit, offset int) ([]*entity.CostCenter, error) {
	return uc.centros.List(limit, offset)
}
