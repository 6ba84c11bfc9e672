package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/auth"
	"github.com/gestorsoft/gestor-api/internal/application/catalogo"
	"github.com/gestorsoft/gestor-api/internal/application/compras"
	"github.com/gestorsoft/gestor-api/internal/application/estoque"
	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
	"github.com/gestorsoft/gestor-api/internal/application/vendas"
	"github.com/gestorsoft/gestor-api/internal/domain/entity"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ProdutoUC     *catalogo.ProdutoUseCase
	DepositoUC    *catalogo.DepositoUseCase
	FornecedorUC  *catalogo.FornecedorUseCase
	CentroCustoUC *catalogo.CentroCustoUseCase
	EstoqueUC     *estoque.MovimentoUseCase
	PedidoUC      *vendas.PedidoUseCase
	CompraUC      *compras.CompraUseCase
	FinanceiroUC  *financeiro.LancamentoUseCase
	Consistencia  *auditoria.ConsistenciaUseCase
	AuditLogs     *auditoria.LogsUseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// Catálogo (qualquer papel autenticado)
	produtos := protected.Group("/produtos")
	produtoHandler := NewProdutoHandler(deps.ProdutoUC)
	produtos.Post("/", produtoHandler.Create)
	produtos.Get("/", produtoHandler.List)
	produtos.Get("/:id", produtoHandler.GetByID)
	produtos.Put("/:id", produtoHandler.Update)

	depositos := protected.Group("/depositos")
	depositoHandler := NewDepositoHandler(deps.DepositoUC)
	depositos.Post("/", depositoHandler.Create)
	depositos.Get("/", depositoHandler.List)
	depositos.Get("/:id", depositoHandler.GetByID)

	fornecedores := protected.Group("/fornecedores")
	fornecedorHandler := NewFornecedorHandler(deps.FornecedorUC)
	fornecedores.Post("/", fornecedorHandler.Create)
	fornecedores.Get("/", fornecedorHandler.List)

	centros := protected.Group("/centros-custo")
	centroCustoHandler := NewCentroCustoHandler(deps.CentroCustoUC)
	centros.Post("/", centroCustoHandler.Create)
	centros.Get("/", centroCustoHandler.List)

	// Estoque: mutações restritas a operacional/admin, leituras liberadas
	estoqueGroup := protected.Group("/estoque")
	estoqueHandler := NewEstoqueHandler(deps.EstoqueUC)
	estoqueGroup.Post("/entrada", RequireRole(entity.RoleOperacional), estoqueHandler.Entrada)
	estoqueGroup.Post("/ajuste", RequireRole(entity.RoleOperacional), estoqueHandler.Ajuste)
	estoqueGroup.Post("/transferir", RequireRole(entity.RoleOperacional), estoqueHandler.Transferir)
	estoqueGroup.Get("/saldo", estoqueHandler.Saldo)
	estoqueGroup.Get("/historico", estoqueHandler.Historico)

	// Pedidos de venda
	pedidos := protected.Group("/pedidos")
	pedidoHandler := NewPedidoHandler(deps.PedidoUC)
	pedidos.Post("/", RequireRole(entity.RoleOperacional), pedidoHandler.Create)
	pedidos.Get("/", pedidoHandler.List)
	pedidos.Get("/:id", pedidoHandler.GetByID)
	pedidos.Post("/:id/status", RequireRole(entity.RoleOperacional), pedidoHandler.UpdateStatus)

	// Ordens de compra
	comprasGroup := protected.Group("/compras")
	compraHandler := NewCompraHandler(deps.CompraUC)
	comprasGroup.Post("/", RequireRole(entity.RoleOperacional), compraHandler.Create)
	comprasGroup.Get("/", compraHandler.List)
	comprasGroup.Get("/:id", compraHandler.GetByID)
	comprasGroup.Post("/:id/receber", RequireRole(entity.RoleOperacional), compraHandler.Receber)
	comprasGroup.Post("/:id/pagar", RequireRole(entity.RoleFinanceiro), compraHandler.Pagar)
	comprasGroup.Post("/:id/cancelar", RequireRole(), compraHandler.Cancelar)

	// Financeiro
	financeiroGroup := protected.Group("/financeiro")
	financeiroHandler := NewFinanceiroHandler(deps.FinanceiroUC)
	financeiroGroup.Get("/lancamentos", RequireRole(entity.RoleFinanceiro), financeiroHandler.ListLancamentos)
	financeiroGroup.Get("/titulos", RequireRole(entity.RoleFinanceiro), financeiroHandler.ListTitulos)
	financeiroGroup.Get("/titulos/:id", RequireRole(entity.RoleFinanceiro), financeiroHandler.GetTitulo)
	financeiroGroup.Post("/titulos/:id/parcelas/:parcelaID/pagar", RequireRole(entity.RoleFinanceiro), financeiroHandler.PagarParcela)
	financeiroGroup.Post("/receber-venda", RequireRole(entity.RoleFinanceiro), financeiroHandler.ReceberVenda)

	// Auditoria (somente admin)
	auditoriaGroup := protected.Group("/auditoria")
	auditoriaHandler := NewAuditoriaHandler(deps.Consistencia, deps.AuditLogs)
	auditoriaGroup.Get("/consistencia", RequireRole(), auditoriaHandler.Consistencia)
	auditoriaGroup.Get("/logs", RequireRole(), auditoriaHandler.Logs)
}
