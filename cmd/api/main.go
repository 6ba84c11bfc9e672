package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestorsoft/gestor-api/internal/application/auditoria"
	"github.com/gestorsoft/gestor-api/internal/application/auth"
	"github.com/gestorsoft/gestor-api/internal/application/catalogo"
	"github.com/gestorsoft/gestor-api/internal/application/compras"
	"github.com/gestorsoft/gestor-api/internal/application/estoque"
	"github.com/gestorsoft/gestor-api/internal/application/financeiro"
	"github.com/gestorsoft/gestor-api/internal/application/idempotencia"
	"github.com/gestorsoft/gestor-api/internal/application/vendas"
	"github.com/gestorsoft/gestor-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestorsoft/gestor-api/internal/interfaces/http"
	"github.com/gestorsoft/gestor-api/pkg/config"
	"github.com/gestorsoft/gestor-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	fornecedorRepo := postgres.NewFornecedorRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	pedidoRepo := postgres.NewPedidoRepository(pool)
	purchaseRepo := postgres.NewPurchaseOrderRepository(pool)
	ledgerRepo := postgres.NewLedgerEntryRepository(pool)
	tituloRepo := postgres.NewTituloRepository(pool)
	idemRepo := postgres.NewIdempotencyKeyRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	guard := idempotencia.NewGuard(idemRepo)
	estoqueUC := estoque.NewMovimentoUseCase(txRunner, productRepo, warehouseRepo, movementRepo)
	financeiroUC := financeiro.NewLancamentoUseCase(txRunner, ledgerRepo, tituloRepo)
	pedidoUC := vendas.NewPedidoUseCase(
		txRunner, productRepo, warehouseRepo, userRepo, costCenterRepo,
		pedidoRepo, guard, estoqueUC, financeiroUC,
	)
	compraUC := compras.NewCompraUseCase(
		txRunner, productRepo, warehouseRepo, fornecedorRepo, userRepo,
		costCenterRepo, purchaseRepo, guard, estoqueUC, financeiroUC,
	)
	authUC := auth.NewUseCase(userRepo, costCenterRepo, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	produtoUC := catalogo.NewProdutoUseCase(productRepo)
	depositoUC := catalogo.NewDepositoUseCase(warehouseRepo)
	fornecedorUC := catalogo.NewFornecedorUseCase(fornecedorRepo)
	centroCustoUC := catalogo.NewCentroCustoUseCase(costCenterRepo)
	consistenciaUC := auditoria.NewConsistenciaUseCase(movementRepo, stockRepo, purchaseRepo, tituloRepo)
	logsUC := auditoria.NewLogsUseCase(auditRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Gestor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProdutoUC:     produtoUC,
		DepositoUC:    depositoUC,
		FornecedorUC:  fornecedorUC,
		CentroCustoUC: centroCustoUC,
		EstoqueUC:     estoqueUC,
		PedidoUC:      pedidoUC,
		CompraUC:      compraUC,
		FinanceiroUC:  financeiroUC,
		Consistencia:  consistenciaUC,
		AuditLogs:     logsUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
