package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/pos-ventas/docs"
	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/catalog"
	"github.com/jhoicas/pos-ventas/internal/application/dto"
	"github.com/jhoicas/pos-ventas/internal/application/importer"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/application/sales"
	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/cache"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-ventas/internal/interfaces/http"
	"github.com/jhoicas/pos-ventas/pkg/config"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

// txRunner transacciones de inventario, venta y precios sobre el mismo almacén.
type txRunner interface {
	inventory.TxRunner
	sales.SalesTxRunner
	pricing.PriceTxRunner
}

// backend repositorios y runner del almacén elegido (PostgreSQL o memoria).
type backend struct {
	name      string
	tx        txRunner
	products  importer.Catalog
	prices    repository.PriceRepository
	stocks    repository.StockRepository
	movements repository.StockMovementRepository
	orders    repository.OrderRepository
	users     repository.UserRepository
	customers repository.CustomerRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("configuración inválida: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.StoreBackend()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer store.close()

	var priceCache catalog.PriceCache
	if cfg.Redis.Enabled() {
		rc := cache.NewRedisPriceCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se sigue sin cache de precios")
			_ = rc.Close()
		} else {
			priceCache = rc
			defer rc.Close()
		}
		cancel()
	}

	identity := auth.NewContextIdentity(store.users)
	ledger := inventory.NewLedger()
	lookup := catalog.NewLookup(store.products, store.prices, store.stocks, priceCache, cfg.Catalog.CacheTTL(), log)
	adjustUC := inventory.NewAdjustStockUseCase(store.tx, ledger, store.products, identity, log)
	stockQueryUC := inventory.NewStockQueryUseCase(store.products, store.stocks, store.movements)
	priceUC := pricing.NewPriceUseCase(store.tx, store.prices, store.products, lookup, log)
	checkoutUC := sales.NewCheckoutUseCase(store.tx, ledger, identity, log)
	cancelUC := sales.NewCancelOrderUseCase(store.tx, ledger, identity, log)
	ordersUC := sales.NewOrderQueryUseCase(store.orders, store.movements)
	authUC := auth.NewAuthUseCase(store.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	seedAdmin(ctx, cfg.Seed, authUC, log)
	if cfg.Seed.CatalogFile != "" {
		im := importer.New(store.products, priceUC, adjustUC, log)
		if err := importCatalog(ctx, im, cfg.Seed.CatalogFile, cfg.Seed.CatalogCharset); err != nil {
			log.Error().Err(err).Str("file", cfg.Seed.CatalogFile).Msg("importar catálogo")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (requiere docs/swagger.json junto al binario)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    docs.SwaggerInfo.Title,
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": store.name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		Carts:       sales.NewCartRegistry(lookup),
		Customers:   store.customers,
		Checkout:    checkoutUC,
		CancelOrder: cancelUC,
		Orders:      ordersUC,
		AdjustStock: adjustUC,
		StockQuery:  stockQueryUC,
		Prices:      priceUC,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openBackend conecta PostgreSQL (aplicando migraciones si DB_AUTO_MIGRATE) o crea el almacén en memoria.
func openBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	if cfg.StoreBackend() == config.StoreMemory {
		s := memory.NewStore()
		return &backend{
			name:      config.StoreMemory,
			tx:        s,
			products:  s.Products(),
			prices:    s.Prices(),
			stocks:    s.Stocks(),
			movements: s.Movements(),
			orders:    s.Orders(),
			users:     s.Users(),
			customers: s.Customers(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &backend{
		name:      config.StorePostgres,
		tx:        postgres.NewTxRunner(pool),
		products:  postgres.NewProductRepository(pool),
		prices:    postgres.NewPriceRepository(pool),
		stocks:    postgres.NewStockRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		users:     postgres.NewUserRepository(pool),
		customers: postgres.NewCustomerRepository(pool),
		close:     pool.Close,
	}, nil
}

// seedAdmin crea el administrador configurado si todavía no existe.
func seedAdmin(ctx context.Context, seed config.SeedConfig, authUC *auth.AuthUseCase, log *logger.Logger) {
	if seed.AdminEmail == "" || seed.AdminPassword == "" {
		return
	}
	_, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email:    seed.AdminEmail,
		Password: seed.AdminPassword,
		Name:     "Administrador",
		Role:     entity.RoleAdmin,
	})
	switch {
	case err == nil:
		log.Info().Str("email", seed.AdminEmail).Msg("usuario administrador creado")
	case errors.Is(err, domain.ErrConflict):
	default:
		log.Error().Err(err).Msg("crear usuario administrador")
	}
}

func importCatalog(ctx context.Context, im *importer.Importer, path, charset string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	rows, err := importer.ReadCSV(f, charset)
	if err != nil {
		return err
	}
	_, err = im.Import(ctx, rows)
	return err
}
