// seed importa el catálogo inicial (productos, precio activo y stock) desde un CSV
// "descripcion;precio;costo;stock[;minimo]" a la base PostgreSQL configurada.
//
// Uso: go run ./cmd/seed catalogo.csv [latin1]
// Los productos cuya descripción ya existe se omiten.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/pos-ventas/internal/application/auth"
	"github.com/jhoicas/pos-ventas/internal/application/catalog"
	"github.com/jhoicas/pos-ventas/internal/application/importer"
	"github.com/jhoicas/pos-ventas/internal/application/inventory"
	"github.com/jhoicas/pos-ventas/internal/application/pricing"
	"github.com/jhoicas/pos-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-ventas/pkg/config"
	"github.com/jhoicas/pos-ventas/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: seed catalogo.csv [latin1]")
		os.Exit(2)
	}
	charset := "utf8"
	if len(os.Args) > 2 {
		charset = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if !cfg.DB.Enabled() {
		fmt.Fprintln(os.Stderr, "DATABASE_URL o DB_HOST requerido")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	rows, err := importer.ReadCSV(f, charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	tx := postgres.NewTxRunner(pool)
	products := postgres.NewProductRepository(pool)
	prices := postgres.NewPriceRepository(pool)
	stocks := postgres.NewStockRepository(pool)
	identity := auth.NewContextIdentity(postgres.NewUserRepository(pool))
	lookup := catalog.NewLookup(products, prices, stocks, nil, cfg.Catalog.CacheTTL(), log)

	im := importer.New(
		products,
		pricing.NewPriceUseCase(tx, prices, products, lookup, log),
		inventory.NewAdjustStockUseCase(tx, inventory.NewLedger(), products, identity, log),
		log,
	)
	res, err := im.Import(ctx, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
		if res == nil {
			os.Exit(1)
		}
	}
	fmt.Printf("Productos creados: %d, omitidos: %d\n", res.Created, res.Skipped)
	if err != nil {
		os.Exit(1)
	}
}
