package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo stock actual por producto (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `product_id, quantity, minimum, maximum, updated_at`

func scanStock(row pgx.Row) (*entity.Stock, error) {
	var s entity.Stock
	if err := row.Scan(&s.ProductID, &s.Quantity, &s.Minimum, &s.Maximum, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Get obtiene el stock actual de un producto; sin fila devuelve un registro vacío.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.Stock, error) {
	s, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stock WHERE product_id = $1`, productID))
	if err != nil {
		if isNotFound(err) {
			return entity.NewStock(productID), nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return s, nil
}

// GetForUpdate crea la fila si falta y la bloquea (SELECT FOR UPDATE) hasta el fin de la tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Stock, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock (product_id, quantity, minimum, updated_at)
		VALUES ($1, 0, $2, now())
		ON CONFLICT (product_id) DO NOTHING`, productID, entity.DefaultMinimumStock)
	if err != nil {
		return nil, fmt.Errorf("ensure stock row: %w", err)
	}
	s, err := scanStock(r.q.QueryRow(ctx, `SELECT `+stockColumns+` FROM stock WHERE product_id = $1 FOR UPDATE`, productID))
	if err != nil {
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return s, nil
}

// Upsert inserta o actualiza cantidad y umbrales.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	query := `
		INSERT INTO stock (product_id, quantity, minimum, maximum, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, minimum = EXCLUDED.minimum,
		              maximum = EXCLUDED.maximum, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, stock.ProductID, stock.Quantity, stock.Minimum, stock.Maximum, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// List devuelve todas las filas de stock.
func (r *StockRepo) List(ctx context.Context) ([]*entity.Stock, error) {
	rows, err := r.q.Query(ctx, `SELECT `+stockColumns+` FROM stock ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
