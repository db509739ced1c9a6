package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo precios por producto (usable con pool o tx).
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

const priceColumns = `id, product_id, unit_price, wholesale_price, net_cost, base_cost,
	minimum_unit, purchase_unit, bonus_unit, discount1, discount2, discount3,
	is_active, created_at, updated_at`

func scanPrice(row pgx.Row) (*entity.Price, error) {
	var p entity.Price
	err := row.Scan(
		&p.ID, &p.ProductID, &p.UnitPrice, &p.WholesalePrice, &p.NetCost, &p.BaseCost,
		&p.MinimumUnit, &p.PurchaseUnit, &p.BonusUnit, &p.Discount1, &p.Discount2, &p.Discount3,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un precio. El índice único parcial sobre (product_id) WHERE is_active
// rechaza un segundo activo con ErrConflict.
func (r *PriceRepo) Create(ctx context.Context, p *entity.Price) error {
	query := `
		INSERT INTO prices (` + priceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.ProductID, p.UnitPrice, p.WholesalePrice, p.NetCost, p.BaseCost,
		p.MinimumUnit, p.PurchaseUnit, p.BonusUnit, p.Discount1, p.Discount2, p.Discount3,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert price: %w", err)
	}
	return nil
}

// Update reemplaza los valores del precio.
func (r *PriceRepo) Update(ctx context.Context, p *entity.Price) error {
	query := `
		UPDATE prices
		SET unit_price = $2, wholesale_price = $3, net_cost = $4, base_cost = $5,
		    minimum_unit = $6, purchase_unit = $7, bonus_unit = $8,
		    discount1 = $9, discount2 = $10, discount3 = $11,
		    is_active = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.UnitPrice, p.WholesalePrice, p.NetCost, p.BaseCost,
		p.MinimumUnit, p.PurchaseUnit, p.BonusUnit, p.Discount1, p.Discount2, p.Discount3,
		p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("update price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un precio.
func (r *PriceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM prices WHERE id = $1`, id)
	if isInvalidText(err) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene un precio por ID.
func (r *PriceRepo) GetByID(ctx context.Context, id string) (*entity.Price, error) {
	p, err := scanPrice(r.q.QueryRow(ctx, `SELECT `+priceColumns+` FROM prices WHERE id = $1`, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get price: %w", err)
	}
	return p, nil
}

// GetActiveByProduct devuelve el precio activo del producto o nil.
func (r *PriceRepo) GetActiveByProduct(ctx context.Context, productID string) (*entity.Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices WHERE product_id = $1 AND is_active LIMIT 1`
	p, err := scanPrice(r.q.QueryRow(ctx, query, productID))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active price: %w", err)
	}
	return p, nil
}

// ListByProduct devuelve los precios del producto, el activo primero y luego por fecha.
func (r *PriceRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Price, error) {
	query := `SELECT ` + priceColumns + ` FROM prices WHERE product_id = $1
		ORDER BY is_active DESC, created_at DESC`
	return r.list(ctx, query, productID)
}

// ListByProductForUpdate bloquea el producto (serializa a quien cambie sus precios, aunque aún no
// tenga ninguno) y luego las filas de precios.
func (r *PriceRepo) ListByProductForUpdate(ctx context.Context, productID string) ([]*entity.Price, error) {
	var id string
	err := r.q.QueryRow(ctx, `SELECT id FROM products WHERE id = $1 FOR NO KEY UPDATE`, productID).Scan(&id)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock product prices: %w", err)
	}
	query := `SELECT ` + priceColumns + ` FROM prices WHERE product_id = $1
		ORDER BY created_at, id FOR UPDATE`
	return r.list(ctx, query, productID)
}

func (r *PriceRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Price, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if isInvalidText(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Price
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list prices: %w", err)
	}
	return list, nil
}
