package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo kardex sobre PostgreSQL; solo inserción (usable con pool o tx).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste el movimiento y devuelve en m.Seq el correlativo asignado por la secuencia.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, quantity, quantity_before, quantity_after, reason, user_id, order_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING seq`
	err := r.q.QueryRow(ctx, query,
		m.ID, m.ProductID, m.Kind, m.Quantity, m.QuantityBefore, m.QuantityAfter,
		m.Reason, nullIfEmpty(m.UserID), nullIfEmpty(m.OrderID), m.CreatedAt,
	).Scan(&m.Seq)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct devuelve el kardex del producto en orden de registro.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `WHERE product_id = $1`, productID)
}

// ListByOrder devuelve los movimientos generados por un pedido (ventas y devoluciones).
func (r *StockMovementRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, `WHERE order_id = $1`, orderID)
}

func (r *StockMovementRepo) list(ctx context.Context, where string, args ...any) ([]*entity.StockMovement, error) {
	query := `
		SELECT seq, id, product_id, kind, quantity, quantity_before, quantity_after, reason, user_id, order_id, created_at
		FROM stock_movements ` + where + ` ORDER BY seq`
	rows, err := r.q.Query(ctx, query, args...)
	if isInvalidText(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		if isInvalidText(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var userID, orderID *string
	err := row.Scan(
		&m.Seq, &m.ID, &m.ProductID, &m.Kind, &m.Quantity, &m.QuantityBefore, &m.QuantityAfter,
		&m.Reason, &userID, &orderID, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.UserID = derefStr(userID)
	m.OrderID = derefStr(orderID)
	return &m, nil
}
