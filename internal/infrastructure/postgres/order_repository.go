package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/pos-ventas/internal/domain"
	"github.com/jhoicas/pos-ventas/internal/domain/entity"
	"github.com/jhoicas/pos-ventas/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos, líneas y pagos (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, number, document_type, date, subtotal, discount_total, tax, total, cost_total,
	status, customer_id, customer_name, seller_id, cashier_id, notes, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var customerID, sellerID, cashierID *string
	err := row.Scan(
		&o.ID, &o.Number, &o.DocumentType, &o.Date, &o.Subtotal, &o.DiscountTotal, &o.Tax, &o.Total, &o.CostTotal,
		&o.Status, &customerID, &o.CustomerName, &sellerID, &cashierID, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.CustomerID = derefStr(customerID)
	o.SellerID = derefStr(sellerID)
	o.CashierID = derefStr(cashierID)
	return &o, nil
}

// Create persiste la cabecera del pedido. Un número repetido devuelve ErrConflict.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.Number, o.DocumentType, o.Date, o.Subtotal, o.DiscountTotal, o.Tax, o.Total, o.CostTotal,
		o.Status, nullIfEmpty(o.CustomerID), o.CustomerName, nullIfEmpty(o.SellerID), nullIfEmpty(o.CashierID),
		o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// Update actualiza totales y estado del pedido.
func (r *OrderRepo) Update(ctx context.Context, o *entity.Order) error {
	query := `
		UPDATE orders
		SET subtotal = $2, discount_total = $3, tax = $4, total = $5, cost_total = $6,
		    status = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		o.ID, o.Subtotal, o.DiscountTotal, o.Tax, o.Total, o.CostTotal, o.Status, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CreateLine persiste una línea del pedido.
func (r *OrderRepo) CreateLine(ctx context.Context, l *entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, product_id, price_id, quantity, unit_price, discount, subtotal, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.OrderID, l.ProductID, nullIfEmpty(l.PriceID), l.Quantity, l.UnitPrice, l.Discount, l.Subtotal, l.UnitCost,
	)
	if err != nil {
		return fmt.Errorf("insert order line: %w", err)
	}
	return nil
}

// CreatePayment persiste un pago del pedido.
func (r *OrderRepo) CreatePayment(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, method, amount, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.OrderID, p.Method, p.Amount, p.Reference, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de un pedido.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene el pedido bloqueando la fila hasta el fin de la tx.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *OrderRepo) get(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListLines devuelve las líneas del pedido.
func (r *OrderRepo) ListLines(ctx context.Context, orderID string) ([]*entity.OrderLine, error) {
	query := `
		SELECT id, order_id, product_id, price_id, quantity, unit_price, discount, subtotal, unit_cost
		FROM order_lines WHERE order_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		var priceID *string
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &priceID, &l.Quantity, &l.UnitPrice, &l.Discount, &l.Subtotal, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		l.PriceID = derefStr(priceID)
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ListPayments devuelve los pagos del pedido.
func (r *OrderRepo) ListPayments(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, order_id, method, amount, reference, created_at
		FROM payments WHERE order_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.OrderID, &p.Method, &p.Amount, &p.Reference, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List devuelve los pedidos desde f.From que coinciden con la búsqueda, más reciente primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ($1::timestamptz IS NULL OR date >= $1)
		  AND ($2 = '' OR number ILIKE '%' || $2 || '%' OR customer_name ILIKE '%' || $2 || '%')
		ORDER BY date DESC, number DESC`
	rows, err := r.q.Query(ctx, query, f.From, f.Search)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// LockSequence toma un advisory lock de transacción por tipo de comprobante: dos ventas del mismo
// tipo no pueden leer el mismo máximo.
func (r *OrderRepo) LockSequence(ctx context.Context, docType string) error {
	_, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('order_seq:' || $1))`, docType)
	if err != nil {
		return fmt.Errorf("lock order sequence: %w", err)
	}
	return nil
}

// MaxSequence devuelve el mayor correlativo emitido para el tipo (0 si no hay).
// Los números que no siguen el formato SERIE-NNNNNNN se ignoran.
func (r *OrderRepo) MaxSequence(ctx context.Context, docType string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(split_part(number, '-', 2) AS BIGINT)), 0)
		FROM orders
		WHERE document_type = $1 AND number ~ '^[A-Z][0-9]{3}-[0-9]{1,9}$'`
	var seq int
	if err := r.q.QueryRow(ctx, query, docType).Scan(&seq); err != nil {
		return 0, fmt.Errorf("max order sequence: %w", err)
	}
	return seq, nil
}
