package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/order"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas del pedido viven en una columna jsonb (snapshot de nombre y
// precio al momento de la compra); la agregación de ventas las expande con
// jsonb_array_elements en SQL, sin traer los pedidos a memoria.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(ctx context.Context, ord *entity.Order) error {
	items, err := json.Marshal(ord.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, branch_id, items, amount, status, payment, consumption_applied, cancellation_reason, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.q.Exec(ctx, query,
		ord.ID, ord.BranchID, items, ord.Amount, string(ord.Status),
		ord.Payment, ord.ConsumptionApplied, ord.CancellationReason, ord.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, branch_id, items, amount, status, payment, consumption_applied, cancellation_reason, date
		FROM orders WHERE id = $1`
	ord, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return ord, nil
}

// GetForUpdate bloquea el pedido (SELECT FOR UPDATE) dentro de la transacción en curso.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, branch_id, items, amount, status, payment, consumption_applied, cancellation_reason, date
		FROM orders WHERE id = $1
		FOR UPDATE`
	ord, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order for update: %w", err)
	}
	return ord, nil
}

// UpdateStatus persiste el estado, la razón de cancelación y la marca de consumo en un solo write.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status, reason string, consumptionApplied bool) error {
	query := `
		UPDATE orders SET status = $2, cancellation_reason = $3, consumption_applied = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, string(status), reason, consumptionApplied)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista pedidos con paginación, del más reciente al más antiguo.
func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, branch_id, items, amount, status, payment, consumption_applied, cancellation_reason, date
		FROM orders ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, ord)
	}
	return list, rows.Err()
}

// FulfilledSales agrega unidades vendidas por plato sobre los pedidos Served
// con fecha en [from, to), sumando todas las sucursales. La expansión de las
// líneas jsonb y el GROUP BY ocurren en la base; el segundo resultado es el
// total de pedidos en la ventana (base de la regla de mínimo de pedidos).
func (r *OrderRepo) FulfilledSales(ctx context.Context, from, to time.Time) ([]repository.ItemSales, int, error) {
	query := `
		SELECT item->>'item_id' AS item_id, SUM((item->>'quantity')::numeric) AS units
		FROM orders o, jsonb_array_elements(o.items) AS item
		WHERE o.status = $1 AND o.date >= $2 AND o.date < $3
		GROUP BY item->>'item_id'`
	rows, err := r.q.Query(ctx, query, string(order.StatusServed), from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("aggregate fulfilled sales: %w", err)
	}
	defer rows.Close()
	var sales []repository.ItemSales
	for rows.Next() {
		var s repository.ItemSales
		if err := rows.Scan(&s.ItemID, &s.Units); err != nil {
			return nil, 0, fmt.Errorf("scan item sales: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT COUNT(*) FROM orders WHERE status = $1 AND date >= $2 AND date < $3`
	if err := r.q.QueryRow(ctx, countQuery, string(order.StatusServed), from, to).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("count fulfilled orders: %w", err)
	}
	return sales, count, nil
}

// ListFulfilledByDay devuelve los pedidos Served de un día (YYYY-MM-DD) y sucursal.
func (r *OrderRepo) ListFulfilledByDay(ctx context.Context, date string, branchID *string) ([]*entity.Order, error) {
	query := `
		SELECT id, branch_id, items, amount, status, payment, consumption_applied, cancellation_reason, date
		FROM orders
		WHERE status = $1 AND date::date = $2::date AND branch_id IS NOT DISTINCT FROM $3
		ORDER BY date`
	rows, err := r.q.Query(ctx, query, string(order.StatusServed), date, branchID)
	if err != nil {
		return nil, fmt.Errorf("list fulfilled orders by day: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, ord)
	}
	return list, rows.Err()
}

// scanOrder lee una fila de orders, deserializando las líneas desde jsonb.
func scanOrder(row pgx.Row) (*entity.Order, error) {
	var ord entity.Order
	var items []byte
	var status string
	if err := row.Scan(&ord.ID, &ord.BranchID, &items, &ord.Amount, &status,
		&ord.Payment, &ord.ConsumptionApplied, &ord.CancellationReason, &ord.Date); err != nil {
		return nil, err
	}
	ord.Status = order.Status(status)
	if err := json.Unmarshal(items, &ord.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	return &ord, nil
}
