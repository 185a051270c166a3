package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del puerto StockMovementRepository sobre PostgreSQL (usable con pool o tx).
// El diario es append-only: no hay Update ni Delete.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador de persistencia para el diario de stock. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create journaliza un movimiento. Genera ID y timestamp si vienen vacíos.
func (r *StockMovementRepo) Create(ctx context.Context, mov *entity.StockMovement) error {
	if mov.ID == "" {
		mov.ID = uuid.New().String()
	}
	if mov.CreatedAt.IsZero() {
		mov.CreatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock_movements (id, order_id, ingredient_id, branch_id, type, quantity, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		mov.ID, mov.OrderID, mov.IngredientID, mov.BranchID, mov.Type, mov.Quantity, mov.Reason, mov.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByOrder devuelve los movimientos de un pedido, filtrados por tipo si movType no es vacío.
func (r *StockMovementRepo) ListByOrder(ctx context.Context, orderID string, movType string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, order_id, ingredient_id, branch_id, type, quantity, reason, created_at
		FROM stock_movements
		WHERE order_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID, movType)
	if err != nil {
		return nil, fmt.Errorf("list movements by order: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OrderID, &m.IngredientID, &m.BranchID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByIngredient devuelve los movimientos de un ingrediente, opcionalmente acotados por fechas.
func (r *StockMovementRepo) ListByIngredient(ctx context.Context, ingredientID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, order_id, ingredient_id, branch_id, type, quantity, reason, created_at
		FROM stock_movements
		WHERE ingredient_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at < $3)
		ORDER BY created_at DESC, id
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, ingredientID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by ingredient: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.OrderID, &m.IngredientID, &m.BranchID, &m.Type, &m.Quantity, &m.Reason, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
