package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre PostgreSQL (usable con pool o tx).
//
// branch_id es NULL para la bodega central; el índice único de la tabla usa
// NULLS NOT DISTINCT para que (ingrediente, NULL) sea una sola fila, y las
// lecturas comparan con IS NOT DISTINCT FROM por la misma razón.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para el ledger de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene la fila de stock; si no existe devuelve una fila en cero.
func (r *StockRepo) Get(ctx context.Context, ingredientID string, branchID *string) (*entity.Stock, error) {
	query := `
		SELECT ingredient_id, branch_id, quantity, updated_at
		FROM stock WHERE ingredient_id = $1 AND branch_id IS NOT DISTINCT FROM $2`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, ingredientID, branchID).Scan(
		&s.IngredientID, &s.BranchID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				IngredientID: ingredientID,
				BranchID:     branchID,
				Quantity:     decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// AdjustQuantity suma delta de forma atómica y devuelve la cantidad resultante.
// El upsert-incremento en una sola sentencia elimina la carrera
// read-modify-write: dos ajustes concurrentes sobre la misma clave se
// serializan en el row lock del UPDATE y ninguno se pierde.
func (r *StockRepo) AdjustQuantity(ctx context.Context, ingredientID string, branchID *string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (ingredient_id, branch_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (ingredient_id, branch_id) DO UPDATE
		SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING quantity`
	var result decimal.Decimal
	if err := r.q.QueryRow(ctx, query, ingredientID, branchID, delta).Scan(&result); err != nil {
		return decimal.Zero, fmt.Errorf("adjust stock: %w", err)
	}
	return result, nil
}

// GetForUpdate bloquea la fila de stock dentro de la transacción en curso.
// Si no existe devuelve una fila en cero (sin bloquear nada; el Upsert
// posterior la creará).
func (r *StockRepo) GetForUpdate(ctx context.Context, ingredientID string, branchID *string) (*entity.Stock, error) {
	query := `
		SELECT ingredient_id, branch_id, quantity, updated_at
		FROM stock WHERE ingredient_id = $1 AND branch_id IS NOT DISTINCT FROM $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(ctx, query, ingredientID, branchID).Scan(
		&s.IngredientID, &s.BranchID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{
				IngredientID: ingredientID,
				BranchID:     branchID,
				Quantity:     decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Upsert fija la cantidad absoluta de la fila (ajuste de auditoría).
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.Stock) error {
	if stock.UpdatedAt.IsZero() {
		stock.UpdatedAt = time.Now().UTC()
	}
	query := `
		INSERT INTO stock (ingredient_id, branch_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ingredient_id, branch_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, stock.IngredientID, stock.BranchID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// ListByBranch devuelve todas las filas de stock de la sucursal (nil = bodega central).
func (r *StockRepo) ListByBranch(ctx context.Context, branchID *string) ([]*entity.Stock, error) {
	query := `
		SELECT ingredient_id, branch_id, quantity, updated_at
		FROM stock WHERE branch_id IS NOT DISTINCT FROM $1
		ORDER BY ingredient_id`
	rows, err := r.q.Query(ctx, query, branchID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.IngredientID, &s.BranchID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
