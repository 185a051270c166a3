package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación del puerto IngredientRepository sobre PostgreSQL (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de persistencia para ingredientes. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste un nuevo ingrediente.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, category, unit, cost_price, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, ing.Category, ing.Unit, ing.CostPrice, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente por ID. Devuelve nil si no existe.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	query := `
		SELECT id, name, category, unit, cost_price, updated_at
		FROM ingredients WHERE id = $1`
	var ing entity.Ingredient
	err := r.q.QueryRow(ctx, query, id).Scan(
		&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &ing.CostPrice, &ing.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &ing, nil
}

// GetByIDs resuelve ingredientes en lote, indexados por ID. Los IDs sin fila no aparecen en el mapa.
func (r *IngredientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	result := make(map[string]*entity.Ingredient, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `
		SELECT id, name, category, unit, cost_price, updated_at
		FROM ingredients WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get ingredients batch: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &ing.CostPrice, &ing.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		result[ing.ID] = &ing
	}
	return result, rows.Err()
}

// List lista ingredientes con paginación, ordenados por nombre.
func (r *IngredientRepo) List(ctx context.Context, limit, offset int) ([]*entity.Ingredient, error) {
	query := `
		SELECT id, name, category, unit, cost_price, updated_at
		FROM ingredients ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Ingredient
	for rows.Next() {
		var ing entity.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Category, &ing.Unit, &ing.CostPrice, &ing.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &ing)
	}
	return list, rows.Err()
}

// Update actualiza un ingrediente existente. La inmutabilidad de la unidad
// cuando el ingrediente está referenciado la impone el caso de uso, no el repo.
func (r *IngredientRepo) Update(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients SET name = $2, category = $3, unit = $4, cost_price = $5, updated_at = $6
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, ing.Category, ing.Unit, ing.CostPrice, ing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un ingrediente por ID.
func (r *IngredientRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Referenced reporta si alguna receta o fila de stock apunta al ingrediente.
// Para recetas se usa containment de jsonb sobre el array de líneas.
func (r *IngredientRepo) Referenced(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM recipes WHERE ingredients @> jsonb_build_array(jsonb_build_object('ingredient_id', $1::text))
		) OR EXISTS (
			SELECT 1 FROM stock WHERE ingredient_id = $1
		)`
	var referenced bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&referenced); err != nil {
		return false, fmt.Errorf("check ingredient references: %w", err)
	}
	return referenced, nil
}
