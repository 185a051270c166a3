package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL (usable con pool o tx).
// Las líneas de la receta viven en una columna jsonb: el upsert de la receta
// completa es una sola sentencia, sin delete+insert por línea.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador de persistencia para recetas. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Upsert crea o reemplaza la receta del plato (una sola fila por item_id).
func (r *RecipeRepo) Upsert(ctx context.Context, recipe *entity.Recipe) error {
	lines, err := json.Marshal(recipe.Ingredients)
	if err != nil {
		return fmt.Errorf("marshal recipe lines: %w", err)
	}
	query := `
		INSERT INTO recipes (item_id, ingredients, notes, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (item_id) DO UPDATE
		SET ingredients = EXCLUDED.ingredients, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at`
	_, err = r.q.Exec(ctx, query, recipe.ItemID, lines, recipe.Notes, recipe.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}
	return nil
}

// GetByItemID obtiene la receta de un plato. Devuelve nil si el plato no tiene receta.
func (r *RecipeRepo) GetByItemID(ctx context.Context, itemID string) (*entity.Recipe, error) {
	query := `
		SELECT item_id, ingredients, notes, updated_at
		FROM recipes WHERE item_id = $1`
	recipe, err := scanRecipe(r.q.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return recipe, nil
}

// GetByItemIDs resuelve recetas en lote, indexadas por item_id. Los platos sin receta no aparecen en el mapa.
func (r *RecipeRepo) GetByItemIDs(ctx context.Context, itemIDs []string) (map[string]*entity.Recipe, error) {
	result := make(map[string]*entity.Recipe, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT item_id, ingredients, notes, updated_at
		FROM recipes WHERE item_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("get recipes batch: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		result[recipe.ItemID] = recipe
	}
	return result, rows.Err()
}

// List lista recetas con paginación, ordenadas por plato.
func (r *RecipeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Recipe, error) {
	query := `
		SELECT item_id, ingredients, notes, updated_at
		FROM recipes ORDER BY item_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, recipe)
	}
	return list, rows.Err()
}

// Delete elimina la receta de un plato.
func (r *RecipeRepo) Delete(ctx context.Context, itemID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM recipes WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanRecipe lee una fila de recipes, deserializando las líneas desde jsonb.
func scanRecipe(row pgx.Row) (*entity.Recipe, error) {
	var recipe entity.Recipe
	var lines []byte
	if err := row.Scan(&recipe.ItemID, &lines, &recipe.Notes, &recipe.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(lines, &recipe.Ingredients); err != nil {
		return nil, fmt.Errorf("unmarshal recipe lines: %w", err)
	}
	return &recipe, nil
}
