package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// RecipeRepository define el puerto de persistencia para Recipe (DIP).
// Hay a lo sumo una receta por plato (constraint único sobre item_id):
// Upsert reemplaza la receta completa, nunca duplica.
type RecipeRepository interface {
	Upsert(ctx context.Context, recipe *entity.Recipe) error
	// GetByItemID devuelve nil si el plato no tiene receta; no es un error.
	GetByItemID(ctx context.Context, itemID string) (*entity.Recipe, error)
	// GetByItemIDs resuelve recetas en lote, indexadas por item_id.
	// Los platos sin receta no aparecen en el mapa.
	GetByItemIDs(ctx context.Context, itemIDs []string) (map[string]*entity.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Recipe, error)
	Delete(ctx context.Context, itemID string) error
}
