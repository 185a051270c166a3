package repository

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient (DIP).
// Las lecturas son consultas del catálogo: la ausencia se expresa como nil, no como error.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetByIDs devuelve los ingredientes existentes del lote, indexados por ID.
	// Los IDs sin ingrediente simplemente no aparecen en el mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Ingredient, error)
	Update(ctx context.Context, ingredient *entity.Ingredient) error
	Delete(ctx context.Context, id string) error
	// Referenced reporta si alguna receta o fila de stock apunta al
	// ingrediente. Un ingrediente referenciado tiene unidad inmutable y no
	// puede borrarse.
	Referenced(ctx context.Context, id string) (bool, error)
}
