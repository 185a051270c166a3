package catalog

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// RecipeUseCase administra la lista de materiales de cada plato.
// Hay a lo sumo una receta por plato; guardar reemplaza la anterior.
type RecipeUseCase struct {
	recipeRepo     repository.RecipeRepository
	ingredientRepo repository.IngredientRepository
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(recipeRepo repository.RecipeRepository, ingredientRepo repository.IngredientRepository) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, ingredientRepo: ingredientRepo}
}

// Save upserta la receta de un plato. Valida que cada ingrediente exista y
// que la línea use la unidad del ingrediente, que es la autoritativa: una
// receta en gramos contra un stock en kilos rompería todo el cálculo de
// consumo y pronóstico.
func (uc *RecipeUseCase) Save(ctx context.Context, in dto.SaveRecipeRequest) (*entity.Recipe, error) {
	if in.ItemID == "" || len(in.Ingredients) == 0 {
		return nil, domain.ErrInvalidInput
	}

	ids := make([]string, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		if line.IngredientID == "" || !line.QuantityNeeded.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		ids = append(ids, line.IngredientID)
	}
	known, err := uc.ingredientRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]entity.RecipeIngredient, 0, len(in.Ingredients))
	for _, line := range in.Ingredients {
		ing, ok := known[line.IngredientID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if line.Unit != "" && line.Unit != ing.Unit {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, entity.RecipeIngredient{
			IngredientID:   line.IngredientID,
			QuantityNeeded: line.QuantityNeeded,
			Unit:           ing.Unit,
		})
	}

	rec := &entity.Recipe{
		ItemID:      in.ItemID,
		Ingredients: lines,
		Notes:       in.Notes,
		UpdatedAt:   time.Now(),
	}
	if err := uc.recipeRepo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get devuelve la receta de un plato; nil si no tiene (dato ausente válido).
func (uc *RecipeUseCase) Get(ctx context.Context, itemID string) (*entity.Recipe, error) {
	return uc.recipeRepo.GetByItemID(ctx, itemID)
}

// List devuelve las recetas paginadas.
func (uc *RecipeUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Recipe, error) {
	page.DefaultPage()
	return uc.recipeRepo.List(ctx, page.Limit, page.Offset)
}

// Delete elimina la receta de un plato. El plato queda sin receta: a partir
// de ahí sus ventas consumen cero ingredientes.
func (uc *RecipeUseCase) Delete(ctx context.Context, itemID string) error {
	rec, err := uc.recipeRepo.GetByItemID(ctx, itemID)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return uc.recipeRepo.Delete(ctx, itemID)
}
