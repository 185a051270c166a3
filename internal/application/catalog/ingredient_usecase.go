package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// IngredientUseCase CRUD del catálogo de insumos. El catálogo es dato de
// referencia: el pronóstico y el aplicador de consumo solo lo leen.
type IngredientUseCase struct {
	repo repository.IngredientRepository
}

// NewIngredientUseCase construye el caso de uso.
func NewIngredientUseCase(repo repository.IngredientRepository) *IngredientUseCase {
	return &IngredientUseCase{repo: repo}
}

// Create registra un ingrediente nuevo. El nombre es único.
func (uc *IngredientUseCase) Create(ctx context.Context, in dto.IngredientRequest) (*entity.Ingredient, error) {
	if in.Name == "" || in.Unit == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	ing := &entity.Ingredient{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Category:  in.Category,
		Unit:      in.Unit,
		CostPrice: in.CostPrice,
		UpdatedAt: time.Now(),
	}
	if err := uc.repo.Create(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// Get devuelve un ingrediente por ID.
func (uc *IngredientUseCase) Get(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	return ing, nil
}

// List devuelve los ingredientes paginados.
func (uc *IngredientUseCase) List(ctx context.Context, page dto.PageRequest) ([]*entity.Ingredient, error) {
	page.DefaultPage()
	return uc.repo.List(ctx, page.Limit, page.Offset)
}

// Update modifica nombre, categoría o costo. La unidad de medida es la
// autoridad de toda la aritmética del ingrediente: una vez que una receta o
// una fila de stock lo referencia, cambiarla corrompería las cantidades ya
// registradas, así que se rechaza con ErrConflict.
func (uc *IngredientUseCase) Update(ctx context.Context, id string, in dto.IngredientRequest) (*entity.Ingredient, error) {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}

	if in.Unit != "" && in.Unit != ing.Unit {
		referenced, err := uc.repo.Referenced(ctx, id)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, domain.ErrConflict
		}
		ing.Unit = in.Unit
	}
	if in.Name != "" {
		ing.Name = in.Name
	}
	if in.Category != "" {
		ing.Category = in.Category
	}
	ing.CostPrice = in.CostPrice
	ing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

// Delete elimina un ingrediente sin referencias; referenciado → ErrConflict.
func (uc *IngredientUseCase) Delete(ctx context.Context, id string) error {
	ing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if ing == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.repo.Referenced(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, id)
}
