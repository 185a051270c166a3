package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restaurante-api/internal/application/catalog"
	"github.com/jhoicas/Restaurante-api/internal/application/dto"
	"github.com/jhoicas/Restaurante-api/internal/domain"
	"github.com/jhoicas/Restaurante-api/internal/domain/entity"
)

// CatalogHandler maneja las peticiones HTTP del catálogo: ingredientes y recetas.
type CatalogHandler struct {
	ingredients *catalog.IngredientUseCase
	recipes     *catalog.RecipeUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(ingredients *catalog.IngredientUseCase, recipes *catalog.RecipeUseCase) *CatalogHandler {
	return &CatalogHandler{ingredients: ingredients, recipes: recipes}
}

// CreateIngredient godoc
// @Summary      Crear ingrediente
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IngredientRequest  true  "Datos del ingrediente"
// @Success      201   {object}  dto.IngredientDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients [post]
func (h *CatalogHandler) CreateIngredient(c *fiber.Ctx) error {
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.ingredients.Create(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name, category y unit son requeridos"})
		}
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el ingrediente ya existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(toIngredientDTO(ing))
}

// GetIngredient godoc
// @Summary      Obtener ingrediente por ID
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      200  {object}  dto.IngredientDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [get]
func (h *CatalogHandler) GetIngredient(c *fiber.Ctx) error {
	id := c.Params("id")
	ing, err := h.ingredients.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ingrediente no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toIngredientDTO(ing))
}

// ListIngredients godoc
// @Summary      Listar ingredientes
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.IngredientDTO
// @Router       /api/ingredients [get]
func (h *CatalogHandler) ListIngredients(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	list, err := h.ingredients.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.IngredientDTO, 0, len(list))
	for _, ing := range list {
		out = append(out, toIngredientDTO(ing))
	}
	return c.JSON(out)
}

// UpdateIngredient godoc
// @Summary      Actualizar ingrediente
// @Description  La unidad de medida solo puede cambiar mientras ninguna receta ni
//
//	fila de stock referencie al ingrediente; después es inmutable.
//
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ingrediente"
// @Param        body  body  dto.IngredientRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.IngredientDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [put]
func (h *CatalogHandler) UpdateIngredient(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.IngredientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ing, err := h.ingredients.Update(c.Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ingrediente no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "UNIT_IMMUTABLE", Message: "la unidad no puede cambiar: el ingrediente está referenciado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toIngredientDTO(ing))
}

// DeleteIngredient godoc
// @Summary      Eliminar ingrediente
// @Tags         catalog
// @Produce      json
// @Param        id   path  string  true  "ID del ingrediente"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ingredients/{id} [delete]
func (h *CatalogHandler) DeleteIngredient(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.ingredients.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ingrediente no encontrado"})
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "REFERENCED", Message: "el ingrediente está referenciado por recetas o stock"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SaveRecipe godoc
// @Summary      Guardar receta de un plato
// @Description  Upsert: hay a lo sumo una receta por plato y guardar reemplaza la
//
//	anterior. Cada línea debe usar la unidad del ingrediente.
//
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveRecipeRequest  true  "Receta completa del plato"
// @Success      200   {object}  dto.RecipeDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recipes [put]
func (h *CatalogHandler) SaveRecipe(c *fiber.Ctx) error {
	var in dto.SaveRecipeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.recipes.Save(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "receta inválida: líneas con cantidad positiva y unidad del ingrediente"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "algún ingrediente de la receta no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toRecipeDTO(rec))
}

// GetRecipe godoc
// @Summary      Obtener receta de un plato
// @Tags         catalog
// @Produce      json
// @Param        item_id  path  string  true  "ID del plato"
// @Success      200  {object}  dto.RecipeDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{item_id} [get]
func (h *CatalogHandler) GetRecipe(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	rec, err := h.recipes.Get(c.Context(), itemID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if rec == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el plato no tiene receta"})
	}
	return c.JSON(toRecipeDTO(rec))
}

// ListRecipes godoc
// @Summary      Listar recetas
// @Tags         catalog
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {array}  dto.RecipeDTO
// @Router       /api/recipes [get]
func (h *CatalogHandler) ListRecipes(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	list, err := h.recipes.List(c.Context(), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.RecipeDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, toRecipeDTO(rec))
	}
	return c.JSON(out)
}

// DeleteRecipe godoc
// @Summary      Eliminar receta de un plato
// @Tags         catalog
// @Produce      json
// @Param        item_id  path  string  true  "ID del plato"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{item_id} [delete]
func (h *CatalogHandler) DeleteRecipe(c *fiber.Ctx) error {
	itemID := c.Params("item_id")
	if err := h.recipes.Delete(c.Context(), itemID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el plato no tiene receta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func toIngredientDTO(ing *entity.Ingredient) dto.IngredientDTO {
	return dto.IngredientDTO{
		ID:        ing.ID,
		Name:      ing.Name,
		Category:  ing.Category,
		Unit:      ing.Unit,
		CostPrice: ing.CostPrice,
	}
}

func toRecipeDTO(rec *entity.Recipe) dto.RecipeDTO {
	lines := make([]dto.RecipeIngredientDTO, 0, len(rec.Ingredients))
	for _, line := range rec.Ingredients {
		lines = append(lines, dto.RecipeIngredientDTO{
			IngredientID:   line.IngredientID,
			QuantityNeeded: line.QuantityNeeded,
			Unit:           line.Unit,
		})
	}
	return dto.RecipeDTO{ItemID: rec.ItemID, Ingredients: lines, Notes: rec.Notes}
}
