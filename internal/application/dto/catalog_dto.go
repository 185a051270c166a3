package dto

import "github.com/shopspring/decimal"

// IngredientRequest body para crear/actualizar un ingrediente.
type IngredientRequest struct {
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// IngredientDTO representación HTTP de un ingrediente.
type IngredientDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// RecipeIngredientDTO una línea de receta.
type RecipeIngredientDTO struct {
	IngredientID   string          `json:"ingredient_id"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"`
	Unit           string          `json:"unit"`
}

// SaveRecipeRequest body para upsert de receta (una por plato).
type SaveRecipeRequest struct {
	ItemID      string                `json:"item_id"`
	Ingredients []RecipeIngredientDTO `json:"ingredients"`
	Notes       string                `json:"notes,omitempty"`
}

// RecipeDTO representación HTTP de una receta.
type RecipeDTO struct {
	ItemID      string                `json:"item_id"`
	Ingredients []RecipeIngredientDTO `json:"ingredients"`
	Notes       string                `json:"notes,omitempty"`
}
