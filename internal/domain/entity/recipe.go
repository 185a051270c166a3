package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredient una línea de la receta: cuánto ingrediente consume una unidad del plato.
type RecipeIngredient struct {
	IngredientID   string          `json:"ingredient_id"`
	QuantityNeeded decimal.Decimal `json:"quantity_needed"` // en la unidad del ingrediente
	Unit           string          `json:"unit"`
}

// Recipe lista de materiales de un plato vendible: qué ingredientes y en qué
// cantidad consume cada unidad vendida. Existe a lo sumo una receta por plato
// (constraint único sobre item_id). Un plato sin receta consume cero
// ingredientes; eso es política explícita, no un error.
type Recipe struct {
	ItemID      string
	Ingredients []RecipeIngredient
	Notes       string
	UpdatedAt   time.Time
}
