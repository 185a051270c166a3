package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un insumo de cocina (carne, verdura, especia...).
// La unidad de medida es la autoridad para toda la aritmética de cantidades
// del ingrediente: recetas y stock se expresan siempre en esta unidad.
// Una vez referenciado por una receta o una fila de stock se trata como inmutable.
type Ingredient struct {
	ID        string
	Name      string
	Category  string // Meat, Seafood, Vegetable, Spice, Dry, Drink, Other
	Unit      string // kg, g, liter, ml, pcs, can, bottle, set
	CostPrice decimal.Decimal
	UpdatedAt time.Time
}
