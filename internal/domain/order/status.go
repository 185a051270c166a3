// Package order define el ciclo de vida de un pedido como máquina de estados
// explícita. Los efectos de inventario (descuento y reversión) se derivan de
// la transición, nunca de comparaciones sueltas de strings de estado; así la
// invariante de reversión idempotente queda verificable mecánicamente.
package order

// Status estado del ciclo de vida de un pedido.
type Status string

const (
	StatusPlaced    Status = "Placed"    // recibido, aún sin efectos de inventario
	StatusCommitted Status = "Committed" // aceptado para preparación: descuenta ingredientes
	StatusServed    Status = "Served"    // entregado; único estado terminal de cumplimiento
	StatusCancelled Status = "Cancelled" // cancelado; revierte el consumo si lo hubo
)

// Effect efecto de inventario que dispara una transición.
type Effect int

const (
	EffectNone    Effect = iota
	EffectCommit         // aplicar consumo de ingredientes según recetas
	EffectReverse        // aplicar la negación exacta del consumo registrado
)

// transitions transiciones permitidas hacia adelante.
var transitions = map[Status][]Status{
	StatusPlaced:    {StatusCommitted, StatusCancelled},
	StatusCommitted: {StatusServed, StatusCancelled},
	StatusServed:    {StatusCancelled}, // reembolso post-entrega
	StatusCancelled: {},
}

// Valid reporta si s es un estado conocido.
func (s Status) Valid() bool {
	switch s {
	case StatusPlaced, StatusCommitted, StatusServed, StatusCancelled:
		return true
	}
	return false
}

// IsFulfilled reporta si el pedido cuenta para la demanda histórica.
// Solo los pedidos que llegaron a Served entran al agregador.
func (s Status) IsFulfilled() bool {
	return s == StatusServed
}

// CanTransition reporta si la transición from → to está permitida.
// La transición a sí mismo siempre se permite: los reintentos del
// colaborador de ciclo de vida deben ser inocuos.
func CanTransition(from, to Status) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionEffect devuelve el efecto de inventario de una transición permitida.
// La reversión solo se dispara al entrar a Cancelled desde un estado que ya
// comprometió consumo; cancelar un pedido Placed no tiene nada que revertir.
func TransitionEffect(from, to Status) Effect {
	if from == to {
		return EffectNone
	}
	switch {
	case to == StatusCommitted:
		return EffectCommit
	case to == StatusCancelled && (from == StatusCommitted || from == StatusServed):
		return EffectReverse
	}
	return EffectNone
}
