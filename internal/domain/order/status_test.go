package order_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Restaurante-api/internal/domain/order"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados del pedido: transiciones permitidas y efectos de inventario.
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_FlujoNormal(t *testing.T) {
	assert.True(t, order.CanTransition(order.StatusPlaced, order.StatusCommitted))
	assert.True(t, order.CanTransition(order.StatusCommitted, order.StatusServed))
	assert.True(t, order.CanTransition(order.StatusServed, order.StatusCancelled), "reembolso post-entrega permitido")
}

func TestCanTransition_Cancelaciones(t *testing.T) {
	assert.True(t, order.CanTransition(order.StatusPlaced, order.StatusCancelled))
	assert.True(t, order.CanTransition(order.StatusCommitted, order.StatusCancelled))
}

func TestCanTransition_Prohibidas(t *testing.T) {
	// No se puede saltar el commit ni resucitar un pedido cancelado.
	assert.False(t, order.CanTransition(order.StatusPlaced, order.StatusServed))
	assert.False(t, order.CanTransition(order.StatusCancelled, order.StatusPlaced))
	assert.False(t, order.CanTransition(order.StatusCancelled, order.StatusCommitted))
	assert.False(t, order.CanTransition(order.StatusServed, order.StatusCommitted))
}

func TestCanTransition_ReintentoMismoEstado(t *testing.T) {
	// Los reintentos del colaborador de ciclo de vida repiten la transición:
	// el mismo estado siempre se acepta (y su efecto es nulo).
	for _, s := range []order.Status{order.StatusPlaced, order.StatusCommitted, order.StatusServed, order.StatusCancelled} {
		assert.True(t, order.CanTransition(s, s), "reintento a %s debe aceptarse", s)
		assert.Equal(t, order.EffectNone, order.TransitionEffect(s, s))
	}
}

func TestCanTransition_EstadoDesconocido(t *testing.T) {
	assert.False(t, order.CanTransition(order.Status("Pending"), order.StatusCommitted))
	assert.False(t, order.CanTransition(order.StatusPlaced, order.Status("Delivered")))
}

func TestTransitionEffect_Commit(t *testing.T) {
	assert.Equal(t, order.EffectCommit, order.TransitionEffect(order.StatusPlaced, order.StatusCommitted))
}

func TestTransitionEffect_Reversion(t *testing.T) {
	assert.Equal(t, order.EffectReverse, order.TransitionEffect(order.StatusCommitted, order.StatusCancelled))
	assert.Equal(t, order.EffectReverse, order.TransitionEffect(order.StatusServed, order.StatusCancelled))
}

func TestTransitionEffect_CancelarSinCommitNoRevierte(t *testing.T) {
	// Un pedido Placed nunca descontó stock: cancelarlo no debe revertir nada.
	assert.Equal(t, order.EffectNone, order.TransitionEffect(order.StatusPlaced, order.StatusCancelled))
}

func TestTransitionEffect_ServirNoDescuentaDeNuevo(t *testing.T) {
	// El consumo se aplica al comprometer; servir no repite el descuento.
	assert.Equal(t, order.EffectNone, order.TransitionEffect(order.StatusCommitted, order.StatusServed))
}

func TestIsFulfilled(t *testing.T) {
	assert.True(t, order.StatusServed.IsFulfilled())
	assert.False(t, order.StatusCommitted.IsFulfilled())
	assert.False(t, order.StatusCancelled.IsFulfilled())
}
