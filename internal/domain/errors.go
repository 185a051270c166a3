package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrInvalidStatus = errors.New("transición de estado no permitida")

	// ErrInsufficientStock solo aplica en modo de descuento "hard".
	// En modo "soft" el stock negativo es un resultado válido, nunca un error.
	ErrInsufficientStock = errors.New("stock insuficiente")

	// ErrForecastUnavailable distingue "el pronóstico no se pudo calcular"
	// de "el pronóstico se calculó y resultó vacío" (que no es error).
	ErrForecastUnavailable = errors.New("pronóstico no disponible")
)
