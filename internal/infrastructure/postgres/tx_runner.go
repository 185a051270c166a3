package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Restaurante-api/internal/application/consumption"
	"github.com/jhoicas/Restaurante-api/internal/application/ledger"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
)

// TxRunner ejecuta funciones dentro de una transacción de PostgreSQL,
// entregando repositorios ligados a la transacción (mismo tx, mismo lock scope).
type TxRunner struct {
	pool *pgxpool.Pool
}

var _ consumption.TxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// NewTxRunner crea un TxRunner sobre el pool dado.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con repositorios de pedidos, stock y movimientos sobre una misma transacción.
// Si fn devuelve error la transacción se revierte completa.
func (r *TxRunner) Run(ctx context.Context, fn func(orders repository.OrderRepository, stock repository.StockRepository, movements repository.StockMovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewOrderRepository(tx), NewStockRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// RunLedger ejecuta fn con repositorios de stock y movimientos sobre una misma transacción.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(stock repository.StockRepository, movements repository.StockMovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(NewStockRepository(tx), NewStockMovementRepository(tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
