// backend-go/internal/repository/params_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// ParametersRepository stores the manually maintained stocking parameters.
type ParametersRepository interface {
	List(ctx context.Context) ([]domain.StockParameters, error)
	Upsert(ctx context.Context, param domain.StockParameters) error
	ReplaceAll(ctx context.Context, params []domain.StockParameters) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

type parametersRepository struct {
	db *sqlx.DB
	tx txRunner
}

func NewParametersRepository(db *sqlx.DB, tx txRunner) ParametersRepository {
	return &parametersRepository{db: db, tx: tx}
}

func (r *parametersRepository) List(ctx context.Context) ([]domain.StockParameters, error) {
	query := `
        SELECT codigo, centro, descripcion, nombre_tecnico, stock_minimo,
               stock_maximo, lead_time, consumo_mensual, criticidad,
               proveedor, categoria, observaciones
        FROM parametros_stock
        ORDER BY codigo, centro
    `

	var params []domain.StockParameters
	if err := r.db.SelectContext(ctx, &params, query); err != nil {
		return nil, fmt.Errorf("error listing stock parameters: %w", err)
	}

	return params, nil
}

func (r *parametersRepository) Upsert(ctx context.Context, param domain.StockParameters) error {
	query := `
        INSERT INTO parametros_stock (
            codigo, centro, descripcion, nombre_tecnico, stock_minimo,
            stock_maximo, lead_time, consumo_mensual, criticidad,
            proveedor, categoria, observaciones
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        ON CONFLICT (codigo, centro) DO UPDATE SET
            descripcion = EXCLUDED.descripcion,
            nombre_tecnico = EXCLUDED.nombre_tecnico,
            stock_minimo = EXCLUDED.stock_minimo,
            stock_maximo = EXCLUDED.stock_maximo,
            lead_time = EXCLUDED.lead_time,
            consumo_mensual = EXCLUDED.consumo_mensual,
            criticidad = EXCLUDED.criticidad,
            proveedor = EXCLUDED.proveedor,
            categoria = EXCLUDED.categoria,
            observaciones = EXCLUDED.observaciones
    `

	_, err := r.db.ExecContext(ctx, query,
		param.Code, param.Center, param.Description, param.TechnicalName,
		param.MinStock, param.MaxStock, param.LeadTimeDays, param.MonthlyConsumption,
		param.Criticality, param.Supplier, param.Category, param.Observations,
	)
	if err != nil {
		return fmt.Errorf("error upserting parameters for %s/%s: %w", param.Code, param.Center, err)
	}

	return nil
}

// ReplaceAll swaps the whole parameters table for a fresh sheet sync in one
// transaction, so readers never observe a half-synced table.
func (r *parametersRepository) ReplaceAll(ctx context.Context, params []domain.StockParameters) error {
	return r.tx.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM parametros_stock`); err != nil {
			return fmt.Errorf("error clearing parameters: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
            INSERT INTO parametros_stock (
                codigo, centro, descripcion, nombre_tecnico, stock_minimo,
                stock_maximo, lead_time, consumo_mensual, criticidad,
                proveedor, categoria, observaciones
            ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
            ON CONFLICT (codigo, centro) DO UPDATE SET
                stock_minimo = EXCLUDED.stock_minimo,
                stock_maximo = EXCLUDED.stock_maximo,
                lead_time = EXCLUDED.lead_time,
                consumo_mensual = EXCLUDED.consumo_mensual,
                criticidad = EXCLUDED.criticidad,
                proveedor = EXCLUDED.proveedor
        `)
		if err != nil {
			return fmt.Errorf("error preparing parameters insert: %w", err)
		}
		defer stmt.Close()

		for _, param := range params {
			if _, err := stmt.ExecContext(ctx,
				param.Code, param.Center, param.Description, param.TechnicalName,
				param.MinStock, param.MaxStock, param.LeadTimeDays, param.MonthlyConsumption,
				param.Criticality, param.Supplier, param.Category, param.Observations,
			); err != nil {
				return fmt.Errorf("error inserting parameters for %s/%s: %w", param.Code, param.Center, err)
			}
		}

		return nil
	})
}
