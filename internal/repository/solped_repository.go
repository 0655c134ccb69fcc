// backend-go/internal/repository/solped_repository.go
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

// SolpedRepository stores the purchase-request history.
type SolpedRepository interface {
	InsertLines(ctx context.Context, lines []domain.SolpedLine) error
	List(ctx context.Context, filter domain.SolpedFilter) ([]domain.SolpedLine, error)
	NextSequence(ctx context.Context, year int) (int, error)
	UpdateState(ctx context.Context, number string, state domain.SolpedState) (int64, error)
	Summary(ctx context.Context) (domain.SolpedSummary, error)
}

type solpedRepository struct {
	db *sqlx.DB
}

func NewSolpedRepository(db *sqlx.DB) SolpedRepository {
	return &solpedRepository{db: db}
}

func (r *solpedRepository) InsertLines(ctx context.Context, lines []domain.SolpedLine) error {
	query := `
        INSERT INTO solped_lineas (
            solped_numero, fecha, codigo, descripcion, nombre_tecnico,
            centro, centro_nombre, cantidad_solicitada, unidad,
            precio_unitario, valor_total, criticidad, proveedor,
            solicitado_por, estado, notas
        ) VALUES (
            :solped_numero, :fecha, :codigo, :descripcion, :nombre_tecnico,
            :centro, :centro_nombre, :cantidad_solicitada, :unidad,
            :precio_unitario, :valor_total, :criticidad, :proveedor,
            :solicitado_por, :estado, :notas
        )
    `

	if _, err := r.db.NamedExecContext(ctx, query, lines); err != nil {
		return fmt.Errorf("error inserting solped lines: %w", err)
	}
	return nil
}

func (r *solpedRepository) List(ctx context.Context, filter domain.SolpedFilter) ([]domain.SolpedLine, error) {
	query := `
        SELECT solped_numero, fecha, codigo, descripcion, nombre_tecnico,
               centro, centro_nombre, cantidad_solicitada, unidad,
               precio_unitario, valor_total, criticidad, proveedor,
               solicitado_por, estado, notas
        FROM solped_lineas
        WHERE 1=1
    `

	var args []interface{}
	var conditions []string
	argCounter := 1

	if filter.Number != "" {
		conditions = append(conditions, fmt.Sprintf("solped_numero = $%d", argCounter))
		args = append(args, filter.Number)
		argCounter++
	}
	if filter.State != "" {
		conditions = append(conditions, fmt.Sprintf("estado = $%d", argCounter))
		args = append(args, strings.ToUpper(strings.TrimSpace(filter.State)))
		argCounter++
	}
	if filter.Center != "" {
		conditions = append(conditions, fmt.Sprintf("centro = $%d", argCounter))
		args = append(args, filter.Center)
		argCounter++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY solped_numero DESC, codigo"

	var lines []domain.SolpedLine
	if err := r.db.SelectContext(ctx, &lines, query, args...); err != nil {
		return nil, fmt.Errorf("error listing solped lines: %w", err)
	}

	return lines, nil
}

// NextSequence returns the next sequential number within a year, continuing
// the stored history.
func (r *solpedRepository) NextSequence(ctx context.Context, year int) (int, error) {
	query := `
        SELECT COALESCE(MAX(CAST(split_part(solped_numero, '-', 3) AS INTEGER)), 0) + 1
        FROM solped_lineas
        WHERE split_part(solped_numero, '-', 2) = $1
    `

	var next int
	if err := r.db.GetContext(ctx, &next, query, fmt.Sprintf("%d", year)); err != nil {
		return 0, fmt.Errorf("error computing next solped sequence: %w", err)
	}

	return next, nil
}

func (r *solpedRepository) UpdateState(ctx context.Context, number string, state domain.SolpedState) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE solped_lineas SET estado = $1 WHERE solped_numero = $2`,
		string(state), number,
	)
	if err != nil {
		return 0, fmt.Errorf("error updating solped state: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return affected, nil
}

func (r *solpedRepository) Summary(ctx context.Context) (domain.SolpedSummary, error) {
	query := `
        SELECT COUNT(DISTINCT solped_numero) AS total_solpeds,
               COUNT(*) AS total_items,
               COALESCE(SUM(valor_total), 0) AS valor_total,
               COUNT(*) FILTER (WHERE estado = 'PENDIENTE') AS pendientes
        FROM solped_lineas
    `

	var summary domain.SolpedSummary
	row := r.db.QueryRowxContext(ctx, query)
	if err := row.Scan(&summary.TotalRequests, &summary.TotalItems, &summary.TotalValue, &summary.Pending); err != nil {
		return summary, fmt.Errorf("error summarizing solped history: %w", err)
	}

	return summary, nil
}
