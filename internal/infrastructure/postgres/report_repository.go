package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura del Query/Report Surface. Lee sobre el
// pool con la consistencia por defecto (read committed): nunca bloquea a los
// escritores y tolera mutación concurrente del ledger.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// LowStock lista ítems con quantity <= min_quantity, los más bajos primero.
func (r *ReportRepo) LowStock(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE quantity <= min_quantity ORDER BY quantity ASC`
	return r.queryItems(ctx, query, "report.LowStock")
}

// Critical lista ítems con quantity < min_quantity * 0.5 (etiqueta de
// presentación, no se almacena). En entero: quantity * 2 < min_quantity.
func (r *ReportRepo) Critical(ctx context.Context) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items
		WHERE quantity * 2 < min_quantity ORDER BY quantity ASC`
	return r.queryItems(ctx, query, "report.Critical")
}

// Valuation devuelve Σ quantity × unit_price del catálogo completo.
// COALESCE devuelve cero con el catálogo vacío.
func (r *ReportRepo) Valuation(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity * unit_price), 0) FROM items`
	if err := r.pool.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("report.Valuation: %w", err)
	}
	return total, nil
}

// TopItemsByValue devuelve los n ítems con mayor valor en stock.
func (r *ReportRepo) TopItemsByValue(ctx context.Context, n int) ([]repository.ItemValueRow, error) {
	query := `
		SELECT id, name, barcode, quantity, unit_price, quantity * unit_price AS total_value
		FROM items
		ORDER BY total_value DESC
		LIMIT $1`
	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("report.TopItemsByValue: %w", err)
	}
	defer rows.Close()
	var list []repository.ItemValueRow
	for rows.Next() {
		var row repository.ItemValueRow
		if err := rows.Scan(&row.ItemID, &row.Name, &row.Barcode, &row.Quantity,
			&row.UnitPrice, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("report.TopItemsByValue scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// MovementSummary agrega movimientos por tipo, filtrados por rango de fechas,
// ubicación y tipo.
func (r *ReportRepo) MovementSummary(ctx context.Context, filter repository.MovementSummaryFilter) ([]repository.MovementSummaryRow, error) {
	query := `
		SELECT movement_type, COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(total_value), 0)
		FROM stock_movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.From != nil {
		query += fmt.Sprintf(" AND movement_date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND movement_date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND movement_type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	query += " GROUP BY movement_type ORDER BY movement_type"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.MovementSummary: %w", err)
	}
	defer rows.Close()
	var list []repository.MovementSummaryRow
	for rows.Next() {
		var row repository.MovementSummaryRow
		if err := rows.Scan(&row.Type, &row.MovementCount, &row.TotalQuantity, &row.TotalValue); err != nil {
			return nil, fmt.Errorf("report.MovementSummary scan: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Dashboard resume el inventario en una sola consulta.
func (r *ReportRepo) Dashboard(ctx context.Context) (*repository.DashboardSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(quantity), 0),
			COUNT(*) FILTER (WHERE quantity <= min_quantity AND quantity > 0),
			COUNT(*) FILTER (WHERE quantity = 0),
			COALESCE(SUM(quantity * unit_price), 0)
		FROM items`
	var s repository.DashboardSummary
	err := r.pool.QueryRow(ctx, query).Scan(
		&s.TotalItems, &s.TotalQuantity, &s.LowStockCount, &s.OutOfStock, &s.TotalValuation)
	if err != nil {
		return nil, fmt.Errorf("report.Dashboard: %w", err)
	}
	return &s, nil
}

func (r *ReportRepo) queryItems(ctx context.Context, query, op string) ([]*entity.Item, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
