package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/pkg/textutil"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
// Mantiene name_normalized (minúsculas sin acentos) para la búsqueda del catálogo.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de ítems. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, name, description, quantity, unit_price, min_quantity, status,
		barcode, category_id, subcategory_id, location_id, supplier_id, created_at, updated_at`

// Create persiste un ítem nuevo. Barcode duplicado sale como Conflict.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, name_normalized, description, quantity, unit_price, min_quantity,
			status, barcode, category_id, subcategory_id, location_id, supplier_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, textutil.Fold(item.Name), item.Description, item.Quantity,
		item.UnitPrice, item.MinQuantity, item.Status, item.Barcode,
		item.CategoryID, item.SubcategoryID, item.LocationID, item.SupplierID,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "item", Reason: "el barcode ya existe"}
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID obtiene un ítem por ID. Devuelve (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item")
}

// GetForUpdate obtiene el ítem y bloquea la fila (SELECT FOR UPDATE).
// Serializa movimientos concurrentes sobre el mismo ítem; la espera la acota
// el lock_timeout fijado por el TxRunner.
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get item for update")
}

// Update sobreescribe los campos editables del ítem (no cantidad/status: eso
// es del Applier vía SetQuantityStatus).
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items SET name = $2, name_normalized = $3, description = $4, unit_price = $5,
			min_quantity = $6, barcode = $7, category_id = $8, subcategory_id = $9,
			location_id = $10, supplier_id = $11, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, textutil.Fold(item.Name), item.Description, item.UnitPrice,
		item.MinQuantity, item.Barcode, item.CategoryID, item.SubcategoryID,
		item.LocationID, item.SupplierID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "item", Reason: "el barcode ya existe"}
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SetQuantityStatus escribe el nuevo on-hand y el status derivado. Solo lo
// invoca el Applier dentro de su transacción.
func (r *ItemRepo) SetQuantityStatus(ctx context.Context, id string, quantity int, status string) error {
	query := `UPDATE items SET quantity = $2, status = $3, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, quantity, status)
	if err != nil {
		return fmt.Errorf("set item quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un ítem. El guard referencial (ítem con movimientos) lo aplica
// el caso de uso antes de llegar aquí; la FK lo respalda por si acaso.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista ítems con filtros opcionales. La búsqueda compara contra
// name_normalized y barcode, sin acentos ni mayúsculas.
func (r *ItemRepo) List(ctx context.Context, filter repository.ItemFilter) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (name_normalized LIKE $%d OR barcode LIKE $%d)", pos, pos)
		args = append(args, "%"+textutil.Fold(filter.Search)+"%")
		pos++
	}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND category_id = $%d", pos)
		args = append(args, filter.CategoryID)
		pos++
	}
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, filter.Status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *ItemRepo) scanOne(row pgx.Row, op string) (*entity.Item, error) {
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var i entity.Item
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.Quantity, &i.UnitPrice, &i.MinQuantity,
		&i.Status, &i.Barcode, &i.CategoryID, &i.SubcategoryID, &i.LocationID,
		&i.SupplierID, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
