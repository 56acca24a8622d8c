package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, code, contact_name, email, phone, address,
		credit_limit, status, created_at, updated_at`

// Create persiste un proveedor. Code duplicado sale como Conflict (23505).
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `INSERT INTO suppliers (id, name, code, contact_name, email, phone, address,
			credit_limit, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Code, s.ContactName, s.Email, s.Phone,
		s.Address, s.CreditLimit, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "supplier", Reason: "el código ya existe"}
		}
		return fmt.Errorf("create supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID. Devuelve (nil, nil) si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	var s entity.Supplier
	err := r.q.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Code, &s.ContactName,
		&s.Email, &s.Phone, &s.Address, &s.CreditLimit, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return &s, nil
}

// Update sobreescribe los campos del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `UPDATE suppliers SET name = $2, code = $3, contact_name = $4, email = $5,
		phone = $6, address = $7, credit_limit = $8, status = $9, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Code, s.ContactName, s.Email,
		s.Phone, s.Address, s.CreditLimit, s.Status)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.ConflictError{Entity: "supplier", Reason: "el código ya existe"}
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra un proveedor. El guard de asociaciones vivas lo aplica el caso
// de uso con Associations antes de llamar aquí.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los proveedores ordenados por nombre.
func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.ContactName, &s.Email, &s.Phone,
			&s.Address, &s.CreditLimit, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Associations cuenta ítems y movimientos que referencian al proveedor.
func (r *SupplierRepo) Associations(ctx context.Context, id string) (repository.SupplierAssociations, error) {
	var a repository.SupplierAssociations
	query := `
		SELECT
			(SELECT COUNT(*) FROM items WHERE supplier_id = $1),
			(SELECT COUNT(*) FROM stock_movements WHERE supplier_id = $1)`
	if err := r.q.QueryRow(ctx, query, id).Scan(&a.ItemsCount, &a.MovementsCount); err != nil {
		return a, fmt.Errorf("supplier associations: %w", err)
	}
	return a, nil
}
