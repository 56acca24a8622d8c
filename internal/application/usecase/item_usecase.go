// Package usecase contiene los casos de uso CRUD de las entidades del
// catálogo. La mutación de stock NO vive aquí: pasa siempre por el Applier
// de movimientos.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/internal/domain/stock"
)

// ItemUseCase casos de uso CRUD para ítems. Quantity solo cambia vía
// movimientos; aquí se fija únicamente la cantidad inicial al crear.
type ItemUseCase struct {
	items     repository.ItemRepository
	movements repository.MovementRepository
	recorder  *audit.Recorder
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(items repository.ItemRepository, movements repository.MovementRepository, recorder *audit.Recorder) *ItemUseCase {
	return &ItemUseCase{items: items, movements: movements, recorder: recorder}
}

// Create crea un ítem. El status se deriva de (quantity, min_quantity);
// cualquier status del caller se ignora.
func (uc *ItemUseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Description:   in.Description,
		Quantity:      in.Quantity,
		MinQuantity:   in.MinQuantity,
		Status:        stock.DeriveStatus(in.Quantity, in.MinQuantity),
		Barcode:       in.Barcode,
		CategoryID:    in.CategoryID,
		SubcategoryID: in.SubcategoryID,
		LocationID:    in.LocationID,
		SupplierID:    in.SupplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, &domain.ValidationError{Field: "unit_price", Reason: "no puede ser negativo"}
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.Quantity < 0 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "no puede ser negativa"}
	}
	if err := uc.items.Create(ctx, item); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionCreate, entity.EntityItem,
		item.ID, item.Name, "ítem creado", nil, item); err != nil {
		return nil, err
	}
	resp := dto.ItemToResponse(item)
	return &resp, nil
}

// GetByID obtiene un ítem por ID.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.ItemToResponse(item)
	return &resp, nil
}

// Update actualiza los campos editables de un ítem. Quantity no se toca;
// si cambia MinQuantity el status se rederiva.
func (uc *ItemUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	old := *item

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, &domain.ValidationError{Field: "unit_price", Reason: "no puede ser negativo"}
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.MinQuantity != nil {
		item.MinQuantity = *in.MinQuantity
	}
	if in.Barcode != nil {
		item.Barcode = *in.Barcode
	}
	if in.CategoryID != nil {
		item.CategoryID = *in.CategoryID
	}
	if in.SubcategoryID != nil {
		item.SubcategoryID = *in.SubcategoryID
	}
	if in.LocationID != nil {
		item.LocationID = *in.LocationID
	}
	if in.SupplierID != nil {
		item.SupplierID = in.SupplierID
	}
	item.Status = stock.DeriveStatus(item.Quantity, item.MinQuantity)
	item.UpdatedAt = time.Now()

	if err := uc.items.Update(ctx, item); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionUpdate, entity.EntityItem,
		item.ID, item.Name, "ítem actualizado", &old, item); err != nil {
		return nil, err
	}
	resp := dto.ItemToResponse(item)
	return &resp, nil
}

// Delete borra un ítem sin movimientos asociados. Con movimientos el borrado
// se bloquea: el historial de stock referencia al ítem.
func (uc *ItemUseCase) Delete(ctx context.Context, userID, id string) error {
	item, err := uc.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	n, err := uc.movements.CountByItem(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ConflictError{Entity: "item", Reason: "tiene movimientos de stock asociados"}
	}
	if err := uc.items.Delete(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, userID, entity.ActionDelete, entity.EntityItem,
		item.ID, item.Name, "ítem borrado", item, nil)
}

// List lista ítems con filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, filter repository.ItemFilter, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	filter.Limit = page.Limit
	filter.Offset = page.Offset
	items, err := uc.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.ItemListResponse{
		Items: dto.ItemsToResponse(items),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}
