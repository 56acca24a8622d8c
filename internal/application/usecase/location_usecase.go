package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/stock-control/internal/application/audit"
	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// Codes válidos: A1..F9 para bodegas, OF-n para oficinas.
var (
	storageCodeRe = regexp.MustCompile(`^[A-F][1-9]$`)
	officeCodeRe  = regexp.MustCompile(`^OF-[1-9][0-9]*$`)
)

// LocationUseCase casos de uso de ubicaciones físicas.
type LocationUseCase struct {
	locations repository.LocationRepository
	recorder  *audit.Recorder
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locations repository.LocationRepository, recorder *audit.Recorder) *LocationUseCase {
	return &LocationUseCase{locations: locations, recorder: recorder}
}

// validateCode verifica el code contra la enumeración de su tipo.
func validateCode(code, locType string) error {
	switch locType {
	case entity.LocationTypeStorageRoom:
		if !storageCodeRe.MatchString(code) {
			return &domain.ValidationError{Field: "code", Reason: "bodega requiere code A1..F9"}
		}
	case entity.LocationTypeOffice:
		if !officeCodeRe.MatchString(code) {
			return &domain.ValidationError{Field: "code", Reason: "oficina requiere code OF-n"}
		}
	default:
		return &domain.ValidationError{Field: "location_type", Reason: "tipo desconocido"}
	}
	return nil
}

// deriveBlock deriva el bloque del prefijo del code: "A1" -> "A", "OF-3" -> "OF".
func deriveBlock(code string) string {
	if strings.HasPrefix(code, "OF-") {
		return "OF"
	}
	if code != "" {
		return code[:1]
	}
	return ""
}

// Create crea una ubicación validando el code y derivando el block si falta.
func (uc *LocationUseCase) Create(ctx context.Context, userID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if err := validateCode(in.Code, in.Type); err != nil {
		return nil, err
	}
	block := in.Block
	if block == "" {
		block = deriveBlock(in.Code)
	}
	now := time.Now()
	l := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Code:      in.Code,
		Block:     block,
		Capacity:  in.Capacity,
		Status:    entity.LocationStatusActive,
		Type:      in.Type,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionCreate, entity.EntityLocation,
		l.ID, l.Name, "ubicación creada", nil, l); err != nil {
		return nil, err
	}
	resp := dto.LocationToResponse(l)
	return &resp, nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	l, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.LocationToResponse(l)
	return &resp, nil
}

// Update actualiza una ubicación. Si cambia el code se revalida contra el
// tipo vigente y se rederiva el block.
func (uc *LocationUseCase) Update(ctx context.Context, userID, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	l, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, domain.ErrNotFound
	}
	old := *l
	if in.Type != nil {
		l.Type = *in.Type
	}
	if in.Code != nil {
		if err := validateCode(*in.Code, l.Type); err != nil {
			return nil, err
		}
		l.Code = *in.Code
		l.Block = deriveBlock(l.Code)
	}
	if in.Name != nil {
		l.Name = *in.Name
	}
	if in.Block != nil && *in.Block != "" {
		l.Block = *in.Block
	}
	if in.Capacity != nil {
		l.Capacity = *in.Capacity
	}
	if in.Status != nil {
		l.Status = *in.Status
	}
	l.UpdatedAt = time.Now()
	if err := uc.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	if err := uc.recorder.Record(ctx, userID, entity.ActionUpdate, entity.EntityLocation,
		l.ID, l.Name, "ubicación actualizada", &old, l); err != nil {
		return nil, err
	}
	resp := dto.LocationToResponse(l)
	return &resp, nil
}

// Delete borra una ubicación.
func (uc *LocationUseCase) Delete(ctx context.Context, userID, id string) error {
	l, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return domain.ErrNotFound
	}
	if err := uc.locations.Delete(ctx, id); err != nil {
		return err
	}
	return uc.recorder.Record(ctx, userID, entity.ActionDelete, entity.EntityLocation,
		l.ID, l.Name, "ubicación borrada", l, nil)
}

// List lista todas las ubicaciones.
func (uc *LocationUseCase) List(ctx context.Context) ([]dto.LocationResponse, error) {
	list, err := uc.locations.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.LocationToResponse(l))
	}
	return out, nil
}

// Utilization devuelve la utilización read-side de cada ubicación.
func (uc *LocationUseCase) Utilization(ctx context.Context) ([]dto.LocationUtilizationResponse, error) {
	rows, err := uc.locations.Utilization(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationUtilizationResponse, 0, len(rows))
	for _, r := range rows {
		u := dto.LocationUtilizationResponse{
			LocationID: r.LocationID,
			ItemCount:  r.ItemCount,
			Capacity:   r.Capacity,
		}
		if r.Capacity > 0 {
			u.Percent = float64(r.ItemCount) / float64(r.Capacity) * 100
		}
		out = append(out, u)
	}
	return out, nil
}
