// Package audit construye y registra entradas del log de actividad.
// Cada operación mutante sobre una entidad in-scope produce exactamente una
// entrada; si el insert de auditoría falla, la operación padre también falla.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
)

// NewEntry construye una entrada de ActivityLog serializando los snapshots
// old/new a JSON. oldV/newV pueden ser nil (CREATE no tiene old, DELETE no
// tiene new).
func NewEntry(userID, action, entityType, entityID, entityName, description string, oldV, newV any) (*entity.ActivityLog, error) {
	e := &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      userID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		EntityName:  entityName,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if oldV != nil {
		b, err := json.Marshal(oldV)
		if err != nil {
			return nil, fmt.Errorf("serializar old_values: %w", err)
		}
		e.OldValues = b
	}
	if newV != nil {
		b, err := json.Marshal(newV)
		if err != nil {
			return nil, fmt.Errorf("serializar new_values: %w", err)
		}
		e.NewValues = b
	}
	return e, nil
}

// Recorder registra entradas contra un repositorio concreto. Lo usan los
// casos de uso CRUD que no pasan por el TxRunner del Applier.
type Recorder struct {
	logs repository.ActivityLogRepository
}

// NewRecorder construye el recorder.
func NewRecorder(logs repository.ActivityLogRepository) *Recorder {
	return &Recorder{logs: logs}
}

// Record construye la entrada y la persiste. El error se propaga al caller:
// la auditoría nunca falla en silencio.
func (r *Recorder) Record(ctx context.Context, userID, action, entityType, entityID, entityName, description string, oldV, newV any) error {
	e, err := NewEntry(userID, action, entityType, entityID, entityName, description, oldV, newV)
	if err != nil {
		return err
	}
	return r.logs.Create(ctx, e)
}
