package http

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/tu-usuario/stock-control/internal/domain"
)

var validate = validator.New()

// validateStruct corre las reglas `validate` del DTO y convierte el primer
// fallo en un ValidationError de dominio.
func validateStruct(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.ValidationError{
			Field:  fe.Field(),
			Reason: fmt.Sprintf("falla la regla %q", fe.Tag()),
		}
	}
	return &domain.ValidationError{Field: "body", Reason: err.Error()}
}
