package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct devuelve un mensaje por campo inválido, o nil si s es válido.
func validateStruct(s any) []string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, fieldMessage(fe))
	}
	return details
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", fe.Field())
	case "max":
		return fmt.Sprintf("%s admite como máximo %s caracteres", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s requiere al menos %s caracteres", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s no cumple la regla %s", fe.Field(), fe.Tag())
	}
}
