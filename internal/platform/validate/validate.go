package validate

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// hhmmRe acepta horas 24h con cero a la izquierda (ej: 07:30, 23:59).
var hhmmRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get devuelve el validador compartido.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New()
	})
	return instance
}

// Struct valida un request struct por tags.
// Devuelve un error con el primer campo inválido, listo para responder 400.
func Struct(v any) error {
	err := Get().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if ok := errorsAs(err, &verrs); ok && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("field %s failed on %s", jsonName(fe.Field()), fe.Tag())
	}
	return err
}

// IsHHMM valida una hora "HH:MM" 24h.
func IsHHMM(s string) bool {
	return hhmmRe.MatchString(s)
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	v, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	*target = v
	return true
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}
