package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/chronos-ledger/internal/application/dto"
	"github.com/jhoicas/chronos-ledger/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// los mensajes usan el nombre JSON del campo
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parsea el body JSON y aplica las reglas `validate` del DTO.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &domain.ValidationError{Errors: []string{"cuerpo inválido"}}
	}
	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, fmt.Sprintf("%s: regla %s", fe.Field(), fe.Tag()))
			}
			return &domain.ValidationError{Errors: msgs}
		}
		return err
	}
	return nil
}

// pageParams lee limit/offset de la query; valores ausentes o inválidos toman el default de la página.
func pageParams(c *fiber.Ctx) (limit, offset int) {
	var p dto.PageRequest
	_ = c.QueryParser(&p)
	p.DefaultPage()
	return p.Limit, p.Offset
}

// dateParam acepta RFC3339 o YYYY-MM-DD. endOfDay extiende una fecha sin hora hasta el final del día.
func dateParam(c *fiber.Ctx, name string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, &domain.ValidationError{Errors: []string{name + ": fecha inválida (RFC3339 o YYYY-MM-DD)"}}
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
