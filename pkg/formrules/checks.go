package formrules

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// HousingTypes are the accepted values of the adoption form's vivienda field.
var HousingTypes = []any{"casa", "apartamento", "finca", "otro"}

// check runs the business rules of a preset. It is called only when every
// field passed its rule chain.
func (v *Validator) check(ctx context.Context, preset, lang string, res *Result) error {
	switch preset {
	case Adoption:
		msg := v.translate(lang, "validation.housing_type", "Tipo de vivienda no válido")
		rule := validation.In(HousingTypes...).Error(msg)
		if err := validation.Validate(res.Data["vivienda"], validation.Required.Error(msg), rule); err != nil {
			res.AddError("vivienda", err.Error())
			res.failed = append(res.failed, "housing_type")
		}
	case Registration:
		email := res.Data["email"]
		if v.emails == nil || email == "" {
			return nil
		}
		taken, err := v.emails.Exists(ctx, email)
		if err != nil {
			return fmt.Errorf("checking email uniqueness: %w", err)
		}
		if taken {
			res.AddError("email", v.translate(lang, "validation.email_taken", "Este email ya está registrado"))
			res.failed = append(res.failed, "email_taken")
		}
	}
	return nil
}

// ErrEmailTaken is returned by EmailRegistry.Register for a known address.
var ErrEmailTaken = errors.New("email already registered")

// EmailRegistry records the addresses of registered accounts. Implementations
// compare addresses case-insensitively.
type EmailRegistry interface {
	Exists(ctx context.Context, email string) (bool, error)
	Register(ctx context.Context, email string) error
}
