package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Built-in rule names.
const (
	Required       = "required"
	Email          = "email"
	MinLength      = "minLength"
	MaxLength      = "maxLength"
	Password       = "password"
	PasswordStrong = "passwordStrong"
	Phone          = "phone"
	Name           = "name"
	Alphanumeric   = "alphanumeric"
)

var (
	// EmailPattern is shared with the live email preview.
	EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	phonePattern        = regexp.MustCompile(`^[\+]?[0-9\s\-\(\)]{7,15}$`)
	namePattern         = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]{2,50}$`)
	alphanumericPattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	upperPattern        = regexp.MustCompile(`[A-Z]`)
	lowerPattern        = regexp.MustCompile(`[a-z]`)
	digitPattern        = regexp.MustCompile(`\d`)
)

// Builtins returns the built-in rules in catalog order.
func Builtins() []Rule {
	return []Rule{
		{
			Name:    Required,
			Test:    func(v string, _ Param) bool { return strings.TrimSpace(v) != "" },
			Message: Static("Este campo es obligatorio"),
			Key:     "validation.required",
		},
		{
			Name:    Email,
			Test:    func(v string, _ Param) bool { return EmailPattern.MatchString(v) },
			Message: Static("Ingresa un email válido"),
			Key:     "validation.email",
		},
		{
			Name: MinLength,
			Test: func(v string, p Param) bool {
				return v != "" && p.IsNumber() && float64(length(v)) >= p.Float()
			},
			Message: Formatted(func(p Param) string { return fmt.Sprintf("Mínimo %s caracteres", p) }),
			Key:     "validation.min_length",
		},
		{
			Name: MaxLength,
			Test: func(v string, p Param) bool {
				return v == "" || (p.IsNumber() && float64(length(v)) <= p.Float())
			},
			Message: Formatted(func(p Param) string { return fmt.Sprintf("Máximo %s caracteres", p) }),
			Key:     "validation.max_length",
		},
		{
			Name:    Password,
			Test:    func(v string, _ Param) bool { return length(v) >= 6 },
			Message: Static("La contraseña debe tener al menos 6 caracteres"),
			Key:     "validation.password",
		},
		{
			Name: PasswordStrong,
			Test: func(v string, _ Param) bool {
				return length(v) >= 8 &&
					upperPattern.MatchString(v) &&
					lowerPattern.MatchString(v) &&
					digitPattern.MatchString(v)
			},
			Message: Static("Contraseña débil. Incluye mayúsculas, minúsculas y números"),
			Key:     "validation.password_strong",
		},
		{
			Name:    Phone,
			Test:    func(v string, _ Param) bool { return phonePattern.MatchString(v) },
			Message: Static("Ingresa un teléfono válido"),
			Key:     "validation.phone",
		},
		{
			Name:    Name,
			Test:    func(v string, _ Param) bool { return namePattern.MatchString(strings.TrimSpace(v)) },
			Message: Static("Solo letras y espacios, entre 2 y 50 caracteres"),
			Key:     "validation.name",
		},
		{
			Name:    Alphanumeric,
			Test:    func(v string, _ Param) bool { return alphanumericPattern.MatchString(v) },
			Message: Static("Solo letras, números y guiones bajos (3-20 caracteres)"),
			Key:     "validation.alphanumeric",
		},
	}
}

// length counts characters, not bytes.
func length(s string) int {
	return utf8.RuneCountInString(s)
}
