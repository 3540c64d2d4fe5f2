// Package validation checks request structs against their `validate` tags
// and reports violations as `field: message` pairs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError is one violated constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error aggregates every violation found in one value
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return strings.Join(parts, ", ")
}

// Messager lets a request type override the default message of a constraint.
// Keys are the field path without slice indexes plus the tag, e.g.
// "cliente.nome.min" or "itens.quantidade.gte".
type Messager interface {
	ValidationMessages() map[string]string
}

var (
	once     sync.Once
	validate *validator.Validate
	indexRe  = regexp.MustCompile(`\[\d+\]`)
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		// Money fields validate as float64 so gt/gte/required apply
		validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
			d, ok := v.Interface().(decimal.Decimal)
			if !ok {
				return nil
			}
			f, _ := d.Float64()
			return f
		}, decimal.Decimal{})
	})
	return validate
}

// Validate returns nil or an *Error describing every violation in v
func Validate(v interface{}) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var overrides map[string]string
	if m, ok := v.(Messager); ok {
		overrides = m.ValidationMessages()
	}

	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		field := fe.Namespace()
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		key := indexRe.ReplaceAllString(field, "") + "." + fe.Tag()
		msg, ok := overrides[key]
		if !ok {
			msg = defaultMessage(fe)
		}
		out.Fields = append(out.Fields, FieldError{Field: field, Message: msg})
	}
	return out
}

// New builds a single-field validation error for checks done outside struct tags
func New(field, message string) *Error {
	return &Error{Fields: []FieldError{{Field: field, Message: message}}}
}

func defaultMessage(fe validator.FieldError) string {
	kind := fe.Kind()
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("deve ter pelo menos %s caracteres", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("deve ter pelo menos %s item(ns)", fe.Param())
		}
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "max":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
		case reflect.Slice, reflect.Array, reflect.Map:
			return fmt.Sprintf("deve ter no máximo %s item(ns)", fe.Param())
		}
		return fmt.Sprintf("deve ser menor ou igual a %s", fe.Param())
	case "gt":
		return fmt.Sprintf("deve ser maior que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("deve ser maior ou igual a %s", fe.Param())
	case "email":
		return "e-mail inválido"
	case "url":
		return "URL inválida"
	case "hexcolor":
		return "cor inválida"
	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", fe.Param())
	default:
		return fmt.Sprintf("inválido (%s)", fe.Tag())
	}
}
