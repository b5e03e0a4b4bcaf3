package validator

import (
	"context"
	"reflect"
	"time"

	v10validator "github.com/go-playground/validator/v10"
)

type Validator struct {
	engine Engine
}

type Engine interface {
	StructCtx(ctx context.Context, s any) error
	VarCtx(ctx context.Context, field any, tag string) error
}

func New(e Engine) *Validator {
	return &Validator{engine: e}
}

func (v *Validator) Struct(ctx context.Context, s any) error {
	return v.engine.StructCtx(ctx, s)
}

func (v *Validator) Var(ctx context.Context, field any, tag string) error {
	return v.engine.VarCtx(ctx, field, tag)
}

const dayLayout = "2006-01-02"

// DaySlice проверяет, что значение является календарным днем в формате
// YYYY-MM-DD. Используется для параметров выборки событий по дню.
func DaySlice(fl v10validator.FieldLevel) bool {
	val := fl.Field()
	if val.Kind() != reflect.String {
		return false
	}

	day := val.String()
	if len(day) != len(dayLayout) {
		return false
	}

	_, err := time.Parse(dayLayout, day)

	return err == nil
}
