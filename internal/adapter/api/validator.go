package api

import (
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"deyelegliz/internal/domain/entity"
	"deyelegliz/internal/domain/service"
	"deyelegliz/pkg/utils"
)

// CustomValidator plugs go-playground/validator into echo.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func NewValidator() *CustomValidator {
	v := validator.New()

	// Report json or form names so field errors match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return entity.IsCategory(fl.Field().String())
	})
	v.RegisterValidation("phone_digits", func(fl validator.FieldLevel) bool {
		return len(utils.Digits(fl.Field().String())) >= 8
	})
	v.RegisterStructValidation(validateAddress, entity.Address{})

	return &CustomValidator{validator: v}
}

// validateAddress reports each field error from service.ValidateAddress under
// the "address" tag, carrying the message as the param.
func validateAddress(sl validator.StructLevel) {
	a := sl.Current().Interface().(entity.Address)
	errs := service.ValidateAddress(a)

	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		sl.ReportError("", field, field, "address", errs[field])
	}
}
