package api

import (
	"github.com/go-playground/validator/v10"

	"swapskillz/pkg/utils"
)

// CustomValidator adapts validator/v10 to echo.Validator.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	_ = v.RegisterValidation("password", validatePassword)
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func validatePassword(fl validator.FieldLevel) bool {
	return utils.IsStrongPassword(fl.Field().String())
}
