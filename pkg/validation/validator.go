package validation

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator adapts go-playground/validator to the echo.Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func New() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}
