package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"planboard/internal/model"
)

// RegisterValidators adds the custom binding tags used by request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("isodate", validateISODate)
}

// isodate accepts YYYY-MM-DD; an empty string is left to omitempty.
func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := model.ParseDate(s)
	return err == nil
}
