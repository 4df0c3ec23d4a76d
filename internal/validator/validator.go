// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"kakeibo/internal/month"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month_string", validateMonthString)
		_ = v.RegisterValidation("target_kind", validateTargetKind)
	}
}

func validateMonthString(fl validator.FieldLevel) bool {
	_, err := month.Parse(fl.Field().String())
	return err == nil
}

func validateTargetKind(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "category", "savings_goal":
		return true
	}
	return false
}
