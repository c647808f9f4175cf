package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/dentix/clinic-api/internal/model"
)

// clockTime validates a wire-format "HH:MM" field.
func clockTime(fl validator.FieldLevel) bool {
	_, err := model.ParseClockTime(fl.Field().String())
	return err == nil
}

// Register installs custom rules on gin's binding validator.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("clocktime", clockTime)
}
