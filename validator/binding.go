package validator

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	validator "github.com/go-playground/validator/v10"
)

// RegisterBindings installs custom binding validations on gin's validator
// engine. Called once at startup.
func RegisterBindings() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Dates on the wire use the dd/mm/yyyy layout.
	v.RegisterValidation("rentaldate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("02/01/2006", fl.Field().String())
		return err == nil
	})
}
