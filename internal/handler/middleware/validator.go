package middleware

import (
	"slot-booking/internal/domain/slot"
	"slot-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the "slotid" tag to gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errs.New("gin binding validator is not go-playground/validator")
	}
	return v.RegisterValidation("slotid", func(fl validator.FieldLevel) bool {
		return slot.IsValidID(fl.Field().String())
	})
}
