package domain

import "github.com/go-playground/validator/v10"

// RegisterValidators adds the "role" and "leavetype" binding tags.
// Both accept any casing; services still normalize with ParseRole/ParseLeaveType.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, err := ParseRole(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("leavetype", func(fl validator.FieldLevel) bool {
		_, err := ParseLeaveType(fl.Field().String())
		return err == nil
	})
}
