package validators

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func IsEmail(email string) bool {
	return validate.Var(strings.TrimSpace(email), "required,email") == nil
}
