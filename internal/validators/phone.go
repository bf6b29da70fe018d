package validators

import "strings"

// NormalizePhone drops formatting characters and keeps digits only.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsPhone accepts 8 to 15 digits once formatting is removed.
func IsPhone(phone string) bool {
	return validate.Var(NormalizePhone(phone), "required,numeric,min=8,max=15") == nil
}
