package validator

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustom installs the domain formats on gin's binding validator so
// request structs can use them in binding tags.
//
//	hhmm  "HH:MM" time of day, 00:00 .. 23:59
//	crp   psychologist registration number, "XX/XXXXX"
func RegisterCustom() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("unexpected binding validator engine")
	}
	if err := v.RegisterValidation("hhmm", validHHMM); err != nil {
		return err
	}
	return v.RegisterValidation("crp", validCRP)
}

func validHHMM(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 5 || s[2] != ':' {
		return false
	}
	for i, c := range s {
		if i == 2 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	return hour < 24 && minute < 60
}

func validCRP(fl validator.FieldLevel) bool {
	parts := strings.SplitN(fl.Field().String(), "/", 2)
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}
