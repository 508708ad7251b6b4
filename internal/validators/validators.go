package validators

import (
	"errors"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/devCaiqueWS/barber-scheduler/internal/domain/schedule"
)

var phoneRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

// Register installs the scheduling tags on v:
//
//	hhmm     "HH:MM", 24h
//	isodate  "YYYY-MM-DD"
//	phone    optional leading +, 8 to 15 digits after NormalizePhone
func Register(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"hhmm":    validateHHMM,
		"isodate": validateISODate,
		"phone":   validatePhone,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}

// RegisterGin installs the tags on gin's binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	return Register(v)
}

func validateHHMM(fl validator.FieldLevel) bool {
	_, err := schedule.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := schedule.ParseDate(fl.Field().String())
	return err == nil
}

func validatePhone(fl validator.FieldLevel) bool {
	return phoneRe.MatchString(NormalizePhone(fl.Field().String()))
}

// NormalizePhone drops spaces, dashes, dots and parentheses.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// FormatFirst turns the first validation failure into a short message.
func FormatFirst(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "malformed request body"
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "hhmm":
		return field + " must be HH:MM"
	case "isodate":
		return field + " must be YYYY-MM-DD"
	case "oneof":
		return field + " must be one of " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min", "max":
		return field + " is out of range"
	}
	return field + " is invalid"
}
