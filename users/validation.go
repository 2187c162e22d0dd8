package users

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/jrsteele09/schoolgest-client/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return Role(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks a request DTO before it is sent. Failures wrap ErrValidation
// and list each offending field.
func Validate(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !apperrors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: champ obligatoire", fe.Field())
	case "min":
		return fmt.Sprintf("%s: au moins %s caractères", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%s: adresse email invalide", fe.Field())
	case "eqfield":
		return fmt.Sprintf("%s: les mots de passe ne correspondent pas", fe.Field())
	case "gt", "gte", "lte", "ltefield":
		return fmt.Sprintf("%s: valeur hors limites", fe.Field())
	case "role", "oneof":
		return fmt.Sprintf("%s: valeur non autorisée", fe.Field())
	default:
		return fmt.Sprintf("%s: invalide (%s)", fe.Field(), fe.Tag())
	}
}
