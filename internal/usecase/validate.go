package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"

	"goal-tracker/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return v
}

// validateStruct returns nil or an error matching entity.ErrValidation that
// carries one error per failed field.
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return multierr.Append(entity.ErrValidation, err)
	}

	combined := entity.ErrValidation
	for _, fe := range fieldErrs {
		combined = multierr.Append(combined, fieldError(fe))
	}
	return combined
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", fe.Field())
	case "min", "gte":
		return fmt.Errorf("%s must be at least %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Errorf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Errorf("%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Errorf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "email":
		return fmt.Errorf("%s must be a valid email", fe.Field())
	case "uuid":
		return fmt.Errorf("%s must be a valid UUID", fe.Field())
	default:
		return fmt.Errorf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

// validateID checks an id taken from a path or query parameter. Every key
// column is a UUID, so malformed ids never reach the database.
func validateID(name, id string) error {
	if id == "" {
		return validationError(name + " is required")
	}
	if err := validate.Var(id, "uuid"); err != nil {
		return validationError(name + " must be a valid UUID")
	}
	return nil
}

// validationError builds a single-message validation failure
func validationError(msg string) error {
	return multierr.Append(entity.ErrValidation, errors.New(msg))
}

// ValidationDetails lists the field messages of a validation error.
func ValidationDetails(err error) []string {
	var details []string
	for _, e := range multierr.Errors(err) {
		if errors.Is(e, entity.ErrValidation) {
			continue
		}
		details = append(details, e.Error())
	}
	return details
}
