package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/camelcase/task-api/internal/domain"
)

// validate is shared by every request; validator caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// task_status accepts any case-insensitive status name.
	_ = v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseTaskStatus(fl.Field().String())
		return err == nil
	})

	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// ValidateRequest validates the given struct. A type with its own
// Validate method is trusted to do so; otherwise struct tags apply.
func ValidateRequest(v interface{}) error {
	if custom, ok := v.(interface{ Validate() error }); ok {
		return custom.Validate()
	}
	return validate.Struct(v)
}

// ValidationDetails turns a validator or domain validation error into
// "field: message" strings. Other errors yield a single generic entry.
func ValidationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s: %s", fe.Field(), tagMessage(fe)))
		}
		return details
	}

	var derrs domain.ValidationErrors
	if errors.As(err, &derrs) {
		return derrs.Details()
	}

	return []string{"invalid request"}
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "task_status":
		return "must be one of " + domain.StatusChoices()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	default:
		return "is invalid"
	}
}
