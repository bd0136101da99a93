package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/powerdealer-api/internal/domain"
)

// MaxBodyBytes bounds request bodies.
const MaxBodyBytes = 1 << 20

// Global validator instance for reuse. Field errors are keyed by json name.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrMalformedBody is returned by DecodeJSON for bodies that are not a JSON object.
var ErrMalformedBody = errors.New("malformed JSON body")

// DecodeJSON decodes the request body into v. Unknown fields are ignored.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", ErrMalformedBody)
		}
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

// ValidateRequest validates v's struct tags and returns a
// *domain.ValidationError describing every failing field, or nil.
func ValidateRequest(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError(domain.NonFieldErrorsKey, "Invalid request.")
	}

	verr := &domain.ValidationError{}
	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), validationMessage(fe))
	}
	return verr
}

// validationMessage renders a field error in the wording clients expect.
func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return domain.MsgRequired
	case "email":
		return domain.MsgInvalidEmail
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	default:
		return "Invalid value."
	}
}
