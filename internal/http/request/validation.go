package request

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/aryanrai97861/End-to-End-customer-onboarding-workflow/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// bcrypt rejects passwords longer than this many bytes.
const maxPasswordBytes = 72

var gstinRegex = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z]{1}[1-9A-Z]{1}Z[0-9A-Z]{1}$`)

// MsgInvalidBody is returned when the body is not decodable JSON.
const MsgInvalidBody = "Invalid request body"

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return gstinRegex.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("customertype", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseCustomerType(fl.Field().String())
		return ok
	})
	validate.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= maxPasswordBytes
	})
}

// FieldError is one failed rule. Message comes from the field's `msg_<rule>`
// tag, then its `msg` tag.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// FieldErrors lists failures in field declaration order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	return fe[0].Message
}

// Validate returns nil when v satisfies its rules, FieldErrors otherwise.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	out := make(FieldErrors, 0, len(ves))
	for _, fe := range ves {
		msg := fe.Field() + " is invalid"
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if m := sf.Tag.Get("msg_" + fe.Tag()); m != "" {
				msg = m
			} else if m := sf.Tag.Get("msg"); m != "" {
				msg = m
			}
		}
		out = append(out, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
	}
	return out
}

// normalizer is implemented by bodies that clean up input before validation.
type normalizer interface {
	Normalize()
}

// Decode binds the JSON body into v (path and query params are not mixed in),
// normalizes and validates it.
func Decode(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return FieldErrors{{Rule: "json", Message: MsgInvalidBody}}
	}
	if n, ok := v.(normalizer); ok {
		n.Normalize()
	}
	return Validate(v)
}
