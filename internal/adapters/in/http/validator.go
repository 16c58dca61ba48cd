package http

import (
	"errors"
	"reflect"
	"strings"

	validatorv10 "github.com/go-playground/validator/v10"
)

// RequestValidator plugs go-playground/validator into echo's Context.Validate.
type RequestValidator struct {
	v *validatorv10.Validate
}

// NewRequestValidator returns a validator with the struct-level rules of the request bodies registered.
func NewRequestValidator() *RequestValidator {
	v := validatorv10.New()

	// report fields under their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query"} {
			name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})
	v.RegisterStructValidation(bulkRequestStructValidation, BulkRequest{})

	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

// bulkRequestStructValidation requires the payload field of the chosen operation.
func bulkRequestStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(BulkRequest)

	switch req.Operation {
	case "update_status":
		if req.Status == "" {
			sl.ReportError(req.Status, "status", "Status", "required_for_operation", req.Operation)
		}
	case "update_priority":
		if req.Priority == "" {
			sl.ReportError(req.Priority, "priority", "Priority", "required_for_operation", req.Operation)
		}
	}
}

func validationErrorsToMap(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
	} else {
		out["error"] = err.Error()
	}
	return out
}
