package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/jobtracker/internal/common"
	"github.com/dmitrijs2005/jobtracker/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields under their JSON names, which is what callers send.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateInput checks in against its struct tags and converts failures to
// an invalid-input error naming every offending field.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return common.InvalidInput("%v", err)
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return common.InvalidInput("%s", strings.Join(msgs, "; "))
}

// validatePatch applies the create-time rules to the fields a patch sets.
// A JSON null decodes as a set zero value, so it is rejected here for
// required fields.
func validatePatch(p models.ApplicationPatch) error {
	var msgs []string
	required := func(name string, v string, ok bool) {
		if ok {
			if err := validate.Var(v, "required"); err != nil {
				msgs = append(msgs, name+" is required")
			}
		}
	}

	v, ok := p.Role.Get()
	required("role", v, ok)
	v, ok = p.CompanyName.Get()
	required("companyName", v, ok)
	v, ok = p.JobPostLink.Get()
	required("jobPostLink", v, ok)
	if d, ok := p.DateOfApplication.Get(); ok && d.IsZero() {
		msgs = append(msgs, "dateOfApplication is required")
	}

	if len(msgs) > 0 {
		return common.InvalidInput("%s", strings.Join(msgs, "; "))
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "url":
		return field + " must be a valid URL"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
