package wizard

import (
	"context"
	"reflect"
	"strings"

	"github.com/fekuna/omnipos-storefront/pkg/i18n"
	"github.com/go-playground/validator/v10"
)

// NewValidator returns a validator that reports fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// Translate turns validator errors into localized field messages keyed by path.
func Translate(ctx context.Context, verrs validator.ValidationErrors) FieldErrors {
	langs := i18n.LanguagesFromContext(ctx)
	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		key := fieldPath(fe.Namespace())
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = Message(fe.Tag(), fe.Field(), fe.Param(), langs...)
	}
	return out
}

// Message renders the message for a failed validation tag.
func Message(tag, field, param string, langs ...string) string {
	data := map[string]interface{}{"Field": Humanize(field), "Param": param}
	id := "validation." + tag
	msg := i18n.T(id, data, langs...)
	if msg == id {
		msg = i18n.T("validation.invalid", data, langs...)
	}
	return msg
}

// Humanize turns "full_name" into "Full name".
func Humanize(field string) string {
	s := strings.ReplaceAll(field, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
