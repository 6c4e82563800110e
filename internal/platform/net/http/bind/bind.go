// Package bind decodes request bodies and validates them with struct tags
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "bazi/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel for custom tag funcs
type FieldLevel = validator.FieldLevel

// DefaultMaxBytes caps request bodies; a chart request is a few hundred bytes
const DefaultMaxBytes int64 = 64 << 10

type service struct {
	v     *validator.Validate
	trans ut.Translator
}

// short english messages; {0} is the json field name, {1} the tag param
var messages = map[string]string{
	"required": "{0} is required",
	"min":      "{0} must be at least {1}",
	"max":      "{0} must be at most {1}",
	"gt":       "{0} must be greater than {1}",
	"oneof":    "{0} must be one of [{1}]",
	"datetime": "{0} must match the layout {1}",
}

var svc = sync.OnceValue(func() *service {
	loc := en.New()
	trans, _ := ut.New(loc, loc).GetTranslator("en")

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonName)
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	s := &service{v: v, trans: trans}
	for tag, text := range messages {
		_ = s.translate(tag, text)
	}
	return s
})

// jsonName reports the wire name of a field; yaml tags cover file-backed models
func jsonName(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		tag = f.Tag.Get("yaml")
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "":
		return f.Name
	case "-":
		return ""
	}
	return name
}

func (s *service) translate(tag, text string) error {
	return s.v.RegisterTranslation(tag, s.trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return msg
		},
	)
}

// RegisterValidation adds a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return svc().v.RegisterValidation(tag, fn)
}

// RegisterTranslation sets the message for a tag; {0} is the json field name
func RegisterTranslation(tag, text string) error {
	return svc().translate(tag, text)
}

// Struct validates v and returns the first violation as a Validation error
// carrying the offending json field
func Struct(v any) error {
	err := svc().v.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		// InvalidValidationError means v was not a struct
		return perr.Wrap(err, perr.ErrorCodeUnknown, "validator misuse")
	}
	fe := verrs[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(svc().trans)), fieldPath(fe))
}

// fieldPath drops the root type name so nested fields read day_anchor.date
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

// Options controls decoding
type Options struct {
	MaxBytes int64 // <=0 uses DefaultMaxBytes
}

// ParseJSON decodes exactly one JSON object into T with unknown fields
// rejected, then validates it
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero T
	limit := DefaultMaxBytes
	if len(opts) > 0 && opts[0].MaxBytes > 0 {
		limit = opts[0].MaxBytes
	}
	body := http.MaxBytesReader(nil, r.Body, limit)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, decodeError(err, limit)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return zero, perr.JSONErrf("unexpected data after the JSON object")
	}
	if err := Struct(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// decodeError turns encoding/json failures into JSON errors that name the field
// when one is known
func decodeError(err error, limit int64) error {
	var (
		syntax   *json.SyntaxError
		typed    *json.UnmarshalTypeError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return perr.JSONErrf("empty body")
	case errors.Is(err, io.ErrUnexpectedEOF):
		return perr.JSONErrf("truncated JSON")
	case errors.As(err, &tooLarge):
		return perr.JSONErrf("body exceeds %d bytes", limit)
	case errors.As(err, &syntax):
		return perr.JSONErrf("invalid JSON at offset %d", syntax.Offset)
	case errors.As(err, &typed):
		return perr.WithField(perr.JSONErrf("%s must be a JSON %s", typed.Field, jsonKind(typed.Type.Kind())), typed.Field)
	}
	// encoding/json reports unknown fields only as text
	if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
		name = strings.Trim(name, `"`)
		return perr.WithField(perr.JSONErrf("unknown field %s", name), name)
	}
	return perr.JSONErrf("invalid JSON: %v", err)
}

func jsonKind(k reflect.Kind) string {
	switch k {
	case reflect.Bool:
		return "boolean"
	case reflect.String:
		return "string"
	case reflect.Struct, reflect.Map:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	}
	return "number"
}
