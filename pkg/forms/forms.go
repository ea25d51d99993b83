// Package forms validates incoming JSON payloads before create/update
// handlers run. A Form is declared once from a struct whose validate tags
// carry the field rules; its middleware parses the body, runs full
// validation on POST/PUT and partial validation on PATCH, and answers 422
// with a field-to-reason error map when the payload does not conform.
package forms

import (
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/halgorm/halgorm/pkg/halerrors"
)

const (
	payloadKey = "halgorm.form.payload"
	cleanKey   = "halgorm.form.clean"
)

type fieldInfo struct {
	structName string
	jsonName   string
	typ        reflect.Type
	rules      string
}

// Form validates request payloads against the declared model struct.
type Form struct {
	validate *validator.Validate
	model    reflect.Type
	fields   []fieldInfo
}

// New declares a form from a model struct (value or pointer). Field rules
// come from validate tags; wire names come from json tags.
func New(model any) *Form {
	typ := reflect.TypeOf(model)
	for typ != nil && typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ == nil || typ.Kind() != reflect.Struct {
		panic("forms: model must be a struct")
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	f := &Form{validate: v, model: typ}
	for i := 0; i < typ.NumField(); i++ {
		fld := typ.Field(i)
		if !fld.IsExported() {
			continue
		}
		jsonName := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if jsonName == "-" {
			continue
		}
		if jsonName == "" {
			jsonName = fld.Name
		}
		f.fields = append(f.fields, fieldInfo{
			structName: fld.Name,
			jsonName:   jsonName,
			typ:        fld.Type,
			rules:      fld.Tag.Get("validate"),
		})
	}
	return f
}

// Validated returns middleware that admits only payloads passing the form
// rules. The parsed payload and its sanitized field map are stored on the
// context for the downstream handler.
func (f *Form) Validated() gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			halerrors.BadRequest(c, "could not read request body")
			return
		}

		var present map[string]json.RawMessage
		if err := json.Unmarshal(data, &present); err != nil || len(present) == 0 {
			halerrors.BadRequest(c, "request body must be a non-empty JSON object")
			return
		}

		dst := reflect.New(f.model).Interface()
		if err := json.Unmarshal(data, dst); err != nil {
			halerrors.BadRequest(c, "request body does not match the expected types")
			return
		}

		var verr error
		if c.Request.Method == http.MethodPatch {
			// Allow partial documents when PATCHing
			verr = f.validate.StructPartial(dst, f.presentStructFields(present)...)
		} else {
			verr = f.validate.Struct(dst)
		}
		if verr != nil {
			halerrors.ValidationFailed(c, f.fieldErrors(verr))
			return
		}

		c.Set(payloadKey, dst)
		c.Set(cleanKey, f.clean(dst, present))
		c.Next()
	}
}

// Options answers preflight-style OPTIONS requests, advertising that PATCH
// documents must be utf-8 JSON.
func (f *Form) Options(c *gin.Context) {
	c.Header("Allow", "POST, PATCH, OPTIONS")
	c.Header("Accept-Patch", "application/json;charset=utf-8")
	c.Status(http.StatusOK)
}

// Payload returns the validated payload stored by the form middleware.
func Payload[T any](c *gin.Context) *T {
	v, ok := c.Get(payloadKey)
	if !ok {
		return nil
	}
	p, _ := v.(*T)
	return p
}

// Clean returns the sanitized payload: only fields declared on the form
// and present in the request body, keyed by wire name.
func Clean(c *gin.Context) map[string]any {
	v, ok := c.Get(cleanKey)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// presentStructFields maps the payload's wire names onto struct field
// names for partial validation.
func (f *Form) presentStructFields(present map[string]json.RawMessage) []string {
	names := make([]string, 0, len(present))
	for _, fld := range f.fields {
		if _, ok := present[fld.jsonName]; ok {
			names = append(names, fld.structName)
		}
	}
	return names
}

func (f *Form) clean(dst any, present map[string]json.RawMessage) map[string]any {
	val := reflect.ValueOf(dst).Elem()
	out := make(map[string]any, len(present))
	for _, fld := range f.fields {
		if _, ok := present[fld.jsonName]; !ok {
			continue
		}
		out[fld.jsonName] = val.FieldByName(fld.structName).Interface()
	}
	return out
}

func (f *Form) fieldErrors(err error) []halerrors.FieldError {
	var verrs validator.ValidationErrors
	if !halerrors.As(err, &verrs) {
		return []halerrors.FieldError{halerrors.NewFieldError("_", "payload is invalid")}
	}
	fields := make([]halerrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, halerrors.NewFieldError(fe.Field(), reason(fe)))
	}
	return fields
}

// reason renders a validator tag failure as a consumer-facing message.
func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "min":
		if fe.Kind() == reflect.String {
			return "must be at least " + fe.Param() + " characters long"
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters long"
		}
		return "must be at most " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "lt":
		return "must be less than " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "is invalid"
	}
}
