package forms

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/halgorm/halgorm/pkg/hal"
	"github.com/shopspring/decimal"
)

// Schema is a minimal JSON Schema representation of a form's rules.
type Schema struct {
	Type       string             `json:"type,omitempty"`
	Format     string             `json:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`

	MinLength *int     `json:"minLength,omitempty"`
	MaxLength *int     `json:"maxLength,omitempty"`
	MinItems  *int     `json:"minItems,omitempty"`
	MaxItems  *int     `json:"maxItems,omitempty"`
	Minimum   *float64 `json:"minimum,omitempty"`
	Maximum   *float64 `json:"maximum,omitempty"`
	Enum      []string `json:"enum,omitempty"`
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	uuidType    = reflect.TypeOf(uuid.UUID{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// Schema exports the form's declared fields and rules as a JSON Schema
// object suitable for an application/schema+json response.
func (f *Form) Schema() *Schema {
	root := &Schema{
		Type:       "object",
		Properties: make(map[string]*Schema, len(f.fields)),
	}
	for _, fld := range f.fields {
		prop := schemaForType(fld.typ)
		for _, rule := range strings.Split(fld.rules, ",") {
			name, param, _ := strings.Cut(rule, "=")
			switch name {
			case "required":
				root.Required = append(root.Required, fld.jsonName)
			case "email":
				prop.Format = "email"
			case "url":
				prop.Format = "uri"
			case "uuid", "uuid4":
				prop.Format = "uuid"
			case "min":
				applyLowerBound(prop, param)
			case "max":
				applyUpperBound(prop, param)
			case "gte", "gt":
				if v, err := strconv.ParseFloat(param, 64); err == nil {
					prop.Minimum = &v
				}
			case "lte", "lt":
				if v, err := strconv.ParseFloat(param, 64); err == nil {
					prop.Maximum = &v
				}
			case "oneof":
				prop.Enum = strings.Fields(param)
			}
		}
		root.Properties[fld.jsonName] = prop
	}
	return root
}

// SchemaHandler serves the form schema as application/schema+json.
func (f *Form) SchemaHandler(c *gin.Context) {
	raw, err := json.Marshal(f.Schema())
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(http.StatusOK, hal.SchemaContentType, raw)
}

func schemaForType(typ reflect.Type) *Schema {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	switch typ {
	case timeType:
		return &Schema{Type: "string", Format: "date-time"}
	case uuidType:
		return &Schema{Type: "string", Format: "uuid"}
	case decimalType:
		return &Schema{Type: "number"}
	}
	switch typ.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: schemaForType(typ.Elem())}
	default:
		return &Schema{Type: "object"}
	}
}

// min/max mean length for strings, item count for arrays and magnitude
// otherwise.
func applyLowerBound(prop *Schema, param string) {
	switch prop.Type {
	case "string":
		if v, err := strconv.Atoi(param); err == nil {
			prop.MinLength = &v
		}
	case "array":
		if v, err := strconv.Atoi(param); err == nil {
			prop.MinItems = &v
		}
	default:
		if v, err := strconv.ParseFloat(param, 64); err == nil {
			prop.Minimum = &v
		}
	}
}

func applyUpperBound(prop *Schema, param string) {
	switch prop.Type {
	case "string":
		if v, err := strconv.Atoi(param); err == nil {
			prop.MaxLength = &v
		}
	case "array":
		if v, err := strconv.Atoi(param); err == nil {
			prop.MaxItems = &v
		}
	default:
		if v, err := strconv.ParseFloat(param, 64); err == nil {
			prop.Maximum = &v
		}
	}
}
