package views

import (
	"fmt"
	"reflect"
	"strings"
)

// ResolvePath substitutes the :param and *param segments of a route
// pattern with the matching fields of the model, matched by json tag
// name (falling back to a case-insensitive struct field name match).
func ResolvePath(pattern string, model any) (string, error) {
	val := reflect.ValueOf(model)
	for val.Kind() == reflect.Pointer {
		if val.IsNil() {
			return "", fmt.Errorf("views: nil model for pattern %q", pattern)
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return "", fmt.Errorf("views: model for pattern %q must be a struct", pattern)
	}

	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") && !strings.HasPrefix(seg, "*") {
			continue
		}
		param := seg[1:]
		field, ok := fieldByJSONName(val, param)
		if !ok {
			return "", fmt.Errorf("views: no field matches route param %q", param)
		}
		segments[i] = fmt.Sprintf("%v", field.Interface())
	}
	return strings.Join(segments, "/"), nil
}

func fieldByJSONName(val reflect.Value, name string) (reflect.Value, bool) {
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		fld := typ.Field(i)
		if !fld.IsExported() {
			continue
		}
		jsonName := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if jsonName == name || (jsonName == "" && strings.EqualFold(fld.Name, name)) {
			return val.Field(i), true
		}
	}
	// Second pass: allow a struct field name match even when a json tag
	// renames the field.
	for i := 0; i < typ.NumField(); i++ {
		fld := typ.Field(i)
		if fld.IsExported() && strings.EqualFold(fld.Name, name) {
			return val.Field(i), true
		}
	}
	return reflect.Value{}, false
}
