// Package records holds one immutable typed record per Warsaw Open Data
// dataset, the factories that build them from raw API items, and the
// structural conversions shared by all of them.
package records

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Item is one raw JSON object from an API response, prior to coercion.
type Item map[string]any

// Fields returns the record's declared field names in declared order.
// Field names come from the struct's json tags.
func Fields(r any) []string {
	t := baseType(reflect.ValueOf(r))
	names := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		names = append(names, fieldName(f))
	}
	return names
}

// ToMap converts a record to a mapping from field name to typed value.
// Nested records become nested maps. The key set equals Fields(r) exactly;
// use Fields or ToTuple where declared order matters.
func ToMap(r any) map[string]any {
	v := baseValue(reflect.ValueOf(r))
	out := make(map[string]any, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if !f.IsExported() {
			continue
		}
		out[fieldName(f)] = convertValue(v.Field(i), false)
	}
	return out
}

// ToTuple converts a record to its field values in declared order. Nested
// records become nested tuples.
func ToTuple(r any) []any {
	v := baseValue(reflect.ValueOf(r))
	out := make([]any, 0, v.NumField())
	for i := 0; i < v.NumField(); i++ {
		f := v.Type().Field(i)
		if !f.IsExported() {
			continue
		}
		out = append(out, convertValue(v.Field(i), true))
	}
	return out
}

// ToFlatMap converts a record to a mapping that contains only scalar
// values. Nested record fields are expanded with underscore-joined key
// prefixes; slice elements carry their position in the key, so no leaf
// present in ToMap is lost.
func ToFlatMap(r any) map[string]any {
	out := make(map[string]any)
	flatten(reflect.ValueOf(r), "", out)
	return out
}

// ToJSON serializes the record, fields in declared order, timestamps in
// RFC 3339.
func ToJSON(r any) (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	return string(b), nil
}

func baseValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic(fmt.Sprintf("records: %s is not a record struct", v.Kind()))
	}
	return v
}

func baseType(v reflect.Value) reflect.Type {
	return baseValue(v).Type()
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag != "" {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func isTime(t reflect.Type) bool {
	return t == reflect.TypeOf(time.Time{})
}

// convertValue renders one field value for ToMap / ToTuple. asTuple
// controls how nested records are rendered.
func convertValue(v reflect.Value, asTuple bool) any {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return nil
		}
		return convertValue(v.Elem(), asTuple)
	case reflect.Struct:
		if isTime(v.Type()) {
			return v.Interface()
		}
		if asTuple {
			return ToTuple(v.Interface())
		}
		return ToMap(v.Interface())
	case reflect.Slice:
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = convertValue(v.Index(i), asTuple)
		}
		return out
	default:
		return v.Interface()
	}
}

func flatten(v reflect.Value, prefix string, out map[string]any) {
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			out[prefix] = nil
			return
		}
		flatten(v.Elem(), prefix, out)
	case reflect.Struct:
		if isTime(v.Type()) {
			out[prefix] = v.Interface()
			return
		}
		for i := 0; i < v.NumField(); i++ {
			f := v.Type().Field(i)
			if !f.IsExported() {
				continue
			}
			flatten(v.Field(i), joinKey(prefix, fieldName(f)), out)
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			flatten(v.Index(i), joinKey(prefix, strconv.Itoa(i)), out)
		}
	default:
		out[prefix] = v.Interface()
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}
