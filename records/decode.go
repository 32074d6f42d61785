package records

import (
	"fmt"
	"time"

	"github.com/mermaid-go/mermaid/coerce"
)

// ConstructionError reports a raw item that cannot be assembled into a
// record: either a required source key is missing, or a value failed
// coercion (Err then wraps the *coerce.CoercionError).
type ConstructionError struct {
	Variant string
	Field   string
	Err     error
}

func (e *ConstructionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: field %q: %v", e.Variant, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: field %q: missing required key", e.Variant, e.Field)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// itemDecoder walks one variant's schema over a raw item, keeping the
// first error it hits. Every method maps a source key to a destination
// field through one coercion rule.
type itemDecoder struct {
	variant string
	item    Item
	err     error
}

func newItemDecoder(variant string, item Item) *itemDecoder {
	return &itemDecoder{variant: variant, item: item}
}

func (d *itemDecoder) fail(field string, err error) {
	if d.err == nil {
		d.err = &ConstructionError{Variant: d.variant, Field: field, Err: err}
	}
}

// required returns the raw value for key, recording a missing-key error
// against field when absent.
func (d *itemDecoder) required(key, field string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	v, ok := d.item[key]
	if !ok {
		d.fail(field, nil)
		return nil, false
	}
	return v, true
}

func (d *itemDecoder) str(key, field string) string {
	v, ok := d.required(key, field)
	if !ok {
		return ""
	}
	s, err := coerce.String(v)
	if err != nil {
		d.fail(field, err)
	}
	return s
}

// optStr decodes a key the dataset only sometimes carries.
func (d *itemDecoder) optStr(key, field string) *string {
	if d.err != nil {
		return nil
	}
	v, ok := d.item[key]
	if !ok || v == nil {
		return nil
	}
	s, err := coerce.String(v)
	if err != nil {
		d.fail(field, err)
		return nil
	}
	return &s
}

func (d *itemDecoder) integer(key, field string) *int64 {
	v, ok := d.required(key, field)
	if !ok {
		return nil
	}
	n, err := coerce.Int(v)
	if err != nil {
		d.fail(field, err)
	}
	return n
}

func (d *itemDecoder) float(key, field string) *float64 {
	v, ok := d.required(key, field)
	if !ok {
		return nil
	}
	f, err := coerce.Float(v)
	if err != nil {
		d.fail(field, err)
	}
	return f
}

func (d *itemDecoder) boolean(key, field string) *bool {
	v, ok := d.required(key, field)
	if !ok {
		return nil
	}
	b, err := coerce.Bool(v)
	if err != nil {
		d.fail(field, err)
	}
	return b
}

// timestamp applies one of the coerce timestamp rules to a required key.
func (d *itemDecoder) timestamp(rule func(any) (*time.Time, error), key, field string) *time.Time {
	v, ok := d.required(key, field)
	if !ok {
		return nil
	}
	t, err := rule(v)
	if err != nil {
		d.fail(field, err)
	}
	return t
}

// object descends into a nested JSON object, returning a decoder scoped to
// the nested variant name.
func (d *itemDecoder) object(key, field string) *itemDecoder {
	v, ok := d.required(key, field)
	if !ok {
		return newItemDecoder(d.variant+"."+field, Item{})
	}
	m, isMap := v.(map[string]any)
	if !isMap {
		d.fail(field, fmt.Errorf("expected a nested object, got %T", v))
		return newItemDecoder(d.variant+"."+field, Item{})
	}
	sub := newItemDecoder(d.variant+"."+field, Item(m))
	sub.err = d.err
	return sub
}

// list returns the elements of a required JSON array value.
func (d *itemDecoder) list(key, field string) []any {
	v, ok := d.required(key, field)
	if !ok {
		return nil
	}
	l, isList := v.([]any)
	if !isList {
		d.fail(field, fmt.Errorf("expected a list, got %T", v))
		return nil
	}
	return l
}

// scalarStr coerces one list element to a string.
func (d *itemDecoder) scalarStr(v any, field string) string {
	if d.err != nil {
		return ""
	}
	s, err := coerce.String(v)
	if err != nil {
		d.fail(field, err)
	}
	return s
}

// adopt pulls an error out of a nested decoder.
func (d *itemDecoder) adopt(sub *itemDecoder) {
	if d.err == nil {
		d.err = sub.err
	}
}
