// Package jsonmap decodes generic JSON objects (map[string]any) field by field.
//
// A Decoder never mutates its source. Every accessor marks its key as consumed
// and records a field error instead of returning one, so a caller can read all
// fields and then report every problem at once through Err.
package jsonmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/KirkDiggler/osrs-items/internal/errors"
)

const (
	msgRequired     = "is required"
	msgUnrecognized = "is not a recognized field"
)

// Decoder reads typed values out of a JSON object
type Decoder struct {
	src  map[string]any
	seen map[string]bool
	sb   *errors.ValidationBuilder
}

// NewDecoder creates a decoder over src
func NewDecoder(src map[string]any) *Decoder {
	return &Decoder{
		src:  src,
		seen: make(map[string]bool, len(src)),
		sb:   errors.NewShapeBuilder(),
	}
}

// Parse unmarshals JSON text keeping numbers as json.Number so integers
// survive without float rounding.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeShapeMismatch, "invalid JSON")
	}
	if dec.More() {
		return nil, errors.ShapeMismatch("invalid JSON: trailing data after top-level value")
	}
	return v, nil
}

// ParseObject is Parse restricted to a top-level object
func ParseObject(data []byte) (map[string]any, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, errors.ShapeMismatchf("expected a JSON object, got %s", TypeName(v))
	}
	return obj, nil
}

// Fail records a field error
func (d *Decoder) Fail(key, message string) {
	d.sb.Field(key, message)
}

// Failf records a formatted field error
func (d *Decoder) Failf(key, format string, args ...any) {
	d.sb.Fieldf(key, format, args...)
}

// Merge records the field errors of a nested decode under key
func (d *Decoder) Merge(key string, err error) {
	d.sb.Merge(key, err)
}

// Lookup returns the raw value of an optional key. Absent and null both
// report false.
func (d *Decoder) Lookup(key string) (any, bool) {
	d.seen[key] = true
	v, ok := d.src[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Present reports whether key exists, null or not, without consuming it
func (d *Decoder) Present(key string) bool {
	_, ok := d.src[key]
	return ok
}

// required fetches a key that must exist; ok is false when it is missing
func (d *Decoder) required(key string) (any, bool) {
	d.seen[key] = true
	v, ok := d.src[key]
	if !ok {
		d.Fail(key, msgRequired)
		return nil, false
	}
	return v, true
}

// Int reads a required integer
func (d *Decoder) Int(key string) int {
	v, ok := d.required(key)
	if !ok {
		return 0
	}
	n, err := ToInt(v)
	if err != nil {
		d.Fail(key, err.Error())
	}
	return n
}

// OptInt reads a required key holding an integer or null
func (d *Decoder) OptInt(key string) *int {
	v, ok := d.required(key)
	if !ok || v == nil {
		return nil
	}
	n, err := ToInt(v)
	if err != nil {
		d.Failf(key, "%v (null allowed)", err)
		return nil
	}
	return &n
}

// Float reads a required number
func (d *Decoder) Float(key string) float64 {
	v, ok := d.required(key)
	if !ok {
		return 0
	}
	f, err := ToFloat(v)
	if err != nil {
		d.Fail(key, err.Error())
	}
	return f
}

// OptFloat reads a required key holding a number or null
func (d *Decoder) OptFloat(key string) *float64 {
	v, ok := d.required(key)
	if !ok || v == nil {
		return nil
	}
	f, err := ToFloat(v)
	if err != nil {
		d.Failf(key, "%v (null allowed)", err)
		return nil
	}
	return &f
}

// String reads a required string
func (d *Decoder) String(key string) string {
	v, ok := d.required(key)
	if !ok {
		return ""
	}
	s, isString := v.(string)
	if !isString {
		d.Failf(key, "expected string, got %s", TypeName(v))
	}
	return s
}

// OptString reads a required key holding a string or null
func (d *Decoder) OptString(key string) *string {
	v, ok := d.required(key)
	if !ok || v == nil {
		return nil
	}
	s, isString := v.(string)
	if !isString {
		d.Failf(key, "expected string or null, got %s", TypeName(v))
		return nil
	}
	return &s
}

// Bool reads a required boolean
func (d *Decoder) Bool(key string) bool {
	v, ok := d.required(key)
	if !ok {
		return false
	}
	b, isBool := v.(bool)
	if !isBool {
		d.Failf(key, "expected boolean, got %s", TypeName(v))
	}
	return b
}

// OptBool reads a required key holding a boolean or null
func (d *Decoder) OptBool(key string) *bool {
	v, ok := d.required(key)
	if !ok || v == nil {
		return nil
	}
	b, isBool := v.(bool)
	if !isBool {
		d.Failf(key, "expected boolean or null, got %s", TypeName(v))
		return nil
	}
	return &b
}

// List reads a required array
func (d *Decoder) List(key string) []any {
	v, ok := d.required(key)
	if !ok {
		return nil
	}
	list, isList := v.([]any)
	if !isList {
		d.Failf(key, "expected array, got %s", TypeName(v))
	}
	return list
}

// OptObject reads a required key holding an object or null
func (d *Decoder) OptObject(key string) map[string]any {
	v, ok := d.required(key)
	if !ok || v == nil {
		return nil
	}
	obj, isObject := v.(map[string]any)
	if !isObject {
		d.Failf(key, "expected object or null, got %s", TypeName(v))
		return nil
	}
	return obj
}

// Err reports every recorded field error plus any key no accessor consumed.
// It returns nil when the object decoded cleanly.
func (d *Decoder) Err() error {
	var unknown []string
	for key := range d.src {
		if !d.seen[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		d.Fail(key, msgUnrecognized)
	}
	return d.sb.Build()
}

// ToInt converts a decoded JSON number to int. Floats must be integral.
func ToInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected integer, got %q", n.String())
		}
		return floatToInt(f)
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	default:
		return 0, fmt.Errorf("expected integer, got %s", TypeName(v))
	}
}

func floatToInt(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, fmt.Errorf("integer %v out of range", f)
	}
	return int(f), nil
}

// ToFloat converts a decoded JSON number to float64
func ToFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("expected number, got %q", n.String())
		}
		return f, nil
	default:
		return 0, fmt.Errorf("expected number, got %s", TypeName(v))
	}
}

// TypeName names the JSON type of a decoded value for error messages
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int32, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}
