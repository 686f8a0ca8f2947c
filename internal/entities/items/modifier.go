package items

import (
	"fmt"
	"strconv"

	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

// Modifier is a numeric value with an optional note on where it comes from
// or when it applies.
type Modifier struct {
	Value   float64 `json:"value"`
	Comment *string `json:"comment"`
}

// NewModifier creates a modifier; an empty comment is stored as nil
func NewModifier(value float64, comment string) Modifier {
	m := Modifier{Value: value}
	if comment != "" {
		m.Comment = &comment
	}
	return m
}

// Float64 returns the modifier as a plain number, ignoring the comment
func (m Modifier) Float64() float64 {
	return m.Value
}

// String renders the value and, when present, the comment
func (m Modifier) String() string {
	if m.Comment == nil {
		return fmt.Sprintf("%g", m.Value)
	}
	return fmt.Sprintf("%g (%s)", m.Value, *m.Comment)
}

// ConstructJSON flattens the modifier to a plain mapping
func (m Modifier) ConstructJSON() map[string]any {
	return map[string]any{
		"value":   m.Value,
		"comment": optString(m.Comment),
	}
}

// Modifiers is an ordered list of modifiers. Order is application order.
type Modifiers []Modifier

// Values unwraps every modifier to its number, preserving order
func (ms Modifiers) Values() []float64 {
	if ms == nil {
		return nil
	}
	values := make([]float64, len(ms))
	for i, m := range ms {
		values[i] = m.Float64()
	}
	return values
}

// ConstructJSON flattens the list; a nil list flattens to nil and an empty
// one to an empty slice
func (ms Modifiers) ConstructJSON() []any {
	if ms == nil {
		return nil
	}
	out := make([]any, len(ms))
	for i, m := range ms {
		out[i] = m.ConstructJSON()
	}
	return out
}

func decodeModifier(raw any) (Modifier, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Modifier{}, errors.ShapeMismatchf("expected object, got %s", jsonmap.TypeName(raw))
	}

	d := jsonmap.NewDecoder(obj)
	m := Modifier{
		Value: d.Float("value"),
	}
	if _, ok := obj["comment"]; ok {
		m.Comment = d.OptString("comment")
	}

	if err := d.Err(); err != nil {
		return Modifier{}, err
	}
	return m, nil
}

// decodeModifiers converts a list of modifier mappings 1:1. Null decodes to
// nil; an empty list stays an empty list.
func decodeModifiers(raw any) (Modifiers, error) {
	if raw == nil {
		return nil, nil
	}
	if ms, ok := raw.(Modifiers); ok {
		return ms, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, errors.ShapeMismatchf("expected array of modifiers, got %s", jsonmap.TypeName(raw))
	}
	if len(list) == 0 {
		return Modifiers{}, nil
	}

	sb := errors.NewShapeBuilder()
	mods := make(Modifiers, len(list))
	for i, elem := range list {
		m, err := decodeModifier(elem)
		if err != nil {
			sb.Merge(strconv.Itoa(i), err)
			continue
		}
		mods[i] = m
	}

	if err := sb.Build(); err != nil {
		return nil, err
	}
	return mods, nil
}

// ProcessModifiers returns m with the list under key converted to Modifiers.
// A missing, null or empty value leaves m untouched and is not an error. The
// input map is never modified; a converted result is a shallow copy.
func ProcessModifiers(m map[string]any, key string) (map[string]any, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return m, nil
	}
	if list, isList := raw.([]any); isList && len(list) == 0 {
		return m, nil
	}

	mods, err := decodeModifiers(raw)
	if err != nil {
		return nil, errors.NewShapeBuilder().Merge(key, err).Build()
	}

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	out[key] = mods
	return out, nil
}
