package items

import (
	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

// ItemRecord is the full description of one item. Linked IDs reference other
// records (noted, placeholder and base variants) and are not resolved here.
//
// Equipment is set exactly when EquipableByPlayer is true. Weapon requires
// EquipableByPlayer and SpecialWeapon requires Weapon.
type ItemRecord struct {
	ID                  int      `json:"id"`
	Name                string   `json:"name"`
	LastUpdated         string   `json:"last_updated"`
	Incomplete          bool     `json:"incomplete"`
	Members             bool     `json:"members"`
	Tradeable           *bool    `json:"tradeable"`
	TradeableOnGE       bool     `json:"tradeable_on_ge"`
	Stackable           bool     `json:"stackable"`
	Stacked             bool     `json:"stacked"`
	Noted               bool     `json:"noted"`
	Noteable            bool     `json:"noteable"`
	LinkedIDItem        *int     `json:"linked_id_item"`
	LinkedIDNoted       *int     `json:"linked_id_noted"`
	LinkedIDPlaceholder *int     `json:"linked_id_placeholder"`
	Placeholder         bool     `json:"placeholder"`
	Equipable           bool     `json:"equipable"`
	EquipableByPlayer   bool     `json:"equipable_by_player"`
	EquipableWeapon     bool     `json:"equipable_weapon"`
	Cost                int      `json:"cost"`
	LowAlch             int      `json:"lowalch"`
	HighAlch            int      `json:"highalch"`
	Weight              *float64 `json:"weight"`
	BuyLimit            *int     `json:"buy_limit"`
	QuestItem           bool     `json:"quest_item"`
	ReleaseDate         *string  `json:"release_date"`
	Duplicate           bool     `json:"duplicate"`
	Examine             *string  `json:"examine"`
	Icon                string   `json:"icon"`
	WikiName            *string  `json:"wiki_name"`
	WikiURL             *string  `json:"wiki_url"`

	Equipment     *EquipmentStats     `json:"equipment"`
	Weapon        *WeaponStats        `json:"weapon"`
	SpecialWeapon *SpecialWeaponStats `json:"special_weapon"`
}

// FromJSON hydrates a record from one item's JSON object. Every required key
// must be present with the right type and no unknown key may appear; all
// problems are reported together in a single ShapeMismatch error. obj is
// read, never modified.
func FromJSON(obj map[string]any) (*ItemRecord, error) {
	if obj == nil {
		return nil, errors.ShapeMismatch("item object is nil")
	}

	d := jsonmap.NewDecoder(obj)
	r := &ItemRecord{
		ID:                  d.Int("id"),
		Name:                d.String("name"),
		LastUpdated:         d.String("last_updated"),
		Incomplete:          d.Bool("incomplete"),
		Members:             d.Bool("members"),
		Tradeable:           d.OptBool("tradeable"),
		TradeableOnGE:       d.Bool("tradeable_on_ge"),
		Stackable:           d.Bool("stackable"),
		Stacked:             d.Bool("stacked"),
		Noted:               d.Bool("noted"),
		Noteable:            d.Bool("noteable"),
		LinkedIDItem:        d.OptInt("linked_id_item"),
		LinkedIDNoted:       d.OptInt("linked_id_noted"),
		LinkedIDPlaceholder: d.OptInt("linked_id_placeholder"),
		Placeholder:         d.Bool("placeholder"),
		Equipable:           d.Bool("equipable"),
		EquipableByPlayer:   d.Bool(keyEquipableByPlayer),
		EquipableWeapon:     d.Bool("equipable_weapon"),
		Cost:                d.Int("cost"),
		LowAlch:             d.Int("lowalch"),
		HighAlch:            d.Int("highalch"),
		Weight:              d.OptFloat("weight"),
		BuyLimit:            d.OptInt("buy_limit"),
		QuestItem:           d.Bool("quest_item"),
		ReleaseDate:         d.OptString("release_date"),
		Duplicate:           d.Bool("duplicate"),
		Examine:             d.OptString("examine"),
		Icon:                d.String("icon"),
		WikiName:            d.OptString("wiki_name"),
		WikiURL:             d.OptString("wiki_url"),
	}

	if raw, ok := d.Lookup(KeyEquipment); ok {
		if !r.EquipableByPlayer {
			d.Failf(KeyEquipment, "must be null when %s is false", keyEquipableByPlayer)
		} else if equipment, err := decodeEquipment(raw); err != nil {
			d.Merge(KeyEquipment, err)
		} else {
			r.Equipment = equipment
		}
	} else if r.EquipableByPlayer {
		d.Failf(KeyEquipment, "is required when %s is true", keyEquipableByPlayer)
	}

	if raw, ok := d.Lookup(KeyWeapon); ok && truthy(raw) {
		if weapon, err := decodeWeapon(raw); err != nil {
			d.Merge(KeyWeapon, err)
		} else {
			r.Weapon = weapon
		}
	}

	if key, raw, ok := lookupSpecialWeapon(d); ok && truthy(raw) {
		if special, err := decodeSpecialWeapon(raw); err != nil {
			d.Merge(key, err)
		} else {
			r.SpecialWeapon = special
		}
	}

	if err := d.Err(); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeShapeMismatch, "invalid item %d", r.ID).
			WithMeta("item_id", r.ID)
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// lookupSpecialWeapon finds the special attack object under its source key or
// its field name. Both at once is a conflict.
func lookupSpecialWeapon(d *jsonmap.Decoder) (string, any, bool) {
	source, hasSource := d.Lookup(KeySpecialWeapon)
	field, hasField := d.Lookup(FieldSpecialWeapon)

	switch {
	case hasSource && hasField:
		d.Failf(FieldSpecialWeapon, "conflicts with %q", KeySpecialWeapon)
		return "", nil, false
	case hasField:
		return FieldSpecialWeapon, field, true
	default:
		return KeySpecialWeapon, source, hasSource
	}
}

// truthy reports whether an optional nested value counts as present: not
// null, and not an empty object or array.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case map[string]any:
		return len(t) > 0
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

// Validate checks the presence rules between the flags and the sub-records
func (r *ItemRecord) Validate() error {
	sb := errors.NewShapeBuilder()

	switch {
	case r.EquipableByPlayer && r.Equipment == nil:
		sb.Fieldf(KeyEquipment, "is required when %s is true", keyEquipableByPlayer)
	case !r.EquipableByPlayer && r.Equipment != nil:
		sb.Fieldf(KeyEquipment, "must be null when %s is false", keyEquipableByPlayer)
	}

	if r.Weapon != nil && !r.EquipableByPlayer {
		sb.Fieldf(KeyWeapon, "requires %s", keyEquipableByPlayer)
	}

	if r.SpecialWeapon != nil && r.Weapon == nil {
		sb.Fieldf(FieldSpecialWeapon, "requires %s", KeyWeapon)
	}

	if err := sb.Build(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeShapeMismatch, "invalid item %d", r.ID).
			WithMeta("item_id", r.ID)
	}
	return nil
}

// ConstructJSON flattens the record to plain mappings, lists and scalars.
// Missing sub-records flatten to nil. The record is not modified.
func (r *ItemRecord) ConstructJSON() map[string]any {
	out := map[string]any{
		"id":                    r.ID,
		"name":                  r.Name,
		"last_updated":          r.LastUpdated,
		"incomplete":            r.Incomplete,
		"members":               r.Members,
		"tradeable":             optBool(r.Tradeable),
		"tradeable_on_ge":       r.TradeableOnGE,
		"stackable":             r.Stackable,
		"stacked":               r.Stacked,
		"noted":                 r.Noted,
		"noteable":              r.Noteable,
		"linked_id_item":        optInt(r.LinkedIDItem),
		"linked_id_noted":       optInt(r.LinkedIDNoted),
		"linked_id_placeholder": optInt(r.LinkedIDPlaceholder),
		"placeholder":           r.Placeholder,
		"equipable":             r.Equipable,
		"equipable_by_player":   r.EquipableByPlayer,
		"equipable_weapon":      r.EquipableWeapon,
		"cost":                  r.Cost,
		"lowalch":               r.LowAlch,
		"highalch":              r.HighAlch,
		"weight":                optFloat(r.Weight),
		"buy_limit":             optInt(r.BuyLimit),
		"quest_item":            r.QuestItem,
		"release_date":          optString(r.ReleaseDate),
		"duplicate":             r.Duplicate,
		"examine":               optString(r.Examine),
		"icon":                  r.Icon,
		"wiki_name":             optString(r.WikiName),
		"wiki_url":              optString(r.WikiURL),
		KeyEquipment:            nil,
		KeyWeapon:               nil,
		FieldSpecialWeapon:      nil,
	}

	if r.Equipment != nil {
		out[KeyEquipment] = r.Equipment.ConstructJSON()
	}
	if r.Weapon != nil {
		out[KeyWeapon] = r.Weapon.ConstructJSON()
	}
	if r.SpecialWeapon != nil {
		out[FieldSpecialWeapon] = r.SpecialWeapon.ConstructJSON()
	}

	return out
}

// HasSpecialAttack reports whether the record carries special attack data
func (r *ItemRecord) HasSpecialAttack() bool {
	return r.SpecialWeapon != nil
}
