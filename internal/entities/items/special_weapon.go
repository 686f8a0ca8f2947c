package items

import (
	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

// SpecialWeaponStats describes the special attack of a weapon. EnergyUsed is
// a percentage of the special attack bar (0-100). The modifier lists are nil
// or non-empty, in the order they apply.
type SpecialWeaponStats struct {
	Name                       string    `json:"name"`
	EnergyUsed                 int       `json:"energy_used"`
	Description                string    `json:"description"`
	AttackRollDamageType       *string   `json:"attack_roll_damage_type"`
	DefenceRollDamageType      *string   `json:"defence_roll_damage_type"`
	SpecialAttackRollModifiers Modifiers `json:"special_attack_roll_modifiers"`
	SpecialDamageModifiers     Modifiers `json:"special_damage_modifiers"`
}

// SpecialWeaponFromJSON builds SpecialWeaponStats from obj. The modifier
// lists may be keyed by their source spelling ("special attack roll
// modifiers") or by field name, not both.
func SpecialWeaponFromJSON(obj map[string]any) (*SpecialWeaponStats, error) {
	obj, err := ProcessModifiers(obj, KeySpecialAttackRollModifiers)
	if err != nil {
		return nil, err
	}
	obj, err = ProcessModifiers(obj, KeySpecialDamageModifiers)
	if err != nil {
		return nil, err
	}

	d := jsonmap.NewDecoder(obj)
	sw := &SpecialWeaponStats{
		Name:                  d.String("name"),
		EnergyUsed:            d.Int("energy_used"),
		Description:           d.String("description"),
		AttackRollDamageType:  d.OptString("attack_roll_damage_type"),
		DefenceRollDamageType: d.OptString("defence_roll_damage_type"),
	}
	sw.SpecialAttackRollModifiers = modifiersField(d, KeySpecialAttackRollModifiers, FieldSpecialAttackRollModifiers)
	sw.SpecialDamageModifiers = modifiersField(d, KeySpecialDamageModifiers, FieldSpecialDamageModifiers)

	if err := d.Err(); err != nil {
		return nil, err
	}
	return sw, nil
}

// modifiersField reads a required modifier list stored under either its
// source key or its field name.
func modifiersField(d *jsonmap.Decoder, sourceKey, fieldKey string) Modifiers {
	key := sourceKey
	switch {
	case d.Present(sourceKey) && d.Present(fieldKey):
		d.Lookup(sourceKey)
		d.Lookup(fieldKey)
		d.Failf(fieldKey, "conflicts with %q", sourceKey)
		return nil
	case d.Present(fieldKey):
		key = fieldKey
	case !d.Present(sourceKey):
		d.Fail(sourceKey, "is required")
		return nil
	}

	raw, _ := d.Lookup(key)
	mods, err := decodeModifiers(raw)
	if err != nil {
		d.Merge(key, err)
		return nil
	}
	return mods
}

// ConstructJSON flattens the stats to a plain mapping keyed by field name
func (sw *SpecialWeaponStats) ConstructJSON() map[string]any {
	return map[string]any{
		"name":                          sw.Name,
		"energy_used":                   sw.EnergyUsed,
		"description":                   sw.Description,
		"attack_roll_damage_type":       optString(sw.AttackRollDamageType),
		"defence_roll_damage_type":      optString(sw.DefenceRollDamageType),
		FieldSpecialAttackRollModifiers: optList(sw.SpecialAttackRollModifiers.ConstructJSON()),
		FieldSpecialDamageModifiers:     optList(sw.SpecialDamageModifiers.ConstructJSON()),
	}
}

func decodeSpecialWeapon(raw any) (*SpecialWeaponStats, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.ShapeMismatchf("expected object, got %s", jsonmap.TypeName(raw))
	}
	return SpecialWeaponFromJSON(obj)
}
