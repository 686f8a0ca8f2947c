// Package items models OSRS item records and converts them between JSON and
// typed values.
//
// Hydration (FromJSON, Decode) reads one item object and builds an
// ItemRecord with its optional EquipmentStats, WeaponStats and
// SpecialWeaponStats. Flattening (ConstructJSON) goes the other way and
// produces plain maps, slices and scalars. ExportJSON writes one record to
// <dir>/<id>.json.
//
// The source data keys the special attack object as "special weapon" and its
// modifier lists as "special attack roll modifiers" and "special damage
// modifiers". Flattened output uses the field names special_weapon,
// special_attack_roll_modifiers and special_damage_modifiers. Hydration
// accepts both spellings so flattened output can be hydrated again.
//
// A null modifier list stays nil and an empty one stays empty, in both
// flattened and exported output.
package items
