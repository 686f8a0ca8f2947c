package items

// Wire keys that differ between the source JSON and the flattened output.
// The source spells these with spaces; flattened records use field names.
const (
	KeyEquipment     = "equipment"
	KeyWeapon        = "weapon"
	KeySpecialWeapon = "special weapon"

	KeySpecialAttackRollModifiers = "special attack roll modifiers"
	KeySpecialDamageModifiers     = "special damage modifiers"

	FieldSpecialWeapon              = "special_weapon"
	FieldSpecialAttackRollModifiers = "special_attack_roll_modifiers"
	FieldSpecialDamageModifiers     = "special_damage_modifiers"
)

// Flags the conditional sub-records depend on
const (
	keyEquipableByPlayer = "equipable_by_player"
)
