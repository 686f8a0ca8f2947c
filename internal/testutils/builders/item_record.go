// Package builders provides test data builders for creating test fixtures
package builders

import (
	"github.com/KirkDiggler/osrs-items/internal/entities/items"
)

// ItemRecordBuilder provides a fluent interface for building test ItemRecord instances
type ItemRecordBuilder struct {
	record *items.ItemRecord
}

// NewItemRecordBuilder creates a new builder for a plain tradeable item that
// cannot be equipped
func NewItemRecordBuilder() *ItemRecordBuilder {
	return &ItemRecordBuilder{
		record: &items.ItemRecord{
			ID:          1,
			Name:        "Test item",
			LastUpdated: "2021-08-12",
			Tradeable:   ptr(true),
			Noteable:    true,
			Cost:        10,
			LowAlch:     4,
			HighAlch:    6,
			Weight:      ptr(1.5),
			ReleaseDate: ptr("2001-01-04"),
			Examine:     ptr("It's a test item."),
			Icon:        "iVBORw0KGgo",
			WikiName:    ptr("Test item"),
			WikiURL:     ptr("https://oldschool.runescape.wiki/w/Test_item"),
		},
	}
}

// WithID sets the item ID
func (b *ItemRecordBuilder) WithID(id int) *ItemRecordBuilder {
	b.record.ID = id
	return b
}

// WithName sets the item name and wiki name
func (b *ItemRecordBuilder) WithName(name string) *ItemRecordBuilder {
	b.record.Name = name
	b.record.WikiName = ptr(name)
	return b
}

// WithMembers marks the item as members only
func (b *ItemRecordBuilder) WithMembers() *ItemRecordBuilder {
	b.record.Members = true
	return b
}

// WithLinkedNoted sets the noted variant ID
func (b *ItemRecordBuilder) WithLinkedNoted(id int) *ItemRecordBuilder {
	b.record.LinkedIDNoted = ptr(id)
	return b
}

// WithEquipment makes the item equipable by players with the given stats
func (b *ItemRecordBuilder) WithEquipment(equipment *items.EquipmentStats) *ItemRecordBuilder {
	b.record.Equipable = true
	b.record.EquipableByPlayer = true
	b.record.Equipment = equipment
	return b
}

// WithWeapon adds weapon stats, making the item an equipable weapon. Default
// equipment stats are added when none were set.
func (b *ItemRecordBuilder) WithWeapon(weapon *items.WeaponStats) *ItemRecordBuilder {
	if b.record.Equipment == nil {
		b.WithEquipment(DefaultEquipment("weapon"))
	}
	b.record.EquipableWeapon = true
	b.record.Weapon = weapon
	return b
}

// WithSpecialWeapon adds special attack stats. Default weapon stats are added
// when none were set.
func (b *ItemRecordBuilder) WithSpecialWeapon(special *items.SpecialWeaponStats) *ItemRecordBuilder {
	if b.record.Weapon == nil {
		b.WithWeapon(DefaultWeapon())
	}
	b.record.SpecialWeapon = special
	return b
}

// Build returns the built record
func (b *ItemRecordBuilder) Build() *items.ItemRecord {
	return b.record
}

// DefaultEquipment returns small equipment bonuses for the given slot
func DefaultEquipment(slot string) *items.EquipmentStats {
	return &items.EquipmentStats{
		AttackStab:    5,
		AttackSlash:   7,
		DefenceStab:   1,
		MeleeStrength: 6,
		Slot:          slot,
		Requirements:  map[string]int{"attack": 10},
	}
}

// DefaultWeapon returns a two stance slash weapon
func DefaultWeapon() *items.WeaponStats {
	return &items.WeaponStats{
		AttackSpeed: 4,
		WeaponType:  "slash_sword",
		Stances: []items.Stance{
			{CombatStyle: "chop", AttackType: ptr("slash"), AttackStyle: ptr("accurate"), Experience: ptr("attack")},
			{CombatStyle: "block", AttackType: ptr("slash"), AttackStyle: ptr("defensive"), Experience: ptr("defence")},
		},
	}
}

// DefaultSpecialWeapon returns a special attack with one modifier in each list
func DefaultSpecialWeapon() *items.SpecialWeaponStats {
	return &items.SpecialWeaponStats{
		Name:                       "Test strike",
		EnergyUsed:                 50,
		Description:                "A strike used in tests.",
		DefenceRollDamageType:      ptr("slash"),
		SpecialAttackRollModifiers: items.Modifiers{items.NewModifier(1.25, "")},
		SpecialDamageModifiers:     items.Modifiers{items.NewModifier(1.1, "first hit")},
	}
}

func ptr[T any](v T) *T {
	return &v
}
