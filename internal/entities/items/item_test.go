package items_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
	"github.com/KirkDiggler/osrs-items/internal/errors"
	"github.com/KirkDiggler/osrs-items/internal/testutils"
	"github.com/KirkDiggler/osrs-items/internal/testutils/builders"
)

type ItemRecordTestSuite struct {
	suite.Suite
}

func TestItemRecordSuite(t *testing.T) {
	suite.Run(t, new(ItemRecordTestSuite))
}

// jsonEqual compares two values by their JSON encoding so json.Number and
// Go numbers compare by value
func (s *ItemRecordTestSuite) jsonEqual(expected, actual any) {
	e, err := json.Marshal(expected)
	s.Require().NoError(err)
	a, err := json.Marshal(actual)
	s.Require().NoError(err)
	s.JSONEq(string(e), string(a))
}

// toSourceKeys renames the flattened special attack keys back to the keys
// used by the source data
func toSourceKeys(flat map[string]any) map[string]any {
	out := make(map[string]any, len(flat))
	for k, v := range flat {
		out[k] = v
	}

	special := out[items.FieldSpecialWeapon]
	delete(out, items.FieldSpecialWeapon)
	if sw, ok := special.(map[string]any); ok {
		renamed := make(map[string]any, len(sw))
		for k, v := range sw {
			renamed[k] = v
		}
		renamed[items.KeySpecialAttackRollModifiers] = renamed[items.FieldSpecialAttackRollModifiers]
		renamed[items.KeySpecialDamageModifiers] = renamed[items.FieldSpecialDamageModifiers]
		delete(renamed, items.FieldSpecialAttackRollModifiers)
		delete(renamed, items.FieldSpecialDamageModifiers)
		special = renamed
	}
	out[items.KeySpecialWeapon] = special
	return out
}

func (s *ItemRecordTestSuite) TestFromJSONFixtures() {
	s.Run("coins", func() {
		r, err := items.FromJSON(testutils.ItemMap(s.T(), testutils.CoinsJSON))
		s.Require().NoError(err)

		s.Equal(testutils.CoinsID, r.ID)
		s.Equal("Coins", r.Name)
		s.True(r.Stackable)
		s.Require().NotNil(r.Tradeable)
		s.True(*r.Tradeable)
		s.Nil(r.LinkedIDNoted)
		s.Nil(r.BuyLimit)
		s.Require().NotNil(r.Weight)
		s.Equal(0.0, *r.Weight)
		s.Nil(r.Equipment)
		s.Nil(r.Weapon)
		s.Nil(r.SpecialWeapon)
		s.False(r.HasSpecialAttack())
	})

	s.Run("rune full helm", func() {
		r, err := items.FromJSON(testutils.ItemMap(s.T(), testutils.RuneFullHelmJSON))
		s.Require().NoError(err)

		s.Require().NotNil(r.Equipment)
		s.Equal("head", r.Equipment.Slot)
		s.Equal(-6, r.Equipment.AttackMagic)
		s.Equal(map[string]int{"defence": 40}, r.Equipment.Requirements)
		s.Equal([]string{"defence"}, r.Equipment.RequiredSkills())
		s.Nil(r.Weapon)
		s.Require().NotNil(r.LinkedIDNoted)
		s.Equal(1164, *r.LinkedIDNoted)
	})

	s.Run("abyssal whip", func() {
		r, err := items.FromJSON(testutils.ItemMap(s.T(), testutils.AbyssalWhipJSON))
		s.Require().NoError(err)

		s.Require().NotNil(r.Weapon)
		s.Equal(4, r.Weapon.AttackSpeed)
		s.Equal("whip", r.Weapon.WeaponType)
		s.Require().Len(r.Weapon.Stances, 3)
		s.Equal("lash", r.Weapon.Stances[1].CombatStyle)
		s.Equal("shared", *r.Weapon.Stances[1].Experience)
		s.Nil(r.Weapon.Stances[1].Boosts)
		s.Nil(r.SpecialWeapon)
	})

	s.Run("dragon dagger", func() {
		r, err := items.FromJSON(testutils.ItemMap(s.T(), testutils.DragonDaggerJSON))
		s.Require().NoError(err)

		s.Require().NotNil(r.SpecialWeapon)
		s.True(r.HasSpecialAttack())

		sw := r.SpecialWeapon
		s.Equal("Puncture", sw.Name)
		s.Equal(25, sw.EnergyUsed)
		s.Nil(sw.AttackRollDamageType)
		s.Equal("slash", *sw.DefenceRollDamageType)
		s.Equal([]float64{1.15}, sw.SpecialAttackRollModifiers.Values())
		s.Equal([]float64{1.15, 2}, sw.SpecialDamageModifiers.Values())
		s.Nil(sw.SpecialAttackRollModifiers[0].Comment)
		s.Equal("two hits", *sw.SpecialDamageModifiers[1].Comment)
	})
}

func (s *ItemRecordTestSuite) TestFromJSONDoesNotModifyInput() {
	for id, text := range testutils.AllItemFixtures() {
		input := testutils.ItemMap(s.T(), text)
		pristine := testutils.ItemMap(s.T(), text)

		_, err := items.FromJSON(input)
		s.Require().NoError(err, "item %d", id)
		s.Equal(pristine, input, "item %d", id)
	}
}

func (s *ItemRecordTestSuite) TestFlattenInvertsHydrate() {
	for id, text := range testutils.AllItemFixtures() {
		source := testutils.ItemMap(s.T(), text)
		if _, ok := source[items.KeySpecialWeapon]; !ok {
			source[items.KeySpecialWeapon] = nil
		}

		r, err := items.FromJSON(testutils.ItemMap(s.T(), text))
		s.Require().NoError(err, "item %d", id)

		s.jsonEqual(source, toSourceKeys(r.ConstructJSON()))
	}
}

func (s *ItemRecordTestSuite) TestHydrateInvertsFlatten() {
	testCases := []struct {
		name   string
		record *items.ItemRecord
	}{
		{
			name:   "plain item",
			record: builders.NewItemRecordBuilder().Build(),
		},
		{
			name: "armour",
			record: builders.NewItemRecordBuilder().
				WithID(1163).
				WithName("Rune full helm").
				WithLinkedNoted(1164).
				WithEquipment(builders.DefaultEquipment("head")).
				Build(),
		},
		{
			name: "armour without requirements",
			record: builders.NewItemRecordBuilder().
				WithEquipment(&items.EquipmentStats{Slot: "ring"}).
				Build(),
		},
		{
			name: "weapon",
			record: builders.NewItemRecordBuilder().
				WithMembers().
				WithWeapon(builders.DefaultWeapon()).
				Build(),
		},
		{
			name: "special weapon",
			record: builders.NewItemRecordBuilder().
				WithSpecialWeapon(builders.DefaultSpecialWeapon()).
				Build(),
		},
		{
			name: "special weapon without modifiers",
			record: builders.NewItemRecordBuilder().
				WithSpecialWeapon(&items.SpecialWeaponStats{Name: "Snapshot", EnergyUsed: 55, Description: "Two quick shots."}).
				Build(),
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			got, err := items.FromJSON(tc.record.ConstructJSON())
			s.Require().NoError(err)
			s.Equal(tc.record, got)
		})
	}
}

func (s *ItemRecordTestSuite) TestConstructJSON() {
	r, err := items.FromJSON(testutils.ItemMap(s.T(), testutils.RuneFullHelmJSON))
	s.Require().NoError(err)

	flat := r.ConstructJSON()
	s.Contains(flat, items.KeyWeapon)
	s.Nil(flat[items.KeyWeapon])
	s.Nil(flat[items.FieldSpecialWeapon])
	s.jsonEqual(testutils.ItemMap(s.T(), testutils.RuneFullHelmJSON)[items.KeyEquipment], flat[items.KeyEquipment])

	// flattening twice gives the same result and leaves the record alone
	before := *r.Equipment
	s.Equal(flat, r.ConstructJSON())
	s.Equal(before, *r.Equipment)
}

func (s *ItemRecordTestSuite) TestFieldSpellings() {
	s.Run("field name accepted for special weapon", func() {
		obj := testutils.ItemMap(s.T(), testutils.DragonDaggerJSON)
		sw := obj[items.KeySpecialWeapon].(map[string]any)
		delete(obj, items.KeySpecialWeapon)
		sw[items.FieldSpecialDamageModifiers] = sw[items.KeySpecialDamageModifiers]
		delete(sw, items.KeySpecialDamageModifiers)
		obj[items.FieldSpecialWeapon] = sw

		r, err := items.FromJSON(obj)
		s.Require().NoError(err)
		s.Require().NotNil(r.SpecialWeapon)
		s.Len(r.SpecialWeapon.SpecialDamageModifiers, 2)
		s.Len(r.SpecialWeapon.SpecialAttackRollModifiers, 1)
	})

	s.Run("both spellings conflict", func() {
		obj := testutils.ItemMap(s.T(), testutils.DragonDaggerJSON)
		obj[items.FieldSpecialWeapon] = obj[items.KeySpecialWeapon]

		_, err := items.FromJSON(obj)
		s.Require().Error(err)
		s.Equal([]string{`conflicts with "special weapon"`}, errors.FieldErrors(err)[items.FieldSpecialWeapon])
	})

	s.Run("both modifier spellings conflict", func() {
		obj := testutils.ItemMap(s.T(), testutils.DragonDaggerJSON)
		sw := obj[items.KeySpecialWeapon].(map[string]any)
		sw[items.FieldSpecialDamageModifiers] = []any{}

		_, err := items.FromJSON(obj)
		s.Require().Error(err)
		s.Equal(
			[]string{`conflicts with "special damage modifiers"`},
			errors.FieldErrors(err)["special weapon."+items.FieldSpecialDamageModifiers],
		)
	})
}

func (s *ItemRecordTestSuite) TestEmptyModifierListIsKept() {
	source := testutils.ItemMap(s.T(), testutils.DragonDaggerJSON)
	sw := source[items.KeySpecialWeapon].(map[string]any)
	sw[items.KeySpecialDamageModifiers] = []any{}
	sw[items.KeySpecialAttackRollModifiers] = nil

	r, err := items.FromJSON(source)
	s.Require().NoError(err)
	s.Equal(items.Modifiers{}, r.SpecialWeapon.SpecialDamageModifiers)
	s.Nil(r.SpecialWeapon.SpecialAttackRollModifiers)

	flat := r.ConstructJSON()[items.FieldSpecialWeapon].(map[string]any)
	s.Equal([]any{}, flat[items.FieldSpecialDamageModifiers])
	s.Nil(flat[items.FieldSpecialAttackRollModifiers])

	s.jsonEqual(source, toSourceKeys(r.ConstructJSON()))
}

func (s *ItemRecordTestSuite) TestEmptySubRecordsAreAbsent() {
	obj := testutils.ItemMap(s.T(), testutils.RuneFullHelmJSON)
	obj[items.KeyWeapon] = map[string]any{}
	obj[items.KeySpecialWeapon] = map[string]any{}

	r, err := items.FromJSON(obj)
	s.Require().NoError(err)
	s.Nil(r.Weapon)
	s.Nil(r.SpecialWeapon)
}

func (s *ItemRecordTestSuite) TestMalformedInput() {
	testCases := []struct {
		name    string
		fixture string
		mutate  func(obj map[string]any)
		field   string
		message string
	}{
		{
			name:    "equipment missing for equipable item",
			fixture: testutils.RuneFullHelmJSON,
			mutate:  func(obj map[string]any) { delete(obj, "equipment") },
			field:   "equipment",
			message: "is required when equipable_by_player is true",
		},
		{
			name:    "equipment null for equipable item",
			fixture: testutils.RuneFullHelmJSON,
			mutate:  func(obj map[string]any) { obj["equipment"] = nil },
			field:   "equipment",
			message: "is required when equipable_by_player is true",
		},
		{
			name:    "equipment on item players cannot equip",
			fixture: testutils.RuneFullHelmJSON,
			mutate:  func(obj map[string]any) { obj["equipable_by_player"] = false },
			field:   "equipment",
			message: "must be null when equipable_by_player is false",
		},
		{
			name:    "equipment not an object",
			fixture: testutils.RuneFullHelmJSON,
			mutate:  func(obj map[string]any) { obj["equipment"] = "helm" },
			field:   "equipment",
			message: "expected object, got string",
		},
		{
			name:    "equipment missing a bonus",
			fixture: testutils.RuneFullHelmJSON,
			mutate: func(obj map[string]any) {
				delete(obj["equipment"].(map[string]any), "prayer")
			},
			field:   "equipment.prayer",
			message: "is required",
		},
		{
			name:    "bad requirement level",
			fixture: testutils.RuneFullHelmJSON,
			mutate: func(obj map[string]any) {
				obj["equipment"].(map[string]any)["requirements"] = map[string]any{"defence": "forty"}
			},
			field:   "equipment.requirements.defence",
			message: "expected integer, got string",
		},
		{
			name:    "weapon on item players cannot equip",
			fixture: testutils.CoinsJSON,
			mutate: func(obj map[string]any) {
				obj["weapon"] = map[string]any{"attack_speed": 4, "weapon_type": "whip", "stances": []any{}}
			},
			field:   "weapon",
			message: "requires equipable_by_player",
		},
		{
			name:    "stance missing combat style",
			fixture: testutils.AbyssalWhipJSON,
			mutate: func(obj map[string]any) {
				stances := obj["weapon"].(map[string]any)["stances"].([]any)
				delete(stances[0].(map[string]any), "combat_style")
			},
			field:   "weapon.stances.0.combat_style",
			message: "is required",
		},
		{
			name:    "special weapon without weapon",
			fixture: testutils.DragonDaggerJSON,
			mutate:  func(obj map[string]any) { obj["weapon"] = nil },
			field:   "special_weapon",
			message: "requires weapon",
		},
		{
			name:    "special weapon missing modifier list",
			fixture: testutils.DragonDaggerJSON,
			mutate: func(obj map[string]any) {
				delete(obj["special weapon"].(map[string]any), "special damage modifiers")
			},
			field:   "special weapon.special damage modifiers",
			message: "is required",
		},
		{
			name:    "bad modifier value",
			fixture: testutils.DragonDaggerJSON,
			mutate: func(obj map[string]any) {
				mods := obj["special weapon"].(map[string]any)["special attack roll modifiers"].([]any)
				mods[0].(map[string]any)["value"] = true
			},
			field:   "special weapon.special attack roll modifiers.0.value",
			message: "expected number, got boolean",
		},
		{
			name:    "unknown key",
			fixture: testutils.CoinsJSON,
			mutate:  func(obj map[string]any) { obj["colour"] = "gold" },
			field:   "colour",
			message: "is not a recognized field",
		},
		{
			name:    "missing required scalar",
			fixture: testutils.CoinsJSON,
			mutate:  func(obj map[string]any) { delete(obj, "icon") },
			field:   "icon",
			message: "is required",
		},
		{
			name:    "non-integral cost",
			fixture: testutils.CoinsJSON,
			mutate:  func(obj map[string]any) { obj["cost"] = json.Number("1.5") },
			field:   "cost",
			message: "expected integer, got 1.5",
		},
		{
			name:    "null in a non-null field",
			fixture: testutils.CoinsJSON,
			mutate:  func(obj map[string]any) { obj["stackable"] = nil },
			field:   "stackable",
			message: "expected boolean, got null",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			obj := testutils.ItemMap(s.T(), tc.fixture)
			tc.mutate(obj)

			r, err := items.FromJSON(obj)
			s.Require().Error(err)
			s.Nil(r)
			s.True(errors.IsShapeMismatch(err))
			s.Contains(errors.FieldErrors(err)[tc.field], tc.message)
		})
	}
}

func (s *ItemRecordTestSuite) TestErrorsAreReportedTogether() {
	obj := testutils.ItemMap(s.T(), testutils.CoinsJSON)
	delete(obj, "name")
	obj["members"] = "yes"
	obj["colour"] = "gold"

	_, err := items.FromJSON(obj)
	s.Require().Error(err)

	fields := errors.FieldErrors(err)
	s.Len(fields, 3)
	s.Contains(fields, "name")
	s.Contains(fields, "members")
	s.Contains(fields, "colour")
	s.Equal(testutils.CoinsID, errors.GetMeta(err)["item_id"])
	s.Contains(err.Error(), "invalid item 995")
}

func (s *ItemRecordTestSuite) TestFromJSONNil() {
	_, err := items.FromJSON(nil)
	s.Require().Error(err)
	s.True(errors.IsShapeMismatch(err))
}

func (s *ItemRecordTestSuite) TestValidate() {
	s.Run("valid records pass", func() {
		s.NoError(builders.NewItemRecordBuilder().Build().Validate())
		s.NoError(builders.NewItemRecordBuilder().WithSpecialWeapon(builders.DefaultSpecialWeapon()).Build().Validate())
	})

	s.Run("equipment flag and stats must agree", func() {
		r := builders.NewItemRecordBuilder().WithEquipment(builders.DefaultEquipment("body")).Build()
		r.Equipment = nil

		err := r.Validate()
		s.Require().Error(err)
		s.Contains(errors.FieldErrors(err), items.KeyEquipment)
	})

	s.Run("special weapon requires weapon", func() {
		r := builders.NewItemRecordBuilder().WithSpecialWeapon(builders.DefaultSpecialWeapon()).Build()
		r.Weapon = nil

		err := r.Validate()
		s.Require().Error(err)
		s.Equal([]string{"requires weapon"}, errors.FieldErrors(err)[items.FieldSpecialWeapon])
	})
}
