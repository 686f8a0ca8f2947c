package items

import (
	"sort"

	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

// EquipmentStats holds the bonuses of an item a player can equip
type EquipmentStats struct {
	AttackStab     int            `json:"attack_stab"`
	AttackSlash    int            `json:"attack_slash"`
	AttackCrush    int            `json:"attack_crush"`
	AttackMagic    int            `json:"attack_magic"`
	AttackRanged   int            `json:"attack_ranged"`
	DefenceStab    int            `json:"defence_stab"`
	DefenceSlash   int            `json:"defence_slash"`
	DefenceCrush   int            `json:"defence_crush"`
	DefenceMagic   int            `json:"defence_magic"`
	DefenceRanged  int            `json:"defence_ranged"`
	MeleeStrength  int            `json:"melee_strength"`
	RangedStrength int            `json:"ranged_strength"`
	MagicDamage    int            `json:"magic_damage"`
	Prayer         int            `json:"prayer"`
	Slot           string         `json:"slot"`
	Requirements   map[string]int `json:"requirements"` // skill -> level
}

// EquipmentFromJSON builds EquipmentStats field for field from obj
func EquipmentFromJSON(obj map[string]any) (*EquipmentStats, error) {
	d := jsonmap.NewDecoder(obj)

	e := &EquipmentStats{
		AttackStab:     d.Int("attack_stab"),
		AttackSlash:    d.Int("attack_slash"),
		AttackCrush:    d.Int("attack_crush"),
		AttackMagic:    d.Int("attack_magic"),
		AttackRanged:   d.Int("attack_ranged"),
		DefenceStab:    d.Int("defence_stab"),
		DefenceSlash:   d.Int("defence_slash"),
		DefenceCrush:   d.Int("defence_crush"),
		DefenceMagic:   d.Int("defence_magic"),
		DefenceRanged:  d.Int("defence_ranged"),
		MeleeStrength:  d.Int("melee_strength"),
		RangedStrength: d.Int("ranged_strength"),
		MagicDamage:    d.Int("magic_damage"),
		Prayer:         d.Int("prayer"),
		Slot:           d.String("slot"),
	}

	if reqs := d.OptObject("requirements"); reqs != nil {
		e.Requirements = make(map[string]int, len(reqs))
		for skill, raw := range reqs {
			level, err := jsonmap.ToInt(raw)
			if err != nil {
				d.Fail("requirements."+skill, err.Error())
				continue
			}
			e.Requirements[skill] = level
		}
	}

	if err := d.Err(); err != nil {
		return nil, err
	}
	return e, nil
}

// ConstructJSON flattens the stats to a plain mapping
func (e *EquipmentStats) ConstructJSON() map[string]any {
	var reqs any
	if e.Requirements != nil {
		m := make(map[string]any, len(e.Requirements))
		for skill, level := range e.Requirements {
			m[skill] = level
		}
		reqs = m
	}

	return map[string]any{
		"attack_stab":     e.AttackStab,
		"attack_slash":    e.AttackSlash,
		"attack_crush":    e.AttackCrush,
		"attack_magic":    e.AttackMagic,
		"attack_ranged":   e.AttackRanged,
		"defence_stab":    e.DefenceStab,
		"defence_slash":   e.DefenceSlash,
		"defence_crush":   e.DefenceCrush,
		"defence_magic":   e.DefenceMagic,
		"defence_ranged":  e.DefenceRanged,
		"melee_strength":  e.MeleeStrength,
		"ranged_strength": e.RangedStrength,
		"magic_damage":    e.MagicDamage,
		"prayer":          e.Prayer,
		"slot":            e.Slot,
		"requirements":    reqs,
	}
}

// RequiredSkills returns the skills with a level requirement, sorted by name
func (e *EquipmentStats) RequiredSkills() []string {
	skills := make([]string, 0, len(e.Requirements))
	for skill := range e.Requirements {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

func decodeEquipment(raw any) (*EquipmentStats, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.ShapeMismatchf("expected object, got %s", jsonmap.TypeName(raw))
	}
	return EquipmentFromJSON(obj)
}
