package items

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
	"github.com/KirkDiggler/osrs-items/internal/errors"
)

// WeaponStats holds the combat attributes of a weapon
type WeaponStats struct {
	AttackSpeed int      `json:"attack_speed"`
	WeaponType  string   `json:"weapon_type"`
	Stances     []Stance `json:"stances"`
}

// MarshalJSON writes a nil stance list as [] to match ConstructJSON
func (w WeaponStats) MarshalJSON() ([]byte, error) {
	type plain WeaponStats
	p := plain(w)
	if p.Stances == nil {
		p.Stances = []Stance{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Stance is one selectable combat option of a weapon
type Stance struct {
	CombatStyle string  `json:"combat_style"`
	AttackType  *string `json:"attack_type"`
	AttackStyle *string `json:"attack_style"`
	Experience  *string `json:"experience"`
	Boosts      *string `json:"boosts"`
}

// WeaponFromJSON builds WeaponStats field for field from obj
func WeaponFromJSON(obj map[string]any) (*WeaponStats, error) {
	d := jsonmap.NewDecoder(obj)

	w := &WeaponStats{
		AttackSpeed: d.Int("attack_speed"),
		WeaponType:  d.String("weapon_type"),
	}

	stances := d.List("stances")
	w.Stances = make([]Stance, 0, len(stances))
	for i, raw := range stances {
		s, err := decodeStance(raw)
		if err != nil {
			d.Merge("stances."+strconv.Itoa(i), err)
			continue
		}
		w.Stances = append(w.Stances, s)
	}

	if err := d.Err(); err != nil {
		return nil, err
	}
	return w, nil
}

// ConstructJSON flattens the stats to a plain mapping
func (w *WeaponStats) ConstructJSON() map[string]any {
	stances := make([]any, len(w.Stances))
	for i, s := range w.Stances {
		stances[i] = s.ConstructJSON()
	}

	return map[string]any{
		"attack_speed": w.AttackSpeed,
		"weapon_type":  w.WeaponType,
		"stances":      stances,
	}
}

// ConstructJSON flattens the stance to a plain mapping
func (s Stance) ConstructJSON() map[string]any {
	return map[string]any{
		"combat_style": s.CombatStyle,
		"attack_type":  optString(s.AttackType),
		"attack_style": optString(s.AttackStyle),
		"experience":   optString(s.Experience),
		"boosts":       optString(s.Boosts),
	}
}

func decodeStance(raw any) (Stance, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return Stance{}, errors.ShapeMismatchf("expected object, got %s", jsonmap.TypeName(raw))
	}

	d := jsonmap.NewDecoder(obj)
	s := Stance{
		CombatStyle: d.String("combat_style"),
		AttackType:  d.OptString("attack_type"),
		AttackStyle: d.OptString("attack_style"),
		Experience:  d.OptString("experience"),
		Boosts:      d.OptString("boosts"),
	}

	if err := d.Err(); err != nil {
		return Stance{}, err
	}
	return s, nil
}

func decodeWeapon(raw any) (*WeaponStats, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, errors.ShapeMismatchf("expected object, got %s", jsonmap.TypeName(raw))
	}
	return WeaponFromJSON(obj)
}
