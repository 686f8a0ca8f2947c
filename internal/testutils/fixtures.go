// Package testutils provides shared fixtures for tests
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/osrs-items/internal/entities/items/jsonmap"
)

// Item IDs of the fixtures below
const (
	CoinsID        = 995
	RuneFullHelmID = 1163
	DragonDaggerID = 1215
	AbyssalWhipID  = 4151
)

// CoinsJSON is a stackable, non-equipable item
const CoinsJSON = `{
    "id": 995,
    "name": "Coins",
    "last_updated": "2021-08-12",
    "incomplete": false,
    "members": false,
    "tradeable": true,
    "tradeable_on_ge": false,
    "stackable": true,
    "stacked": false,
    "noted": false,
    "noteable": false,
    "linked_id_item": null,
    "linked_id_noted": null,
    "linked_id_placeholder": null,
    "placeholder": false,
    "equipable": false,
    "equipable_by_player": false,
    "equipable_weapon": false,
    "cost": 1,
    "lowalch": 0,
    "highalch": 0,
    "weight": 0.0,
    "buy_limit": null,
    "quest_item": false,
    "release_date": "2001-01-04",
    "duplicate": false,
    "examine": "Lovely money!",
    "icon": "iVBORw0KGgoAAAANSUhEUgAAACQAAAAgCAYAAAB6kdqOAAAA",
    "wiki_name": "Coins",
    "wiki_url": "https://oldschool.runescape.wiki/w/Coins",
    "equipment": null,
    "weapon": null
}`

// RuneFullHelmJSON is equipable armour without weapon stats
const RuneFullHelmJSON = `{
    "id": 1163,
    "name": "Rune full helm",
    "last_updated": "2021-08-12",
    "incomplete": false,
    "members": false,
    "tradeable": true,
    "tradeable_on_ge": true,
    "stackable": false,
    "stacked": false,
    "noted": false,
    "noteable": true,
    "linked_id_item": null,
    "linked_id_noted": 1164,
    "linked_id_placeholder": 16148,
    "placeholder": false,
    "equipable": true,
    "equipable_by_player": true,
    "equipable_weapon": false,
    "cost": 35200,
    "lowalch": 14080,
    "highalch": 21120,
    "weight": 2.721,
    "buy_limit": 70,
    "quest_item": false,
    "release_date": "2001-01-04",
    "duplicate": false,
    "examine": "A full face helmet.",
    "icon": "iVBORw0KGgoAAAANSUhEUgAAACQAAAAgCAYAAAB6kdqOAAAB",
    "wiki_name": "Rune full helm",
    "wiki_url": "https://oldschool.runescape.wiki/w/Rune_full_helm",
    "equipment": {
        "attack_stab": 0,
        "attack_slash": 0,
        "attack_crush": 0,
        "attack_magic": -6,
        "attack_ranged": -2,
        "defence_stab": 30,
        "defence_slash": 32,
        "defence_crush": 27,
        "defence_magic": -1,
        "defence_ranged": 30,
        "melee_strength": 0,
        "ranged_strength": 0,
        "magic_damage": 0,
        "prayer": 0,
        "slot": "head",
        "requirements": {"defence": 40}
    },
    "weapon": null
}`

// AbyssalWhipJSON is a weapon without special attack data
const AbyssalWhipJSON = `{
    "id": 4151,
    "name": "Abyssal whip",
    "last_updated": "2021-08-12",
    "incomplete": false,
    "members": true,
    "tradeable": true,
    "tradeable_on_ge": true,
    "stackable": false,
    "stacked": false,
    "noted": false,
    "noteable": true,
    "linked_id_item": null,
    "linked_id_noted": 4152,
    "linked_id_placeholder": 14032,
    "placeholder": false,
    "equipable": true,
    "equipable_by_player": true,
    "equipable_weapon": true,
    "cost": 120001,
    "lowalch": 48000,
    "highalch": 72000,
    "weight": 0.453,
    "buy_limit": 70,
    "quest_item": false,
    "release_date": "2005-01-26",
    "duplicate": false,
    "examine": "A weapon from the abyss.",
    "icon": "iVBORw0KGgoAAAANSUhEUgAAACQAAAAgCAYAAAB6kdqOAAAC",
    "wiki_name": "Abyssal whip",
    "wiki_url": "https://oldschool.runescape.wiki/w/Abyssal_whip",
    "equipment": {
        "attack_stab": 0,
        "attack_slash": 82,
        "attack_crush": 0,
        "attack_magic": 0,
        "attack_ranged": 0,
        "defence_stab": 0,
        "defence_slash": 0,
        "defence_crush": 0,
        "defence_magic": 0,
        "defence_ranged": 0,
        "melee_strength": 82,
        "ranged_strength": 0,
        "magic_damage": 0,
        "prayer": 0,
        "slot": "weapon",
        "requirements": {"attack": 70}
    },
    "weapon": {
        "attack_speed": 4,
        "weapon_type": "whip",
        "stances": [
            {"combat_style": "flick", "attack_type": "slash", "attack_style": "accurate", "experience": "attack", "boosts": null},
            {"combat_style": "lash", "attack_type": "slash", "attack_style": "controlled", "experience": "shared", "boosts": null},
            {"combat_style": "deflect", "attack_type": "slash", "attack_style": "defensive", "experience": "defence", "boosts": null}
        ]
    },
    "special weapon": null
}`

// DragonDaggerJSON is a weapon with a special attack and modifier lists
const DragonDaggerJSON = `{
    "id": 1215,
    "name": "Dragon dagger",
    "last_updated": "2021-08-12",
    "incomplete": false,
    "members": true,
    "tradeable": true,
    "tradeable_on_ge": true,
    "stackable": false,
    "stacked": false,
    "noted": false,
    "noteable": true,
    "linked_id_item": null,
    "linked_id_noted": 1216,
    "linked_id_placeholder": 14046,
    "placeholder": false,
    "equipable": true,
    "equipable_by_player": true,
    "equipable_weapon": true,
    "cost": 30000,
    "lowalch": 12000,
    "highalch": 18000,
    "weight": 0.453,
    "buy_limit": 70,
    "quest_item": false,
    "release_date": "2003-02-24",
    "duplicate": false,
    "examine": "A powerful dagger & it's sharp.",
    "icon": "iVBORw0KGgoAAAANSUhEUgAAACQAAAAgCAYAAAB6kdqOAAAD",
    "wiki_name": "Dragon dagger",
    "wiki_url": "https://oldschool.runescape.wiki/w/Dragon_dagger",
    "equipment": {
        "attack_stab": 40,
        "attack_slash": 25,
        "attack_crush": -4,
        "attack_magic": 1,
        "attack_ranged": 0,
        "defence_stab": 0,
        "defence_slash": 1,
        "defence_crush": 0,
        "defence_magic": 1,
        "defence_ranged": 0,
        "melee_strength": 40,
        "ranged_strength": 0,
        "magic_damage": 0,
        "prayer": 0,
        "slot": "weapon",
        "requirements": {"attack": 60}
    },
    "weapon": {
        "attack_speed": 4,
        "weapon_type": "stab_sword",
        "stances": [
            {"combat_style": "stab", "attack_type": "stab", "attack_style": "accurate", "experience": "attack", "boosts": null},
            {"combat_style": "lunge", "attack_type": "stab", "attack_style": "aggressive", "experience": "strength", "boosts": null},
            {"combat_style": "slash", "attack_type": "slash", "attack_style": "aggressive", "experience": "strength", "boosts": null},
            {"combat_style": "block", "attack_type": "stab", "attack_style": "defensive", "experience": "defence", "boosts": null}
        ]
    },
    "special weapon": {
        "name": "Puncture",
        "energy_used": 25,
        "description": "Hits twice with increased accuracy and damage.",
        "attack_roll_damage_type": null,
        "defence_roll_damage_type": "slash",
        "special attack roll modifiers": [
            {"value": 1.15, "comment": null}
        ],
        "special damage modifiers": [
            {"value": 1.15, "comment": "applied to each of the two hits"},
            {"value": 2, "comment": "two hits"}
        ]
    }
}`

// ItemMap parses one of the fixtures into a fresh generic object
func ItemMap(t testing.TB, text string) map[string]any {
	t.Helper()

	obj, err := jsonmap.ParseObject([]byte(text))
	require.NoError(t, err, "fixture must be valid JSON")
	return obj
}

// AllItemFixtures returns every fixture keyed by item ID
func AllItemFixtures() map[int]string {
	return map[int]string{
		CoinsID:        CoinsJSON,
		RuneFullHelmID: RuneFullHelmJSON,
		DragonDaggerID: DragonDaggerJSON,
		AbyssalWhipID:  AbyssalWhipJSON,
	}
}
