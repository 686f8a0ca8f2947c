package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/osrs-items/internal/entities/items"
	"github.com/KirkDiggler/osrs-items/internal/errors"
	itemsrepo "github.com/KirkDiggler/osrs-items/internal/repositories/items"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a converted item",
	Long:  `Prints a summary of one item from the item directory: flags, equipment bonuses, weapon stances and special attack modifiers.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the stored JSON instead of a summary")
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository()
	defer closeRepo()
	if err != nil {
		return err
	}

	out, err := repo.Get(cmd.Context(), itemsrepo.GetInput{ID: id})
	if err != nil {
		return err
	}

	if showJSON {
		data, err := out.Record.Encode(true)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	writeSummary(cmd.OutOrStdout(), out.Record)
	return nil
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, errors.InvalidArgumentf("invalid item ID %q", arg)
	}
	return id, nil
}

// writeSummary prints a human readable view of r
func writeSummary(w io.Writer, r *items.ItemRecord) {
	fmt.Fprintf(w, "%s (%d)\n", r.Name, r.ID)
	if r.Examine != nil {
		fmt.Fprintf(w, "  %s\n", *r.Examine)
	}

	var flags []string
	if r.Members {
		flags = append(flags, "members")
	}
	if r.Tradeable != nil && *r.Tradeable {
		flags = append(flags, "tradeable")
	}
	if r.TradeableOnGE {
		flags = append(flags, "grand exchange")
	}
	if r.Stackable {
		flags = append(flags, "stackable")
	}
	if r.QuestItem {
		flags = append(flags, "quest item")
	}
	if len(flags) > 0 {
		fmt.Fprintf(w, "  Flags: %s\n", strings.Join(flags, ", "))
	}
	fmt.Fprintf(w, "  Value: %d (high alch %d, low alch %d)\n", r.Cost, r.HighAlch, r.LowAlch)
	if r.BuyLimit != nil {
		fmt.Fprintf(w, "  Buy limit: %d\n", *r.BuyLimit)
	}

	if e := r.Equipment; e != nil {
		fmt.Fprintf(w, "\nEquipment (%s)\n", e.Slot)
		fmt.Fprintf(w, "  Attack:   stab %+d  slash %+d  crush %+d  magic %+d  ranged %+d\n",
			e.AttackStab, e.AttackSlash, e.AttackCrush, e.AttackMagic, e.AttackRanged)
		fmt.Fprintf(w, "  Defence:  stab %+d  slash %+d  crush %+d  magic %+d  ranged %+d\n",
			e.DefenceStab, e.DefenceSlash, e.DefenceCrush, e.DefenceMagic, e.DefenceRanged)
		fmt.Fprintf(w, "  Other:    melee strength %+d  ranged strength %+d  magic damage %+d%%  prayer %+d\n",
			e.MeleeStrength, e.RangedStrength, e.MagicDamage, e.Prayer)
		for _, skill := range e.RequiredSkills() {
			fmt.Fprintf(w, "  Requires %s %d\n", skill, e.Requirements[skill])
		}
	}

	if wp := r.Weapon; wp != nil {
		fmt.Fprintf(w, "\nWeapon (%s, speed %d)\n", wp.WeaponType, wp.AttackSpeed)
		for _, s := range wp.Stances {
			fmt.Fprintf(w, "  %-12s %s\n", s.CombatStyle, joinSet(s.AttackType, s.AttackStyle, s.Experience, s.Boosts))
		}
	}

	if sw := r.SpecialWeapon; sw != nil {
		fmt.Fprintf(w, "\nSpecial attack: %s (%d%% energy)\n", sw.Name, sw.EnergyUsed)
		fmt.Fprintf(w, "  %s\n", sw.Description)
		writeModifiers(w, "Accuracy", sw.SpecialAttackRollModifiers)
		writeModifiers(w, "Damage", sw.SpecialDamageModifiers)
	}
}

func writeModifiers(w io.Writer, label string, mods items.Modifiers) {
	for _, m := range mods {
		fmt.Fprintf(w, "  %s x%s\n", label, m)
	}
}

func joinSet(values ...*string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil {
			parts = append(parts, *v)
		}
	}
	return strings.Join(parts, " / ")
}
