package main

import (
	"fmt"

	"github.com/spf13/cobra"

	itemsrepo "github.com/KirkDiggler/osrs-items/internal/repositories/items"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List converted item IDs",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a converted item",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runList(cmd *cobra.Command, _ []string) error {
	repo, closeRepo, err := openRepository()
	defer closeRepo()
	if err != nil {
		return err
	}

	out, err := repo.List(cmd.Context(), itemsrepo.ListInput{})
	if err != nil {
		return err
	}

	for _, id := range out.IDs {
		fmt.Fprintln(cmd.OutOrStdout(), id)
	}
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	repo, closeRepo, err := openRepository()
	defer closeRepo()
	if err != nil {
		return err
	}

	if _, err := repo.Delete(cmd.Context(), itemsrepo.DeleteInput{ID: id}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted item %d\n", id)
	return nil
}
