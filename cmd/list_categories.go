package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// newListCategoriesCmd creates a new command for listing categories
func newListCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-categories",
		Short: "List all photo categories",
		Long:  `List all photo categories with the number of photos in each. Nothing is written.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listCategories(cmd)
		},
	}
}

// listCategories displays all categories and their photo counts
func listCategories(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	svc, err := newService(out)
	if err != nil {
		return err
	}

	gallery, err := svc.BuildGallery(cmd.Context())
	if err != nil {
		return err
	}

	names := gallery.CategoryNames()
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, []string{name, strconv.Itoa(len(gallery.Categories[name]))})
	}

	fmt.Fprintln(out, renderTable([]string{"Category", "Photos"}, rows, []columnAlignment{alignLeft, alignRight}, shouldColorize(out)))
	fmt.Fprintf(out, "Total: %d photos across %d categories\n", gallery.TotalItems(), len(names))
	return nil
}
