package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newShowCategoryCmd creates a new command for showing category details
func newShowCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-category [name]",
		Short: "Show photos in a specific category",
		Long:  `Show detailed information about the photos in a category identified by its folder name.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showCategory(cmd, args[0])
		},
	}
}

// showCategory displays details about a specific category
func showCategory(cmd *cobra.Command, name string) error {
	out := cmd.OutOrStdout()
	svc, err := newService(out)
	if err != nil {
		return err
	}

	items, err := svc.GetCategory(cmd.Context(), name)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Category: %s\n", name)
	fmt.Fprintf(out, "Photos: %d\n", len(items))
	fmt.Fprintln(out, "================")

	for i, item := range items {
		fmt.Fprintf(out, "%d. %s\n", i+1, item.Title)
		fmt.Fprintf(out, "   Source: %s\n", item.Src)
		if item.Description != "" {
			fmt.Fprintf(out, "   Description: %s\n", item.Description)
		}
		fmt.Fprintln(out)
	}
	return nil
}
