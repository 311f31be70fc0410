package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newListPhotosCmd creates a new command for listing every photo
func newListPhotosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-photos",
		Short: "List all photos",
		Long:  `List all photos organized by category with their derived titles.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listPhotos(cmd)
		},
	}
}

// listPhotos displays every category and its photos
func listPhotos(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	svc, err := newService(out)
	if err != nil {
		return err
	}

	gallery, err := svc.BuildGallery(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Photo Gallery:")
	fmt.Fprintln(out, "==============")

	names := gallery.CategoryNames()
	for _, name := range names {
		fmt.Fprintf(out, "Category: %s\n", name)
		for _, item := range gallery.Categories[name] {
			fmt.Fprintf(out, "  - %s\n", item.Title)
			fmt.Fprintf(out, "    Source: %s\n", item.Src)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "Total: %d photos across %d categories\n", gallery.TotalItems(), len(names))
	return nil
}
