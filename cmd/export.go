package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gallery-index/pkg/services"
)

// newExportCmd creates a new command for exporting gallery data
func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [format]",
		Short: "Export gallery data",
		Long: `Print the gallery manifest in the specified format without writing it to disk.
Currently supported formats: json.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format := "json"
			if len(args) > 0 {
				format = args[0]
			}
			return exportData(cmd, format)
		},
	}
}

// exportData prints the manifest in the specified format
func exportData(cmd *cobra.Command, format string) error {
	if format != "json" {
		return fmt.Errorf("unsupported export format: %s (supported formats: json)", format)
	}

	// Diagnostics go to stderr so stdout stays valid JSON.
	svc, err := newService(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	gallery, err := svc.BuildGallery(cmd.Context())
	if err != nil {
		return err
	}

	data, err := services.EncodeManifest(gallery)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
