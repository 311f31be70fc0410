package cmd

import (
	"github.com/spf13/cobra"
)

// newGenerateCmd creates a new command for writing the gallery manifest
func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Scan the photos directory and write the gallery manifest",
		Long: `Scan every category folder under the photos directory and overwrite the manifest.
A missing photos directory is reported and produces an empty manifest.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}
}

func runGenerate(cmd *cobra.Command) error {
	svc, err := newService(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	_, _, err = svc.Generate(cmd.Context())
	return err
}
