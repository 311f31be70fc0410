package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"gallery-index/pkg/services"
)

// newPublishCmd creates a new command for uploading the manifest to Cloud Storage
func newPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Generate the manifest and upload it to the bucket",
		Long: `Generate the gallery manifest, write it locally and upload a copy to
gs://BUCKET_NAME/<bucket_object> so a hosted front end can read it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return publishManifest(cmd)
		},
	}
}

func publishManifest(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	svc, err := newService(out)
	if err != nil {
		return err
	}

	gallery, _, err := svc.Generate(cmd.Context())
	if err != nil {
		return err
	}

	data, err := services.EncodeManifest(gallery)
	if err != nil {
		return err
	}

	url, err := svc.PublishManifest(cmd.Context(), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Published %s\n", url)
	return nil
}
