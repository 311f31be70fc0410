package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gallery-index/pkg/config"
	"gallery-index/pkg/logging"
	"gallery-index/pkg/services"
)

// Configuration flags
var (
	rootDir    string
	photosDir  string
	outputPath string
	configPath string
	bucketName string
	sourceName string
	verbose    bool
)

// serviceOptions are applied to every service the commands create
var serviceOptions []services.Option

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gallery-index",
		Short: "Gallery Index builds a JSON manifest of categorized photos",
		Long: `Gallery Index scans a photos directory whose subfolders are categories and writes
gallery.json listing every image with its path, a title derived from the filename and
an empty description. Run without a subcommand it generates the manifest.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetLevel(logging.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}

	// Define persistent flags that will be available for all commands
	rootCmd.PersistentFlags().StringVarP(&rootDir, "root", "r", "", "Set the GALLERY_ROOT repository root (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&photosDir, "photos-dir", "d", "", "Set the GALLERY_PHOTOS_DIR, relative to the root (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Set the GALLERY_OUTPUT manifest path, relative to the root (overrides environment variable)")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file path (default ./gallery.toml if present)")
	rootCmd.PersistentFlags().StringVarP(&bucketName, "bucket", "b", "", "Set the BUCKET_NAME (overrides environment variable)")
	rootCmd.PersistentFlags().StringVar(&sourceName, "source", "", "Set the GALLERY_SOURCE: local or gcs (overrides environment variable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Add commands to root
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newListCategoriesCmd())
	rootCmd.AddCommand(newListPhotosCmd())
	rootCmd.AddCommand(newShowCategoryCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newPublishCmd())

	return rootCmd
}

// LoadConfig loads configuration with respect to command line flags
func LoadConfig() (*config.Config, error) {
	// Set environment variables from flags if provided
	overrides := map[string]string{
		"GALLERY_ROOT":       rootDir,
		"GALLERY_PHOTOS_DIR": photosDir,
		"GALLERY_OUTPUT":     outputPath,
		"BUCKET_NAME":        bucketName,
		"GALLERY_SOURCE":     sourceName,
	}
	for key, value := range overrides {
		if value != "" {
			os.Setenv(key, value)
		}
	}

	// Load configuration from file and environment variables (potentially set above)
	return config.Load(configPath)
}

// newService loads the configuration and builds a service that reports to out
func newService(out io.Writer) (*services.Service, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return services.NewService(cfg, out, serviceOptions...), nil
}
