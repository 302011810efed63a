package cmd

import (
	"os"
	"path/filepath"

	"github.com/pojntfx/ustar/internal/logging"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/recovery"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	metadataFlag  = "metadata"
	overwriteFlag = "overwrite"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the headers of tape or tar file",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		return checkArchiveFlags()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, pipes, crypto, closer, err := openArchive()
		if err != nil {
			return err
		}
		defer closer.Close()

		verbose := viper.GetBool(verboseFlag)

		return recovery.Index(
			cmd.Context(),
			reader,
			config.MetadataConfig{
				Metadata: viper.GetString(metadataFlag),
			},
			pipes,
			crypto,
			headerConfig(),
			viper.GetBool(overwriteFlag),

			logging.NewJSONLogger(verbose),
			func(event *config.HeaderEvent) {
				if verbose {
					printHeaderEvent(event)
				}
			},
		)
	},
}

// defaultMetadataPath is the index database used if none is given.
func defaultMetadataPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}

	return filepath.Join(home, ".local", "share", "ustar", "var", "lib", "ustar", "metadata.sqlite")
}

func init() {
	indexCmd.PersistentFlags().StringP(metadataFlag, "m", defaultMetadataPath(), "Metadata database to use")
	indexCmd.PersistentFlags().BoolP(overwriteFlag, "o", false, "Remove all previously indexed headers first")

	viper.AutomaticEnv()

	rootCmd.AddCommand(indexCmd)
}
