package cmd

import (
	"io"
	"os"

	"github.com/pojntfx/ustar/internal/formatting"
	"github.com/pojntfx/ustar/internal/logging"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/operations"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	directoryFlag = "directory"
	preserveFlag  = "preserve"
)

var extractCmd = &cobra.Command{
	Use:     "extract [member...]",
	Aliases: []string{"x", "get"},
	Short:   "Extract regular files from tape or tar file",
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

		ops := operations.NewOperations(
			pipes,
			crypto,
			headerConfig(),

			logging.NewJSONLogger(verbose),
			echoExtracted(os.Stdout, verbose),
		)

		return ops.Extract(
			cmd.Context(),
			reader,
			config.ExtractConfig{
				FileSystem: extractFileSystem(viper.GetString(directoryFlag)),
				Preserve:   viper.GetBool(preserveFlag),
			},
			args,
		)
	},
}

// echoExtracted prints the path of each extracted entry if verbose is set.
// Stray zero records are echoed as an empty line, like in listings.
func echoExtracted(w io.Writer, verbose bool) func(event *config.HeaderEvent) {
	return func(event *config.HeaderEvent) {
		if verbose {
			_ = formatting.PrintName(w, event.Header.Name)
		}
	}
}

// extractFileSystem roots extracted paths at directory, or at the current
// working directory if it is empty.
func extractFileSystem(directory string) afero.Fs {
	if directory == "" {
		return afero.NewOsFs()
	}

	return afero.NewBasePathFs(afero.NewOsFs(), directory)
}

func init() {
	extractCmd.PersistentFlags().StringP(directoryFlag, "C", "", "Directory to extract to (current directory by default)")
	extractCmd.PersistentFlags().BoolP(preserveFlag, "P", false, "Apply permission bits and modification time from the archive")

	viper.AutomaticEnv()

	rootCmd.AddCommand(extractCmd)
}
