package cmd

import (
	"io"
	"os"

	"github.com/pojntfx/ustar/internal/check"
	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/formatting"
	"github.com/pojntfx/ustar/internal/logging"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/operations"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	formatFlag = "format"
)

var listCmd = &cobra.Command{
	Use:     "list [member...]",
	Aliases: []string{"t", "ls"},
	Short:   "List regular files in tape or tar file",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		if err := check.CheckListFormat(viper.GetString(formatFlag)); err != nil {
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

		csv := viper.GetString(formatFlag) == config.ListFormatCSVKey
		if csv {
			if err := formatting.PrintCSV(os.Stdout, formatting.HeaderCSV); err != nil {
				return err
			}
		}

		ops := operations.NewOperations(
			pipes,
			crypto,
			headerConfig(),

			logging.NewJSONLogger(viper.GetBool(verboseFlag)),
			printListed(os.Stdout, csv),
		)

		return ops.List(cmd.Context(), reader, args)
	},
}

// printListed prints each listed entry as its full path or as a CSV row.
// Stray zero records show up as an empty line in plain listings.
func printListed(w io.Writer, csv bool) func(event *config.HeaderEvent) {
	return func(event *config.HeaderEvent) {
		if csv {
			if !event.Stray {
				_ = formatting.PrintCSV(w, converters.ConfigHeaderToCSV(event.Header))
			}

			return
		}

		_ = formatting.PrintName(w, event.Header.Name)
	}
}

func init() {
	listCmd.PersistentFlags().String(formatFlag, config.ListFormatNameKey, "Listing format (one of name|csv)")

	viper.AutomaticEnv()

	rootCmd.AddCommand(listCmd)
}
