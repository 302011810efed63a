package cmd

import (
	"errors"
	"os"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/formatting"
	"github.com/pojntfx/ustar/internal/logging"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/inventory"
	"github.com/pojntfx/ustar/pkg/recovery"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	recordFlag = "record"
	nameFlag   = "name"
	toFlag     = "to"
)

var errRecordNegative = errors.New("record can not be negative")

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Extract the entry at a known header record of tape or tar file",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		if viper.GetInt64(recordFlag) < 0 {
			return errRecordNegative
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

		record := viper.GetInt64(recordFlag)
		if name := viper.GetString(nameFlag); name != "" {
			hdr, err := inventory.Locate(
				cmd.Context(),
				config.MetadataConfig{
					Metadata: viper.GetString(metadataFlag),
				},
				name,
				nil,
			)
			if err != nil {
				return err
			}

			record = hdr.Record
		}

		return recovery.Fetch(
			cmd.Context(),
			reader,
			pipes,
			crypto,
			headerConfig(),
			config.ExtractConfig{
				FileSystem: extractFileSystem(viper.GetString(directoryFlag)),
				Preserve:   viper.GetBool(preserveFlag),
			},

			record,
			viper.GetString(toFlag),

			logging.NewJSONLogger(verbose),
			func(event *config.HeaderEvent) {
				if verbose {
					printHeaderEvent(event)
				}
			},
		)
	},
}

func printHeaderEvent(event *config.HeaderEvent) {
	if event.Stray {
		return
	}

	_ = formatting.PrintCSV(os.Stdout, append([]string{event.Type}, converters.ConfigHeaderToCSV(event.Header)...))
}

func init() {
	fetchCmd.PersistentFlags().Int64P(recordFlag, "k", 0, "Record of the header to fetch")
	fetchCmd.PersistentFlags().StringP(nameFlag, "n", "", "Full path of the entry to fetch, looked up in the index instead of using a record")
	fetchCmd.PersistentFlags().StringP(metadataFlag, "m", defaultMetadataPath(), "Metadata database to look the name up in")
	fetchCmd.PersistentFlags().StringP(toFlag, "t", "", "Path to extract to (full path of the entry by default)")
	fetchCmd.PersistentFlags().StringP(directoryFlag, "C", "", "Directory to extract to (current directory by default)")
	fetchCmd.PersistentFlags().BoolP(preserveFlag, "P", false, "Apply permission bits and modification time from the archive")

	viper.AutomaticEnv()

	rootCmd.AddCommand(fetchCmd)
}
