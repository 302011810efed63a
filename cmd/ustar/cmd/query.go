package cmd

import (
	"os"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/formatting"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/inventory"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	expressionFlag = "expression"
)

var queryCmd = &cobra.Command{
	Use:     "query",
	Aliases: []string{"q", "find"},
	Short:   "Query the indexed headers of tape or tar file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		if err := formatting.PrintCSV(os.Stdout, formatting.HeaderCSV); err != nil {
			return err
		}

		metadata := config.MetadataConfig{
			Metadata: viper.GetString(metadataFlag),
		}

		onHeader := func(hdr *config.Header) {
			_ = formatting.PrintCSV(os.Stdout, converters.ConfigHeaderToCSV(hdr))
		}

		if cmd.Flags().Changed(recordFlag) {
			_, err := inventory.Stat(cmd.Context(), metadata, viper.GetInt64(recordFlag), onHeader)

			return err
		}

		if expression := viper.GetString(expressionFlag); expression != "" {
			_, err := inventory.Find(cmd.Context(), metadata, expression, onHeader)

			return err
		}

		_, err := inventory.List(cmd.Context(), metadata, onHeader)

		return err
	},
}

func init() {
	queryCmd.PersistentFlags().StringP(metadataFlag, "m", defaultMetadataPath(), "Metadata database to use")
	queryCmd.PersistentFlags().StringP(expressionFlag, "x", "", "Regex to match the full path of indexed entries against")
	queryCmd.PersistentFlags().Int64P(recordFlag, "k", 0, "Only show the header indexed at this record")

	viper.AutomaticEnv()

	rootCmd.AddCommand(queryCmd)
}
