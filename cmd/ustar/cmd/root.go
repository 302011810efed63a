package cmd

import (
	"os"
	"strings"

	"github.com/pojntfx/ustar/internal/logging"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/volatiletech/sqlboiler/v4/boil"
)

const (
	fileFlag           = "file"
	verboseFlag        = "verbose"
	compressionFlag    = "compression"
	encryptionFlag     = "encryption"
	identityFlag       = "identity"
	passwordFlag       = "password"
	signatureFlag      = "signature"
	recipientFlag      = "recipient"
	signatureFileFlag  = "signature-file"
	verifyChecksumFlag = "verify-checksum"
	recordSizeFlag     = "record-size"

	// Exit status for any fatal condition, including missing members
	fatalExitCode = 2
)

var rootCmd = &cobra.Command{
	Use:   "ustar",
	Short: "Read and extract ustar archives",
	Long: `ustar lists and extracts regular files from ustar archives on tapes, in tar files or on standard input.

Archives can be decompressed, decrypted and verified on the fly, and their headers
can be indexed to fetch single entries later on.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		viper.SetEnvPrefix("ustar")
		viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return err
		}

		if viper.GetBool(verboseFlag) {
			boil.DebugMode = true
			boil.DebugWriter = os.Stderr
		}

		return nil
	},
}

func Execute() {
	rootCmd.PersistentFlags().StringP(fileFlag, "f", config.StdinPath, "Tape or tar file to read from (- for standard input)")
	rootCmd.PersistentFlags().BoolP(verboseFlag, "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringP(compressionFlag, "c", config.NoneKey, "Compression format of the archive (one of "+strings.Join(config.KnownCompressionFormats[1:], "|")+")")
	rootCmd.PersistentFlags().StringP(encryptionFlag, "e", config.NoneKey, "Encryption format of the archive (one of "+strings.Join(config.KnownEncryptionFormats[1:], "|")+")")
	rootCmd.PersistentFlags().StringP(identityFlag, "i", "", "Path to the private key to decrypt with")
	rootCmd.PersistentFlags().StringP(passwordFlag, "p", "", "Password for the private key")
	rootCmd.PersistentFlags().StringP(signatureFlag, "s", config.NoneKey, "Signature format of the archive (one of "+strings.Join(config.KnownSignatureFormats[1:], "|")+")")
	rootCmd.PersistentFlags().StringP(recipientFlag, "r", "", "Path to the public key to verify with")
	rootCmd.PersistentFlags().String(signatureFileFlag, "", "Path to the detached signature of the decrypted and decompressed archive")
	rootCmd.PersistentFlags().IntP(recordSizeFlag, "z", config.DefaultRecordSize, "Amount of 512-byte blocks per record when reading from tapes or standard input")
	rootCmd.PersistentFlags().Bool(verifyChecksumFlag, false, "Fail on headers with an invalid checksum")

	viper.AutomaticEnv()

	if err := rootCmd.Execute(); err != nil {
		logging.NewJSONLogger(viper.GetBool(verboseFlag)).Error("Could not complete command", map[string]interface{}{
			"err": err,
		})

		os.Exit(fatalExitCode)
	}
}
