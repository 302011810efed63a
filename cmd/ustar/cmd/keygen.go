package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pojntfx/ustar/internal/check"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/utility"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errKeyPathMissing = errors.New("paths to write the identity and recipient to are required")

var keygenCmd = &cobra.Command{
	Use:     "keygen",
	Aliases: []string{"key", "k"},
	Short:   "Generate a key pair to decrypt or verify archives with",
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.PersistentFlags()); err != nil {
			return err
		}

		if viper.GetString(identityFlag) == "" || viper.GetString(recipientFlag) == "" {
			return errKeyPathMissing
		}

		if err := check.CheckEncryptionFormat(viper.GetString(encryptionFlag)); err != nil {
			return err
		}

		return check.CheckSignatureFormat(viper.GetString(signatureFlag))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		privkey, pubkey, err := utility.Keygen(
			config.PipeConfig{
				Encryption: viper.GetString(encryptionFlag),
				Signature:  viper.GetString(signatureFlag),
			},
			config.PasswordConfig{
				Password: viper.GetString(passwordFlag),
			},
		)
		if err != nil {
			return err
		}

		// Write pubkey (read/writable by everyone)
		if err := os.MkdirAll(filepath.Dir(viper.GetString(recipientFlag)), os.ModePerm); err != nil {
			return err
		}

		if err := os.WriteFile(viper.GetString(recipientFlag), pubkey, 0644); err != nil {
			return err
		}

		// Write privkey (read/writable only by the owner)
		if err := os.MkdirAll(filepath.Dir(viper.GetString(identityFlag)), 0700); err != nil {
			return err
		}

		return os.WriteFile(viper.GetString(identityFlag), privkey, 0600)
	},
}

func init() {
	viper.AutomaticEnv()

	rootCmd.AddCommand(keygenCmd)
}
