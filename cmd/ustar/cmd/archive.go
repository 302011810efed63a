package cmd

import (
	"io"

	"github.com/pojntfx/ustar/internal/check"
	"github.com/pojntfx/ustar/internal/keys"
	"github.com/pojntfx/ustar/internal/suffix"
	"github.com/pojntfx/ustar/internal/tape"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// checkArchiveFlags validates the flags shared by all commands that read
// an archive.
func checkArchiveFlags() error {
	if err := check.CheckRecordSize(viper.GetInt(recordSizeFlag)); err != nil {
		return err
	}

	if err := check.CheckCompressionFormat(viper.GetString(compressionFlag)); err != nil {
		return err
	}

	if err := check.CheckEncryptionFormat(viper.GetString(encryptionFlag)); err != nil {
		return err
	}

	if err := check.CheckSignatureFormat(viper.GetString(signatureFlag)); err != nil {
		return err
	}

	if err := check.CheckKeyAccessible(viper.GetString(signatureFlag), viper.GetString(signatureFileFlag)); err != nil {
		return err
	}

	if err := check.CheckKeyAccessible(viper.GetString(signatureFlag), viper.GetString(recipientFlag)); err != nil {
		return err
	}

	encryptionFormat := viper.GetString(encryptionFlag)
	if encryptionFormat == config.AutoKey {
		_, detected, err := suffix.DetectFormats(viper.GetString(fileFlag), config.NoneKey, encryptionFormat)
		if err != nil {
			return err
		}

		encryptionFormat = detected
	}

	return check.CheckKeyAccessible(encryptionFormat, viper.GetString(identityFlag))
}

// openArchive opens the archive named by the file flag and parses the keys
// its pipeline stages need.
func openArchive() (
	reader config.ReaderConfig,
	pipes config.PipeConfig,
	crypto config.CryptoConfig,
	closer io.Closer,
	err error,
) {
	compressionFormat, encryptionFormat, err := suffix.DetectFormats(
		viper.GetString(fileFlag),
		viper.GetString(compressionFlag),
		viper.GetString(encryptionFlag),
	)
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	pipes = config.PipeConfig{
		Compression: compressionFormat,
		Encryption:  encryptionFormat,
		Signature:   viper.GetString(signatureFlag),
		RecordSize:  viper.GetInt(recordSizeFlag),
	}

	pubkey, err := keys.ReadKey(pipes.Signature, viper.GetString(recipientFlag))
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	recipient, err := keys.ParseSignerRecipient(pipes.Signature, pubkey)
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	signature, err := keys.ReadKey(pipes.Signature, viper.GetString(signatureFileFlag))
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	privkey, err := keys.ReadKey(pipes.Encryption, viper.GetString(identityFlag))
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	identity, err := keys.ParseIdentity(pipes.Encryption, privkey, viper.GetString(passwordFlag))
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	crypto = config.CryptoConfig{
		Recipient: recipient,
		Identity:  identity,
		Password:  viper.GetString(passwordFlag),
		Signature: signature,
	}

	drive, isRegular, err := tape.OpenTapeReadOnly(afero.NewOsFs(), viper.GetString(fileFlag))
	if err != nil {
		return config.ReaderConfig{}, config.PipeConfig{}, config.CryptoConfig{}, nil, err
	}

	reader = config.ReaderConfig{
		Drive:    drive,
		Seekable: isRegular,
	}

	return reader, pipes, crypto, drive, nil
}

func headerConfig() config.HeaderConfig {
	return config.HeaderConfig{
		VerifyChecksum: viper.GetBool(verifyChecksumFlag),
	}
}
