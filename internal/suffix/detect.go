package suffix

import (
	"strings"

	"github.com/pojntfx/ustar/pkg/config"
)

var (
	encryptionSuffixes = map[string]string{
		config.EncryptionFormatAgeSuffix: config.EncryptionFormatAgeKey,
		config.EncryptionFormatPGPSuffix: config.EncryptionFormatPGPKey,
	}

	compressionSuffixes = map[string]string{
		config.CompressionFormatGZipSuffix:      config.CompressionFormatParallelGZipKey,
		config.CompressionFormatLZ4Suffix:       config.CompressionFormatLZ4Key,
		config.CompressionFormatZStandardSuffix: config.CompressionFormatZStandardKey,
		config.CompressionFormatBrotliSuffix:    config.CompressionFormatBrotliKey,
		config.CompressionFormatBzip2Suffix:     config.CompressionFormatBzip2ParallelKey,
	}
)

// DetectFormats replaces the "auto" compression and encryption formats with
// the ones named by the suffixes of name, for example "backup.tar.zst.age".
// Formats that are set explicitly are kept.
func DetectFormats(name string, compressionFormat string, encryptionFormat string) (string, string, error) {
	detectedEncryption := config.NoneKey
	for suffix, format := range encryptionSuffixes {
		if strings.HasSuffix(name, suffix) {
			detectedEncryption = format

			break
		}
	}

	if encryptionFormat == config.AutoKey {
		encryptionFormat = detectedEncryption
	}

	// The compression suffix sits in front of the encryption suffix
	rest, err := RemoveSuffix(name, config.NoneKey, detectedEncryption)
	if err != nil {
		return "", "", err
	}

	if compressionFormat == config.AutoKey {
		compressionFormat = config.NoneKey
		for suffix, format := range compressionSuffixes {
			if strings.HasSuffix(rest, suffix) {
				compressionFormat = format

				break
			}
		}
	}

	return compressionFormat, encryptionFormat, nil
}
