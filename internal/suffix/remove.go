package suffix

import (
	"fmt"
	"strings"

	"github.com/pojntfx/ustar/pkg/config"
)

// RemoveSuffix strips the suffixes the given formats add to a file name,
// the encryption suffix first.
func RemoveSuffix(name string, compressionFormat string, encryptionFormat string) (string, error) {
	switch encryptionFormat {
	case config.EncryptionFormatAgeKey:
		name = strings.TrimSuffix(name, config.EncryptionFormatAgeSuffix)
	case config.EncryptionFormatPGPKey:
		name = strings.TrimSuffix(name, config.EncryptionFormatPGPSuffix)
	case config.NoneKey:
	default:
		return "", fmt.Errorf("%w: %v", config.ErrUnsupportedEncryptionFormat, encryptionFormat)
	}

	switch compressionFormat {
	case config.CompressionFormatGZipKey, config.CompressionFormatParallelGZipKey:
		name = strings.TrimSuffix(name, config.CompressionFormatGZipSuffix)
	case config.CompressionFormatLZ4Key:
		name = strings.TrimSuffix(name, config.CompressionFormatLZ4Suffix)
	case config.CompressionFormatZStandardKey:
		name = strings.TrimSuffix(name, config.CompressionFormatZStandardSuffix)
	case config.CompressionFormatBrotliKey:
		name = strings.TrimSuffix(name, config.CompressionFormatBrotliSuffix)
	case config.CompressionFormatBzip2Key, config.CompressionFormatBzip2ParallelKey:
		name = strings.TrimSuffix(name, config.CompressionFormatBzip2Suffix)
	case config.NoneKey:
	default:
		return "", fmt.Errorf("%w: %v", config.ErrUnsupportedCompressionFormat, compressionFormat)
	}

	return name, nil
}
