package check

import (
	"fmt"

	"github.com/pojntfx/ustar/pkg/config"
)

func isKnown(candidate string, known []string) bool {
	for _, k := range known {
		if candidate == k {
			return true
		}
	}

	return false
}

func CheckCompressionFormat(compressionFormat string) error {
	if !isKnown(compressionFormat, config.KnownCompressionFormats) {
		return fmt.Errorf("%w: %v", config.ErrUnsupportedCompressionFormat, compressionFormat)
	}

	return nil
}

func CheckEncryptionFormat(encryptionFormat string) error {
	if !isKnown(encryptionFormat, config.KnownEncryptionFormats) {
		return fmt.Errorf("%w: %v", config.ErrUnsupportedEncryptionFormat, encryptionFormat)
	}

	return nil
}

func CheckSignatureFormat(signatureFormat string) error {
	if !isKnown(signatureFormat, config.KnownSignatureFormats) {
		return fmt.Errorf("%w: %v", config.ErrUnsupportedSignatureFormat, signatureFormat)
	}

	return nil
}

func CheckRecordSize(recordSize int) error {
	if recordSize < 1 {
		return fmt.Errorf("%w: %v", config.ErrRecordSizeInvalid, recordSize)
	}

	return nil
}

func CheckListFormat(listFormat string) error {
	if !isKnown(listFormat, config.KnownListFormats) {
		return fmt.Errorf("%w: %v", config.ErrUnsupportedListFormat, listFormat)
	}

	return nil
}
