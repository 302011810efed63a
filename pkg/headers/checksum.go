package headers

import (
	"fmt"

	"github.com/pojntfx/ustar/pkg/config"
)

// Checksum sums the record with the chksum field counted as spaces. POSIX
// specifies unsigned bytes but some historic tars used signed ones, so both
// are returned.
func Checksum(block []byte) (unsigned int64, signed int64) {
	for i := 0; i < len(block); i++ {
		if i == config.ChksumOffset {
			unsigned += ' ' * config.ChksumLength
			signed += ' ' * config.ChksumLength
			i += config.ChksumLength - 1

			continue
		}

		unsigned += int64(block[i])
		signed += int64(int8(block[i]))
	}

	return
}

func VerifyChecksum(block []byte, want uint64) error {
	unsigned, signed := Checksum(block)
	if uint64(unsigned) == want || (signed >= 0 && uint64(signed) == want) {
		return nil
	}

	return fmt.Errorf("%w: %w: stored %o, computed %o", config.ErrCorruptArchive, config.ErrChecksumMismatch, want, unsigned)
}
