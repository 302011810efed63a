package keys

import (
	"os"

	"github.com/pojntfx/ustar/pkg/config"
)

// ReadKey returns the contents of the key at pathToKey, or nothing if no
// format requires a key.
func ReadKey(format string, pathToKey string) ([]byte, error) {
	if format == config.NoneKey {
		return []byte{}, nil
	}

	return os.ReadFile(pathToKey)
}
