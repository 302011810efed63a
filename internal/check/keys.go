package check

import (
	"os"

	"github.com/pojntfx/ustar/pkg/config"
)

func CheckKeyAccessible(format string, pathToKey string) error {
	if format == config.NoneKey {
		return nil
	}

	if _, err := os.Stat(pathToKey); err != nil {
		return config.ErrKeyNotAccessible
	}

	return nil
}
