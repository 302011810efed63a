package tape

import (
	"os"

	"github.com/pojntfx/ustar/pkg/config"
	"github.com/spf13/afero"
)

// OpenTapeReadOnly opens an archive source: a regular file, a tape drive or
// any other character device, or standard input if drive is "-". Only
// regular files can be seeked.
func OpenTapeReadOnly(fs afero.Fs, drive string) (f afero.File, isRegular bool, err error) {
	if drive == config.StdinPath {
		return os.Stdin, false, nil
	}

	fileDescription, err := fs.Stat(drive)
	if err != nil {
		return nil, false, err
	}

	isRegular = fileDescription.Mode().IsRegular()
	if isRegular {
		f, err = fs.Open(drive)
		if err != nil {
			return nil, isRegular, err
		}

		return f, isRegular, nil
	}

	f, err = fs.OpenFile(drive, os.O_RDONLY, os.ModeCharDevice)
	if err != nil {
		return nil, isRegular, err
	}

	return f, isRegular, nil
}
