package testutil

import (
	"errors"
	"io"

	"github.com/pojntfx/ustar/pkg/config"
)

var ErrTapeBlockSize = errors.New("read size is not a multiple of the tape block size")

// Tape reads like a drive in fixed-block mode: every read has to cover
// whole blocks. Reads records the size of each read.
type Tape struct {
	Reader io.Reader
	Reads  []int
}

func (t *Tape) Read(p []byte) (int, error) {
	t.Reads = append(t.Reads, len(p))

	if len(p)%config.BlockSize != 0 {
		return 0, ErrTapeBlockSize
	}

	return t.Reader.Read(p)
}
