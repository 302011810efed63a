package tarext

import (
	"fmt"
	"os"
	"time"

	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/headers"
	"github.com/pojntfx/ustar/pkg/traversal"
	"github.com/spf13/afero"
)

// Extract copies the payload of the cursor's current entry to the file at
// to, record by record. Only the first size bytes are written; the padding
// of the last record is read but dropped. If the archive ends early, the
// bytes that could be read are still written before the error is returned.
func Extract(
	cursor *traversal.Cursor,
	fs afero.Fs,
	hdr *headers.Header,
	to string,
	preserve bool,
) error {
	dst, err := fs.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrIO, err)
	}

	if err := copyEntry(cursor, dst, hdr); err != nil {
		_ = dst.Close()

		return err
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("%w: %w", config.ErrIO, err)
	}

	if !preserve {
		return nil
	}

	if err := fs.Chmod(to, os.FileMode(hdr.Mode).Perm()); err != nil {
		return fmt.Errorf("%w: %w", config.ErrIO, err)
	}

	mtime := time.Unix(int64(hdr.Mtime), 0)
	if err := fs.Chtimes(to, mtime, mtime); err != nil {
		return fmt.Errorf("%w: %w", config.ErrIO, err)
	}

	return nil
}

func copyEntry(cursor *traversal.Cursor, dst afero.File, hdr *headers.Header) error {
	buf := make([]byte, config.BlockSize)
	blocks := hdr.DataBlocks()

	for i := uint64(0); i < blocks; i++ {
		length := config.BlockSize
		if i == blocks-1 {
			length = hdr.LastBlockLength()
		}

		n, err := cursor.ReadBlock(buf)
		if err != nil {
			if n > length {
				n = length
			}

			if n > 0 {
				if _, werr := dst.Write(buf[:n]); werr != nil {
					return fmt.Errorf("%w: %w", config.ErrIO, werr)
				}
			}

			return err
		}

		if _, err := dst.Write(buf[:length]); err != nil {
			return fmt.Errorf("%w: %w", config.ErrIO, err)
		}
	}

	return nil
}
