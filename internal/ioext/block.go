package ioext

import (
	"io"
)

// BlockReader is a forward-only archive source. It can probe for EOF
// without consuming input and skips forward by seeking if the underlying
// reader supports it, or by discarding otherwise.
type BlockReader struct {
	reader io.Reader
	seeker io.Seeker

	putback    byte
	hasPutback bool

	BytesRead int64
}

func NewBlockReader(r io.Reader, seekable bool) *BlockReader {
	br := &BlockReader{reader: r}

	if seekable {
		if s, ok := r.(io.Seeker); ok {
			br.seeker = s
		}
	}

	return br
}

func (r *BlockReader) Seekable() bool {
	return r.seeker != nil
}

func (r *BlockReader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}

	if r.hasPutback {
		p[0] = r.putback
		r.hasPutback = false
		r.BytesRead++

		return 1, nil
	}

	n, err = r.reader.Read(p)
	r.BytesRead += int64(n)

	return n, err
}

// Probe reads one byte and puts it back. It returns true if the source is
// exhausted.
func (r *BlockReader) Probe() (eof bool, err error) {
	if r.hasPutback {
		return false, nil
	}

	b := make([]byte, 1)
	for {
		n, err := r.reader.Read(b)
		if n == 1 {
			r.putback = b[0]
			r.hasPutback = true

			return false, nil
		}

		if err == io.EOF {
			return true, nil
		}

		if err != nil {
			return false, err
		}
	}
}

// Skip moves n bytes forward. It returns io.ErrUnexpectedEOF if the source
// ends before the last of those bytes.
func (r *BlockReader) Skip(n int64) error {
	if n <= 0 {
		return nil
	}

	if r.hasPutback {
		r.hasPutback = false
		r.BytesRead++
		n--

		if n == 0 {
			return nil
		}
	}

	if r.seeker == nil {
		written, err := io.CopyN(io.Discard, r, n)
		if err == io.EOF || written < n {
			return io.ErrUnexpectedEOF
		}

		return err
	}

	// Seeking past the end succeeds, so the last byte is read to detect it
	if _, err := r.seeker.Seek(n-1, io.SeekCurrent); err != nil {
		return err
	}
	r.BytesRead += n - 1

	if _, err := io.ReadFull(r, make([]byte, 1)); err != nil {
		if err == io.EOF {
			return io.ErrUnexpectedEOF
		}

		return err
	}

	return nil
}
