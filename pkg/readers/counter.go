package readers

import "io"

// Counter counts the bytes read from the raw archive source, before any
// pipeline stage has been applied.
type Counter struct {
	Reader io.Reader

	BytesRead int64
}

func (r *Counter) Read(p []byte) (n int, err error) {
	n, err = r.Reader.Read(p)

	r.BytesRead += int64(n)

	return n, err
}
