package ioext

import (
	"bufio"
	"io"
)

// RecordReader reads its source one whole record at a time, as tape drives
// in fixed-block mode require.
type RecordReader struct {
	reader *bufio.Reader
}

func NewRecordReader(r io.Reader, recordLength int) *RecordReader {
	return &RecordReader{
		reader: bufio.NewReaderSize(r, recordLength),
	}
}

func (r *RecordReader) Read(p []byte) (n int, err error) {
	// Reads of at least the buffer's size would bypass it
	if size := r.reader.Size(); len(p) >= size {
		p = p[:size-1]
	}

	return r.reader.Read(p)
}
