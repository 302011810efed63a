package ioext

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

var errPartialRecord = errors.New("read size is not a whole record")

type fixedRecordReader struct {
	reader       io.Reader
	recordLength int
	reads        []int
}

func (r *fixedRecordReader) Read(p []byte) (int, error) {
	r.reads = append(r.reads, len(p))

	if len(p)%r.recordLength != 0 {
		return 0, errPartialRecord
	}

	return r.reader.Read(p)
}

func TestRecordReader(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789abcdef"), 2000)

	tests := []struct {
		name         string
		recordLength int
		readLength   int
	}{
		{"Single bytes", 512, 1},
		{"Single blocks", 512, 512},
		{"Odd reads", 1024, 700},
		{"Reads larger than a record", 512 * 20, 64 * 1024},
		{"Reads of exactly a record", 512 * 20, 512 * 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fixedRecordReader{reader: bytes.NewReader(data), recordLength: tt.recordLength}
			r := NewRecordReader(src, tt.recordLength)

			got := []byte{}
			p := make([]byte, tt.readLength)
			for {
				n, err := r.Read(p)
				got = append(got, p[:n]...)

				if err == io.EOF {
					break
				}

				if err != nil {
					t.Errorf("Read() error = %v", err)

					return
				}
			}

			if !bytes.Equal(got, data) {
				t.Errorf("Read() returned %v bytes, want %v", len(got), len(data))
			}

			for _, n := range src.reads {
				if n != tt.recordLength {
					t.Errorf("source read %v bytes, want %v", n, tt.recordLength)
				}
			}
		})
	}
}
