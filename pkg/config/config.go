package config

import (
	"io"

	"github.com/spf13/afero"
)

// ReaderConfig is an opened archive source. Seekable is set when Drive
// can be moved forward with Seek instead of being read and discarded.
type ReaderConfig struct {
	Drive    io.Reader
	Seekable bool
}

// PipeConfig names the stages of the input pipeline. Sources that can not
// be seeked are read RecordSize blocks at a time.
type PipeConfig struct {
	Compression string
	Encryption  string
	Signature   string
	RecordSize  int
}

type CryptoConfig struct {
	Recipient interface{}
	Identity  interface{}
	Password  string

	// Detached signature over the decrypted and decompressed archive
	Signature []byte
}

type PasswordConfig struct {
	Password string
}

type HeaderConfig struct {
	VerifyChecksum bool
}

// ExtractConfig describes where extracted entries are written to. With
// Preserve set, the permission bits and modification time from the header
// are applied to each file after it has been written.
type ExtractConfig struct {
	FileSystem afero.Fs
	Preserve   bool
}

type MetadataConfig struct {
	Metadata string
}

type Header struct {
	Record   int64
	Name     string
	Prefix   string
	Linkname string
	Size     int64
	Mode     int64
	UID      int64
	GID      int64
	Mtime    int64
	Uname    string
	Gname    string
	Typeflag int64
}

// HeaderEvent is emitted for every entry an operation acts on. Stray is
// set for a single zero record followed by more content; its header is
// empty.
type HeaderEvent struct {
	Type   string
	Stray  bool
	Header *Header
}
