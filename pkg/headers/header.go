// Package headers decodes 512-byte ustar header records.
package headers

import (
	"math"

	"github.com/pojntfx/ustar/pkg/config"
)

// Header is one decoded header record. A record that is all zeroes decodes
// to the zero Header, which marks the end of the archive.
type Header struct {
	Name     string
	Mode     uint64
	UID      uint64
	GID      uint64
	Size     uint64
	Mtime    uint64
	Chksum   uint64
	Typeflag byte
	Linkname string
	Magic    string
	Version  string
	Uname    string
	Gname    string
	Devmajor uint64
	Devminor uint64
	Prefix   string
}

func (h *Header) IsEmpty() bool {
	return *h == Header{}
}

// FullName joins the prefix and the name with a slash if there is a prefix.
func (h *Header) FullName() string {
	if h.Prefix != "" {
		return h.Prefix + "/" + h.Name
	}

	return h.Name
}

// DataBlocks returns the number of records following the header that carry
// its payload.
func (h *Header) DataBlocks() uint64 {
	blocks := h.Size / config.BlockSize
	if h.Size%config.BlockSize != 0 {
		blocks++
	}

	return blocks
}

// DataLength returns the length in bytes of the payload records, or false if
// it can't be represented as a stream offset.
func (h *Header) DataLength() (int64, bool) {
	blocks := h.DataBlocks()
	if blocks > math.MaxInt64/config.BlockSize {
		return 0, false
	}

	return int64(blocks) * config.BlockSize, true
}

// LastBlockLength returns how many bytes of the final payload record belong
// to the entry.
func (h *Header) LastBlockLength() int {
	if rest := h.Size % config.BlockSize; rest != 0 {
		return int(rest)
	}

	return config.BlockSize
}
