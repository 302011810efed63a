// Package testutil builds ustar archives for tests.
package testutil

import (
	"bytes"
	"fmt"

	"github.com/pojntfx/ustar/internal/fields"
	"github.com/pojntfx/ustar/pkg/config"
)

type Entry struct {
	Name   string
	Prefix string
	Body   []byte

	// Declared payload size, len(Body) if zero
	Size uint64

	Mode     uint64
	UID      uint64
	GID      uint64
	Mtime    uint64
	Uname    string
	Gname    string
	Typeflag byte

	// Write Typeflag as is, even if it is NUL
	RawTypeflag bool

	// Magic is "ustar\x00" unless NoMagic is set or Magic is not empty
	Magic   string
	NoMagic bool
}

func mustNumeric(x uint64, width int) []byte {
	b, err := fields.FormatNumeric(x, width)
	if err != nil {
		panic(err)
	}

	return b
}

// Header encodes the header record of e, with a valid checksum.
func Header(e Entry) []byte {
	size := e.Size
	if size == 0 {
		size = uint64(len(e.Body))
	}

	typeflag := e.Typeflag
	if typeflag == 0 && !e.RawTypeflag {
		typeflag = config.TypeflagRegular
	}

	magic, version := "ustar\x00", "00"
	if e.NoMagic {
		magic, version = "", ""
	} else if e.Magic != "" {
		magic = e.Magic
	}

	mode := e.Mode
	if mode == 0 {
		mode = 0644
	}

	block := bytes.NewBuffer(nil)
	block.Write(fields.FormatString(e.Name, config.NameLength))
	block.Write(mustNumeric(mode, config.ModeLength))
	block.Write(mustNumeric(e.UID, config.UIDLength))
	block.Write(mustNumeric(e.GID, config.GIDLength))
	block.Write(mustNumeric(size, config.SizeLength))
	block.Write(mustNumeric(e.Mtime, config.MtimeLength))
	block.Write(bytes.Repeat([]byte(" "), config.ChksumLength))
	block.WriteByte(typeflag)
	block.Write(fields.FormatString("", config.LinknameLength))
	block.Write(fields.FormatString(magic, config.MagicLength))
	block.Write(fields.FormatString(version, config.VersionLength))
	block.Write(fields.FormatString(e.Uname, config.UnameLength))
	block.Write(fields.FormatString(e.Gname, config.GnameLength))
	block.Write(mustNumeric(0, config.DevmajorLength))
	block.Write(mustNumeric(0, config.DevminorLength))
	block.Write(fields.FormatString(e.Prefix, config.PrefixLength))
	block.Write(make([]byte, config.PaddingLength))

	b := block.Bytes()
	if len(b) != config.BlockSize {
		panic(fmt.Sprintf("header is %v bytes", len(b)))
	}

	var sum int64
	for _, c := range b {
		sum += int64(c)
	}
	copy(b[config.ChksumOffset:], fmt.Sprintf("%06o\x00 ", sum))

	return b
}

// Data pads body to a whole number of records.
func Data(body []byte) []byte {
	padded := make([]byte, ((len(body)+config.BlockSize-1)/config.BlockSize)*config.BlockSize)
	copy(padded, body)

	return padded
}

func ZeroBlocks(n int) []byte {
	return make([]byte, n*config.BlockSize)
}

// Archive encodes entries followed by the two-record end-of-archive marker.
func Archive(entries ...Entry) []byte {
	return append(Entries(entries...), ZeroBlocks(2)...)
}

// Entries encodes entries without an end-of-archive marker.
func Entries(entries ...Entry) []byte {
	out := []byte{}
	for _, e := range entries {
		out = append(out, Header(e)...)
		out = append(out, Data(e.Body)...)
	}

	return out
}
