package headers

import (
	"fmt"
	"io"
	"strings"

	"github.com/pojntfx/ustar/internal/fields"
	"github.com/pojntfx/ustar/pkg/config"
)

// Source is the archive as seen by Read. Probe must report a clean end of
// input without consuming anything.
type Source interface {
	io.Reader

	Probe() (eof bool, err error)
}

// Read consumes exactly one record from src and decodes it. It returns
// io.EOF if src ends right at the record boundary; any shorter record is a
// corrupt archive.
func Read(src Source, cfg config.HeaderConfig) (*Header, error) {
	eof, err := src.Probe()
	if err != nil {
		return nil, err
	}

	if eof {
		return nil, io.EOF
	}

	block := make([]byte, config.BlockSize)
	if _, err := io.ReadFull(src, block); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("%w: %w: %w", config.ErrCorruptArchive, config.ErrUnexpectedEOF, config.ErrTruncatedInput)
		}

		return nil, err
	}

	hdr, err := Decode(block)
	if err != nil {
		return nil, err
	}

	if cfg.VerifyChecksum && !hdr.IsEmpty() {
		if err := VerifyChecksum(block, hdr.Chksum); err != nil {
			return nil, err
		}
	}

	return hdr, nil
}

type slicer []byte

func (sp *slicer) next(n int) (b []byte) {
	s := *sp
	b, *sp = s[0:n], s[n:]

	return
}

// Decode parses a single record. The magic is checked before any numeric
// field is parsed.
func Decode(block []byte) (*Header, error) {
	if len(block) < config.BlockSize {
		return nil, fmt.Errorf("%w: header needs %v bytes, got %v", config.ErrTruncatedInput, config.BlockSize, len(block))
	}

	magic, err := fields.ParseString(block[config.ChksumOffset+config.ChksumLength+config.TypeflagLength+config.LinknameLength:], config.MagicLength)
	if err != nil {
		return nil, err
	}

	if magic != "" && !strings.HasPrefix(magic, config.MagicUSTAR) {
		return nil, fmt.Errorf("%w: %w", config.ErrCorruptArchive, config.ErrMagicMismatch)
	}

	typeflag := block[config.ChksumOffset+config.ChksumLength]
	if typeflag != config.TypeflagRegular && typeflag != config.TypeflagRegularOld {
		return nil, fmt.Errorf("%w: %w: %d", config.ErrCorruptArchive, config.ErrUnsupportedTypeflag, typeflag)
	}

	var p parser
	s := slicer(block)
	hdr := &Header{}

	hdr.Name = p.parseString(s.next(config.NameLength), config.NameLength)
	hdr.Mode = p.parseNumeric(s.next(config.ModeLength), config.ModeLength)
	hdr.UID = p.parseNumeric(s.next(config.UIDLength), config.UIDLength)
	hdr.GID = p.parseNumeric(s.next(config.GIDLength), config.GIDLength)
	hdr.Size = p.parseNumeric(s.next(config.SizeLength), config.SizeLength)
	hdr.Mtime = p.parseNumeric(s.next(config.MtimeLength), config.MtimeLength)
	hdr.Chksum = p.parseNumeric(s.next(config.ChksumLength), config.ChksumLength)
	hdr.Typeflag = s.next(config.TypeflagLength)[0]
	hdr.Linkname = p.parseString(s.next(config.LinknameLength), config.LinknameLength)
	hdr.Magic = p.parseString(s.next(config.MagicLength), config.MagicLength)
	hdr.Version = p.parseString(s.next(config.VersionLength), config.VersionLength)
	hdr.Uname = p.parseString(s.next(config.UnameLength), config.UnameLength)
	hdr.Gname = p.parseString(s.next(config.GnameLength), config.GnameLength)
	hdr.Devmajor = p.parseNumeric(s.next(config.DevmajorLength), config.DevmajorLength)
	hdr.Devminor = p.parseNumeric(s.next(config.DevminorLength), config.DevminorLength)
	hdr.Prefix = p.parseString(s.next(config.PrefixLength), config.PrefixLength)

	if p.err != nil {
		return nil, p.err
	}

	return hdr, nil
}

// parser keeps the first error seen so fields can be decoded in sequence.
type parser struct {
	err error
}

func (p *parser) parseString(b []byte, width int) string {
	s, err := fields.ParseString(b, width)
	if err != nil && p.err == nil {
		p.err = err
	}

	return s
}

func (p *parser) parseNumeric(b []byte, width int) uint64 {
	x, err := fields.ParseNumeric(b, width)
	if err != nil && p.err == nil {
		p.err = err
	}

	return x
}
