package fields

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/pojntfx/ustar/pkg/config"
)

// ParseString decodes a fixed-width text field. The value ends at the
// first NUL; everything after it is padding.
func ParseString(b []byte, width int) (string, error) {
	if len(b) < width {
		return "", fmt.Errorf("%w: text field needs %v bytes, got %v", config.ErrTruncatedInput, width, len(b))
	}

	b = b[:width]
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i]), nil
	}

	return string(b), nil
}

// ParseNumeric decodes a fixed-width numeric field. If the high bit of the
// first byte is set, the field is a base-256 big-endian number with that bit
// cleared; otherwise it is octal text. Base-256 fields wider than 64 bits
// keep their low 64 bits, so negative GNU values decode without error.
func ParseNumeric(b []byte, width int) (uint64, error) {
	if len(b) < width {
		return 0, fmt.Errorf("%w: numeric field needs %v bytes, got %v", config.ErrTruncatedInput, width, len(b))
	}

	b = b[:width]
	if width > 0 && b[0]&0x80 != 0 {
		var x uint64
		for i, c := range b {
			if i == 0 {
				c &= 0x7f
			}

			x = x<<8 | uint64(c)
		}

		return x, nil
	}

	return parseOctal(b), nil
}

// parseOctal is lenient: leading whitespace is skipped and parsing stops at
// the first byte that is not an octal digit. Unparsable text yields zero.
func parseOctal(b []byte) uint64 {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}

	j := i
	for j < len(b) && b[j] >= '0' && b[j] <= '7' {
		j++
	}

	if i == j {
		return 0
	}

	x, err := strconv.ParseUint(string(b[i:j]), 8, 64)
	if err != nil {
		// Only reachable on overflow, which saturates
		return ^uint64(0)
	}

	return x
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}

// FormatString encodes s into a NUL-padded field of the given width,
// truncating if it does not fit.
func FormatString(s string, width int) []byte {
	b := make([]byte, width)
	copy(b, s)

	return b
}

// FormatNumeric encodes x into a field of the given width. Values below
// 8^(width-1) are written as zero-padded octal followed by a NUL, larger
// values use base-256.
func FormatNumeric(x uint64, width int) ([]byte, error) {
	b := make([]byte, width)
	if width < 2 {
		return nil, fmt.Errorf("%w: field width %v is too small", config.ErrNumericOverflow, width)
	}

	if fitsInOctal(x, width) {
		s := strconv.FormatUint(x, 8)
		copy(b[width-1-len(s):], s)
		for i := 0; i < width-1-len(s); i++ {
			b[i] = '0'
		}

		return b, nil
	}

	for i := width - 1; i >= 0; i-- {
		b[i] = byte(x)
		x >>= 8
	}

	if x != 0 || b[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: value does not fit into %v bytes", config.ErrNumericOverflow, width)
	}

	b[0] |= 0x80

	return b, nil
}

func fitsInOctal(x uint64, width int) bool {
	digits := width - 1
	if digits >= 22 {
		return true
	}

	return x < uint64(1)<<(3*uint(digits))
}
