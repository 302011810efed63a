// Package traversal walks a ustar archive one header at a time.
package traversal

import (
	"fmt"
	"io"

	"github.com/pojntfx/ustar/internal/ioext"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/headers"
	"github.com/pojntfx/ustar/pkg/logging"
)

// Entry is a header visited by the cursor. Stray is set for a single zero
// record that was followed by more content; such an entry has an empty
// header and no payload.
type Entry struct {
	Header *headers.Header
	Record int64
	Stray  bool
}

// Cursor owns the read position in the archive for the duration of a walk.
// It is not safe for concurrent use.
type Cursor struct {
	src    *ioext.BlockReader
	cfg    config.HeaderConfig
	logger logging.StructuredLogger

	// Record counts the records consumed so far
	Record int64

	remaining  int64
	pending    *Entry
	terminated bool
	err        error
}

func NewCursor(
	src *ioext.BlockReader,
	cfg config.HeaderConfig,
	logger logging.StructuredLogger,
) *Cursor {
	return &Cursor{
		src:    src,
		cfg:    cfg,
		logger: logger,
	}
}

// Next skips whatever is left of the current entry's payload and returns
// the next entry. It returns io.EOF once the archive has ended, either by
// two zero records, a zero record at the end of input, or the end of input
// at a record boundary. Any other error is fatal and is returned again by
// later calls.
func (c *Cursor) Next() (*Entry, error) {
	if c.err != nil {
		return nil, c.err
	}

	if c.terminated {
		return nil, io.EOF
	}

	if err := c.skipRemaining(); err != nil {
		return nil, c.fail(err)
	}

	if c.pending != nil {
		entry := c.pending
		c.pending = nil

		return entry, c.start(entry)
	}

	entry, err := c.readHeader()
	if err == io.EOF {
		c.terminated = true

		return nil, io.EOF
	}

	if err != nil {
		return nil, c.fail(err)
	}

	if !entry.Header.IsEmpty() {
		return entry, c.start(entry)
	}

	second, err := c.readHeader()
	if err == io.EOF {
		c.logger.Warn("A lone zero block", map[string]interface{}{
			"record": c.Record,
		})

		c.terminated = true

		return nil, io.EOF
	}

	if err != nil {
		return nil, c.fail(err)
	}

	if second.Header.IsEmpty() {
		c.terminated = true

		return nil, io.EOF
	}

	c.logger.Warn("Zero block followed by content, continuing", map[string]interface{}{
		"record": entry.Record,
	})

	entry.Stray = true
	c.pending = second

	return entry, nil
}

// ReadBlock reads the next payload record of the current entry into p,
// which must hold at least one record. It returns io.EOF if the entry has
// no payload left. A short read is fatal; n then holds the number of bytes
// that were read before the archive ended.
func (c *Cursor) ReadBlock(p []byte) (n int, err error) {
	if c.err != nil {
		return 0, c.err
	}

	if c.remaining <= 0 {
		return 0, io.EOF
	}

	n, err = io.ReadFull(c.src, p[:config.BlockSize])
	if err != nil {
		c.remaining = 0

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return n, c.fail(fmt.Errorf("%w: %w", config.ErrCorruptArchive, config.ErrUnexpectedEOF))
		}

		return n, c.fail(err)
	}

	c.remaining--
	c.Record++

	return n, nil
}

func (c *Cursor) readHeader() (*Entry, error) {
	record := c.Record

	hdr, err := headers.Read(c.src, c.cfg)
	if err != nil {
		return nil, err
	}

	c.Record++

	c.logger.Trace("Read header", map[string]interface{}{
		"record": record,
		"name":   hdr.FullName(),
		"size":   hdr.Size,
		"empty":  hdr.IsEmpty(),
	})

	return &Entry{
		Header: hdr,
		Record: record,
	}, nil
}

func (c *Cursor) start(entry *Entry) error {
	length, ok := entry.Header.DataLength()
	if !ok {
		return c.fail(fmt.Errorf("%w: %w: size %v", config.ErrCorruptArchive, config.ErrNumericOverflow, entry.Header.Size))
	}

	c.remaining = length / config.BlockSize

	return nil
}

func (c *Cursor) skipRemaining() error {
	if c.remaining <= 0 {
		return nil
	}

	blocks := c.remaining
	c.remaining = 0

	c.logger.Trace("Skipping data records", map[string]interface{}{
		"record": c.Record,
		"count":  blocks,
	})

	if err := c.src.Skip(blocks * config.BlockSize); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: %w", config.ErrCorruptArchive, config.ErrUnexpectedEOF)
		}

		return err
	}

	c.Record += blocks

	return nil
}

func (c *Cursor) fail(err error) error {
	c.err = err

	return err
}
