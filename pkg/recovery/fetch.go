package recovery

import (
	"context"
	"fmt"
	"io"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/tarext"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/logging"
	"github.com/pojntfx/ustar/pkg/readers"
	"github.com/pojntfx/ustar/pkg/traversal"
)

// Fetch extracts the entry whose header is at record to the path to, or to
// the entry's full path if to is empty. Regular files without pipeline
// stages are seeked to the record; any other source is read up to it.
func Fetch(
	ctx context.Context,
	reader config.ReaderConfig,
	pipes config.PipeConfig,
	crypto config.CryptoConfig,
	headers config.HeaderConfig,
	extract config.ExtractConfig,

	record int64,
	to string,

	logger logging.StructuredLogger,
	onHeader func(event *config.HeaderEvent),
) error {
	pipeline, err := readers.NewPipeline(ctx, reader, pipes, crypto, logger)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	logger.Trace("Skipping to record", map[string]interface{}{
		"record": record,
		"seek":   pipeline.Reader.Seekable(),
	})

	if err := pipeline.Reader.Skip(record * config.BlockSize); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("%w: record %v is past the end of the archive", config.ErrHeaderEmpty, record)
		}

		return err
	}

	cursor := traversal.NewCursor(pipeline.Reader, headers, logger)
	cursor.Record = record

	entry, err := cursor.Next()
	if err == io.EOF {
		return fmt.Errorf("%w: record %v", config.ErrHeaderEmpty, record)
	}

	if err != nil {
		return err
	}

	// A zero record here is padding or the end-of-archive marker
	if entry.Stray || entry.Record != record {
		return fmt.Errorf("%w: record %v", config.ErrHeaderEmpty, record)
	}

	if to == "" {
		to = entry.Header.FullName()
	}

	if onHeader != nil {
		onHeader(&config.HeaderEvent{
			Type:   config.HeaderEventTypeFetch,
			Header: converters.HeaderToConfigHeader(entry.Record, entry.Header),
		})
	}

	if err := tarext.Extract(cursor, extract.FileSystem, entry.Header, to, extract.Preserve); err != nil {
		return err
	}

	return pipeline.Verify()
}
