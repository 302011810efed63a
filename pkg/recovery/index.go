package recovery

import (
	"context"
	"io"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/persisters"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/logging"
	"github.com/pojntfx/ustar/pkg/readers"
	"github.com/pojntfx/ustar/pkg/traversal"
)

// Index walks the whole archive and stores every entry's header together
// with the record it starts at. With overwrite set, the previous index is
// removed first.
func Index(
	ctx context.Context,
	reader config.ReaderConfig,
	metadata config.MetadataConfig,
	pipes config.PipeConfig,
	crypto config.CryptoConfig,
	headers config.HeaderConfig,

	overwrite bool,

	logger logging.StructuredLogger,
	onHeader func(event *config.HeaderEvent),
) error {
	metadataPersister := persisters.NewMetadataPersister(metadata.Metadata)
	if err := metadataPersister.Open(); err != nil {
		return err
	}
	defer metadataPersister.Close()

	if overwrite {
		if err := metadataPersister.PurgeAllHeaders(ctx); err != nil {
			return err
		}
	}

	pipeline, err := readers.NewPipeline(ctx, reader, pipes, crypto, logger)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	cursor := traversal.NewCursor(pipeline.Reader, headers, logger)
	indexed := 0
	for {
		entry, err := cursor.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return err
		}

		if entry.Stray {
			continue
		}

		hdr := converters.HeaderToConfigHeader(entry.Record, entry.Header)
		if onHeader != nil {
			onHeader(&config.HeaderEvent{
				Type:   config.HeaderEventTypeIndex,
				Header: hdr,
			})
		}

		if err := metadataPersister.UpsertHeader(ctx, converters.ConfigHeaderToDBHeader(hdr)); err != nil {
			return err
		}

		indexed++
	}

	if err := pipeline.Verify(); err != nil {
		return err
	}

	logger.Debug("Indexed archive", map[string]interface{}{
		"headers": indexed,
		"records": cursor.Record,
	})

	return nil
}
