package operations

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/logging"
	"github.com/pojntfx/ustar/pkg/members"
	"github.com/pojntfx/ustar/pkg/readers"
	"github.com/pojntfx/ustar/pkg/traversal"
)

type Operations struct {
	pipes   config.PipeConfig
	crypto  config.CryptoConfig
	headers config.HeaderConfig

	logger   logging.StructuredLogger
	onHeader func(event *config.HeaderEvent)
}

func NewOperations(
	pipes config.PipeConfig,
	crypto config.CryptoConfig,
	headers config.HeaderConfig,

	logger logging.StructuredLogger,
	onHeader func(event *config.HeaderEvent),
) *Operations {
	return &Operations{
		pipes:   pipes,
		crypto:  crypto,
		headers: headers,

		logger:   logger,
		onHeader: onHeader,
	}
}

// walk visits every entry of the archive. onEntry is called for entries
// selected by names and for stray zero records; the latter are never
// matched against names.
func (o *Operations) walk(
	ctx context.Context,
	reader config.ReaderConfig,
	names []string,
	eventType string,
	onEntry func(cursor *traversal.Cursor, entry *traversal.Entry) error,
) error {
	pipeline, err := readers.NewPipeline(ctx, reader, o.pipes, o.crypto, o.logger)
	if err != nil {
		return err
	}
	defer pipeline.Close()

	selection := members.NewSet(names)
	cursor := traversal.NewCursor(pipeline.Reader, o.headers, o.logger)

	for {
		entry, err := cursor.Next()
		if err == io.EOF {
			break
		}

		if err != nil {
			return err
		}

		if !entry.Stray && !selection.Select(entry.Header.FullName()) {
			continue
		}

		if o.onHeader != nil {
			o.onHeader(&config.HeaderEvent{
				Type:   eventType,
				Stray:  entry.Stray,
				Header: converters.HeaderToConfigHeader(entry.Record, entry.Header),
			})
		}

		if entry.Stray {
			continue
		}

		if err := onEntry(cursor, entry); err != nil {
			return err
		}
	}

	if err := pipeline.Verify(); err != nil {
		return err
	}

	missing := selection.Missing()
	for _, name := range missing {
		o.logger.Warn("Not found in archive", map[string]interface{}{
			"name": name,
		})
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", config.ErrMissingMember, strings.Join(missing, ", "))
	}

	return nil
}
