package operations

import (
	"context"

	"github.com/pojntfx/ustar/internal/tarext"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/traversal"
)

// Extract writes every selected entry to extract.FileSystem at its full
// path. Parent directories are not created. One destination is open at a
// time.
func (o *Operations) Extract(
	ctx context.Context,
	reader config.ReaderConfig,
	extract config.ExtractConfig,
	names []string,
) error {
	return o.walk(ctx, reader, names, config.HeaderEventTypeExtract, func(cursor *traversal.Cursor, entry *traversal.Entry) error {
		o.logger.Trace("Extracting", map[string]interface{}{
			"record": entry.Record,
			"name":   entry.Header.FullName(),
			"size":   entry.Header.Size,
		})

		return tarext.Extract(cursor, extract.FileSystem, entry.Header, entry.Header.FullName(), extract.Preserve)
	})
}
