package operations

import (
	"context"

	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/traversal"
)

// List emits a header event for every selected entry. Entry data is
// skipped without being read.
func (o *Operations) List(
	ctx context.Context,
	reader config.ReaderConfig,
	names []string,
) error {
	return o.walk(ctx, reader, names, config.HeaderEventTypeList, func(cursor *traversal.Cursor, entry *traversal.Entry) error {
		return nil
	})
}
