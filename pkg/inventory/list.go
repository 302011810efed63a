package inventory

import (
	"context"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/persisters"
	"github.com/pojntfx/ustar/pkg/config"
)

// List returns every indexed header in archive order.
func List(
	ctx context.Context,
	metadata config.MetadataConfig,

	onHeader func(hdr *config.Header),
) ([]*config.Header, error) {
	return filter(ctx, metadata, func(hdr *config.Header) bool {
		return true
	}, onHeader)
}

func filter(
	ctx context.Context,
	metadata config.MetadataConfig,
	match func(hdr *config.Header) bool,
	onHeader func(hdr *config.Header),
) ([]*config.Header, error) {
	metadataPersister := persisters.NewMetadataPersister(metadata.Metadata)
	if err := metadataPersister.Open(); err != nil {
		return []*config.Header{}, err
	}
	defer metadataPersister.Close()

	dbhdrs, err := metadataPersister.GetHeaders(ctx)
	if err != nil {
		return []*config.Header{}, err
	}

	headers := []*config.Header{}
	for _, dbhdr := range dbhdrs {
		hdr := converters.DBHeaderToConfigHeader(dbhdr)
		if !match(hdr) {
			continue
		}

		if onHeader != nil {
			onHeader(hdr)
		}

		headers = append(headers, hdr)
	}

	return headers, nil
}
