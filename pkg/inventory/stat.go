package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pojntfx/ustar/internal/converters"
	"github.com/pojntfx/ustar/internal/persisters"
	"github.com/pojntfx/ustar/pkg/config"
)

// Stat returns the header indexed at record.
func Stat(
	ctx context.Context,
	metadata config.MetadataConfig,

	record int64,

	onHeader func(hdr *config.Header),
) (*config.Header, error) {
	return get(ctx, metadata, func(p *persisters.MetadataPersister) (*persisters.Header, error) {
		dbhdr, err := p.GetHeader(ctx, record)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: record %v", config.ErrHeaderEmpty, record)
		}

		return dbhdr, err
	}, onHeader)
}

// Locate returns the last header indexed under the full path name.
func Locate(
	ctx context.Context,
	metadata config.MetadataConfig,

	name string,

	onHeader func(hdr *config.Header),
) (*config.Header, error) {
	return get(ctx, metadata, func(p *persisters.MetadataPersister) (*persisters.Header, error) {
		dbhdr, err := p.GetHeaderByName(ctx, name)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %v", config.ErrMissingMember, name)
		}

		return dbhdr, err
	}, onHeader)
}

func get(
	ctx context.Context,
	metadata config.MetadataConfig,
	query func(p *persisters.MetadataPersister) (*persisters.Header, error),
	onHeader func(hdr *config.Header),
) (*config.Header, error) {
	metadataPersister := persisters.NewMetadataPersister(metadata.Metadata)
	if err := metadataPersister.Open(); err != nil {
		return nil, err
	}
	defer metadataPersister.Close()

	dbhdr, err := query(metadataPersister)
	if err != nil {
		return nil, err
	}

	hdr := converters.DBHeaderToConfigHeader(dbhdr)
	if onHeader != nil {
		onHeader(hdr)
	}

	return hdr, nil
}
