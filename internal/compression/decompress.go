package compression

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/cosnicolaou/pbzip2"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
	"github.com/pojntfx/ustar/pkg/config"
)

// Decompress wraps src so that reading from the result yields the
// uncompressed archive.
func Decompress(
	ctx context.Context,
	src io.Reader,
	compressionFormat string,
) (io.ReadCloser, error) {
	switch compressionFormat {
	case config.CompressionFormatGZipKey:
		return gzip.NewReader(src)
	case config.CompressionFormatParallelGZipKey:
		return pgzip.NewReader(src)
	case config.CompressionFormatLZ4Key:
		lz := lz4.NewReader(src)
		if err := lz.Apply(lz4.ConcurrencyOption(-1)); err != nil {
			return nil, err
		}

		return io.NopCloser(lz), nil
	case config.CompressionFormatZStandardKey:
		zz, err := zstd.NewReader(src)
		if err != nil {
			return nil, err
		}

		return zz.IOReadCloser(), nil
	case config.CompressionFormatBrotliKey:
		return io.NopCloser(brotli.NewReader(src)), nil
	case config.CompressionFormatBzip2Key:
		return bzip2.NewReader(src, nil)
	case config.CompressionFormatBzip2ParallelKey:
		return io.NopCloser(pbzip2.NewReader(ctx, src)), nil
	case config.NoneKey:
		return io.NopCloser(src), nil
	default:
		return nil, fmt.Errorf("%w: %v", config.ErrUnsupportedCompressionFormat, compressionFormat)
	}
}
