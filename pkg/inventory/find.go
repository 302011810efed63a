package inventory

import (
	"context"
	"regexp"

	"github.com/pojntfx/ustar/pkg/config"
)

// Find returns the indexed headers whose full path matches expression.
func Find(
	ctx context.Context,
	metadata config.MetadataConfig,

	expression string,

	onHeader func(hdr *config.Header),
) ([]*config.Header, error) {
	re, err := regexp.Compile(expression)
	if err != nil {
		return []*config.Header{}, err
	}

	return filter(ctx, metadata, func(hdr *config.Header) bool {
		return re.MatchString(hdr.Name)
	}, onHeader)
}
