package keys

import (
	"bytes"
	"fmt"

	"aead.dev/minisign"
	"github.com/pojntfx/ustar/pkg/config"
)

// ParseSignerRecipient parses the public key a detached signature is
// checked against.
func ParseSignerRecipient(
	signatureFormat string,
	pubkey []byte,
) (interface{}, error) {
	switch signatureFormat {
	case config.SignatureFormatMinisignKey:
		var recipient minisign.PublicKey
		if err := recipient.UnmarshalText(bytes.TrimSpace(pubkey)); err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrRecipientUnparsable, err)
		}

		return recipient, nil
	case config.SignatureFormatPGPKey:
		recipients, err := readKeyRing(pubkey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrRecipientUnparsable, err)
		}

		return recipients, nil
	case config.NoneKey:
		return pubkey, nil
	default:
		return nil, fmt.Errorf("%w: %v", config.ErrUnsupportedSignatureFormat, signatureFormat)
	}
}
