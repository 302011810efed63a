package encryption

import (
	"fmt"
	"io"

	"filippo.io/age"
	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/pojntfx/ustar/pkg/config"
)

// Decrypt wraps src so that reading from the result yields the plaintext.
// The identity must have been parsed for the same format by keys.ParseIdentity.
func Decrypt(
	src io.Reader,
	encryptionFormat string,
	identity interface{},
) (io.ReadCloser, error) {
	switch encryptionFormat {
	case config.EncryptionFormatAgeKey:
		identity, ok := identity.(*age.X25519Identity)
		if !ok {
			return nil, config.ErrIdentityUnparsable
		}

		r, err := age.Decrypt(src, identity)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(r), nil
	case config.EncryptionFormatPGPKey:
		identity, ok := identity.(openpgp.EntityList)
		if !ok {
			return nil, config.ErrIdentityUnparsable
		}

		msg, err := openpgp.ReadMessage(src, identity, nil, nil)
		if err != nil {
			return nil, err
		}

		return io.NopCloser(msg.UnverifiedBody), nil
	case config.NoneKey:
		return io.NopCloser(src), nil
	default:
		return nil, fmt.Errorf("%w: %v", config.ErrUnsupportedEncryptionFormat, encryptionFormat)
	}
}
