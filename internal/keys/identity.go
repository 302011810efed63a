package keys

import (
	"bytes"
	"fmt"
	"io"

	"filippo.io/age"
	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/pojntfx/ustar/pkg/config"
)

// ParseIdentity parses the private key used to decrypt an archive. A
// non-empty password unlocks a key that has been protected by keygen.
func ParseIdentity(
	encryptionFormat string,
	privkey []byte,
	password string,
) (interface{}, error) {
	switch encryptionFormat {
	case config.EncryptionFormatAgeKey:
		if password != "" {
			passwordIdentity, err := age.NewScryptIdentity(password)
			if err != nil {
				return nil, err
			}

			r, err := age.Decrypt(bytes.NewReader(privkey), passwordIdentity)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", config.ErrIdentityUnparsable, err)
			}

			out := &bytes.Buffer{}
			if _, err := io.Copy(out, r); err != nil {
				return nil, err
			}

			privkey = out.Bytes()
		}

		identity, err := age.ParseX25519Identity(string(bytes.TrimSpace(privkey)))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrIdentityUnparsable, err)
		}

		return identity, nil
	case config.EncryptionFormatPGPKey:
		identities, err := readKeyRing(privkey)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", config.ErrIdentityUnparsable, err)
		}

		// Keys generated without a password are still locked with an empty one
		for _, identity := range identities {
			if identity.PrivateKey == nil {
				return nil, config.ErrIdentityUnparsable
			}

			if identity.PrivateKey.Encrypted {
				if err := identity.PrivateKey.Decrypt([]byte(password)); err != nil {
					return nil, err
				}
			}

			for _, subkey := range identity.Subkeys {
				if subkey.PrivateKey != nil && subkey.PrivateKey.Encrypted {
					if err := subkey.PrivateKey.Decrypt([]byte(password)); err != nil {
						return nil, err
					}
				}
			}
		}

		return identities, nil
	case config.NoneKey:
		return privkey, nil
	default:
		return nil, fmt.Errorf("%w: %v", config.ErrUnsupportedEncryptionFormat, encryptionFormat)
	}
}

// Keys may be stored binary or ASCII-armored.
func readKeyRing(key []byte) (openpgp.EntityList, error) {
	if bytes.HasPrefix(bytes.TrimSpace(key), []byte("-----BEGIN")) {
		return openpgp.ReadArmoredKeyRing(bytes.NewReader(key))
	}

	return openpgp.ReadKeyRing(bytes.NewReader(key))
}
