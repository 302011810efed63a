package utility

import (
	"bytes"
	"crypto/rand"
	"fmt"

	"aead.dev/minisign"
	"filippo.io/age"
	"github.com/ProtonMail/gopenpgp/v2/armor"
	"github.com/ProtonMail/gopenpgp/v2/crypto"
	"github.com/ProtonMail/gopenpgp/v2/helper"
	"github.com/pojntfx/ustar/pkg/config"
)

// Keygen generates a key pair for the encryption format or, if no
// encryption format is set, for the signature format. A non-empty password
// protects the private key.
func Keygen(
	pipes config.PipeConfig,
	password config.PasswordConfig,
) (privkey []byte, pubkey []byte, err error) {
	switch {
	case pipes.Encryption != config.NoneKey:
		return generateEncryptionKey(pipes.Encryption, password.Password)
	case pipes.Signature != config.NoneKey:
		return generateSignatureKey(pipes.Signature, password.Password)
	default:
		return []byte{}, []byte{}, config.ErrKeygenFormatUnsupported
	}
}

func generateEncryptionKey(
	encryptionFormat string,
	password string,
) (privkey []byte, pubkey []byte, err error) {
	switch encryptionFormat {
	case config.EncryptionFormatAgeKey:
		identity, err := age.GenerateX25519Identity()
		if err != nil {
			return []byte{}, []byte{}, err
		}

		priv := []byte(identity.String())
		pub := []byte(identity.Recipient().String())

		if password == "" {
			return priv, pub, nil
		}

		passwordRecipient, err := age.NewScryptRecipient(password)
		if err != nil {
			return []byte{}, []byte{}, err
		}

		out := &bytes.Buffer{}
		w, err := age.Encrypt(out, passwordRecipient)
		if err != nil {
			return []byte{}, []byte{}, err
		}

		if _, err := w.Write(priv); err != nil {
			return []byte{}, []byte{}, err
		}

		if err := w.Close(); err != nil {
			return []byte{}, []byte{}, err
		}

		return out.Bytes(), pub, nil
	case config.EncryptionFormatPGPKey:
		return generatePGPKey(password)
	default:
		return []byte{}, []byte{}, fmt.Errorf("%w: %v", config.ErrKeygenFormatUnsupported, encryptionFormat)
	}
}

func generateSignatureKey(
	signatureFormat string,
	password string,
) (privkey []byte, pubkey []byte, err error) {
	switch signatureFormat {
	case config.SignatureFormatMinisignKey:
		pub, rawPriv, err := minisign.GenerateKey(rand.Reader)
		if err != nil {
			return []byte{}, []byte{}, err
		}

		priv, err := minisign.EncryptKey(password, rawPriv)
		if err != nil {
			return []byte{}, []byte{}, err
		}

		pubText, err := pub.MarshalText()
		if err != nil {
			return []byte{}, []byte{}, err
		}

		return priv, pubText, nil
	case config.SignatureFormatPGPKey:
		return generatePGPKey(password)
	default:
		return []byte{}, []byte{}, fmt.Errorf("%w: %v", config.ErrKeygenFormatUnsupported, signatureFormat)
	}
}

// Both keys are returned in binary form.
func generatePGPKey(password string) (privkey []byte, pubkey []byte, err error) {
	armoredIdentity, err := helper.GenerateKey("ustar", "ustar@example.com", []byte(password), "x25519", 0)
	if err != nil {
		return []byte{}, []byte{}, err
	}

	rawIdentity, err := armor.Unarmor(armoredIdentity)
	if err != nil {
		return []byte{}, []byte{}, err
	}

	identity, err := crypto.NewKey(rawIdentity)
	if err != nil {
		return []byte{}, []byte{}, err
	}

	pub, err := identity.GetPublicKey()
	if err != nil {
		return []byte{}, []byte{}, err
	}

	priv, err := identity.Serialize()
	if err != nil {
		return []byte{}, []byte{}, err
	}

	return priv, pub, nil
}
