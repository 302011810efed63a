package signature

import (
	"bytes"
	"fmt"
	"io"

	"aead.dev/minisign"
	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ProtonMail/go-crypto/openpgp/armor"
	"github.com/ProtonMail/go-crypto/openpgp/packet"
	"github.com/pojntfx/ustar/pkg/config"
)

// Verify returns a reader that hashes everything read from src, and a
// function that checks the detached signature against it. The check must
// only be called once src has been read to its end.
func Verify(
	src io.Reader,
	signatureFormat string,
	recipient interface{},
	signature []byte,
) (io.Reader, func() error, error) {
	switch signatureFormat {
	case config.SignatureFormatMinisignKey:
		recipient, ok := recipient.(minisign.PublicKey)
		if !ok {
			return nil, nil, config.ErrRecipientUnparsable
		}

		if len(signature) == 0 {
			return nil, nil, config.ErrSignatureMissing
		}

		verifier := minisign.NewReader(src)

		return verifier, func() error {
			if verifier.Verify(recipient, signature) {
				return nil
			}

			return config.ErrSignatureInvalid
		}, nil
	case config.SignatureFormatPGPKey:
		recipients, ok := recipient.(openpgp.EntityList)
		if !ok || len(recipients) < 1 {
			return nil, nil, config.ErrRecipientUnparsable
		}

		sig, err := parsePGPSignature(signature)
		if err != nil {
			return nil, nil, err
		}

		hash := sig.Hash.New()

		return io.TeeReader(src, hash), func() error {
			if err := recipients[0].PrimaryKey.VerifySignature(hash, sig); err != nil {
				return fmt.Errorf("%w: %v", config.ErrSignatureInvalid, err)
			}

			return nil
		}, nil
	case config.NoneKey:
		return src, func() error {
			return nil
		}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %v", config.ErrUnsupportedSignatureFormat, signatureFormat)
	}
}

func parsePGPSignature(signature []byte) (*packet.Signature, error) {
	if len(signature) == 0 {
		return nil, config.ErrSignatureMissing
	}

	var src io.Reader = bytes.NewReader(signature)
	if bytes.HasPrefix(bytes.TrimSpace(signature), []byte("-----BEGIN")) {
		block, err := armor.Decode(src)
		if err != nil {
			return nil, err
		}

		src = block.Body
	}

	pkt, err := packet.NewReader(src).Next()
	if err != nil {
		return nil, err
	}

	sig, ok := pkt.(*packet.Signature)
	if !ok {
		return nil, config.ErrSignatureInvalid
	}

	return sig, nil
}
