package config

import "errors"

var (
	ErrTruncatedInput = errors.New("truncated input")
	ErrCorruptArchive = errors.New("corrupt archive")
	ErrIO             = errors.New("i/o error")
	ErrMissingMember  = errors.New("not found in archive")

	ErrUnsupportedTypeflag = errors.New("unsupported header type")
	ErrMagicMismatch       = errors.New("this does not look like a tar archive")
	ErrChecksumMismatch    = errors.New("header checksum mismatch")
	ErrNumericOverflow     = errors.New("numeric field overflows 64 bits")
	ErrUnexpectedEOF       = errors.New("unexpected EOF in archive")
	ErrHeaderEmpty         = errors.New("no header at this record")

	ErrUnsupportedCompressionFormat = errors.New("unsupported compression format")
	ErrUnsupportedEncryptionFormat  = errors.New("unsupported encryption format")
	ErrUnsupportedSignatureFormat   = errors.New("unsupported signature format")
	ErrUnsupportedListFormat        = errors.New("unsupported list format")

	ErrIdentityUnparsable  = errors.New("identity could not be parsed")
	ErrRecipientUnparsable = errors.New("recipient could not be parsed")

	ErrSignatureInvalid = errors.New("signature invalid")
	ErrSignatureMissing = errors.New("signature missing")

	ErrRecordSizeInvalid       = errors.New("record size must be at least one block")
	ErrKeyNotAccessible        = errors.New("key not found or accessible")
	ErrKeygenFormatUnsupported = errors.New("can not generate keys for this format")
)
