package config

const (
	NoneKey = ""
	AutoKey = "auto"

	CompressionFormatGZipKey          = "gzip"
	CompressionFormatParallelGZipKey  = "parallelgzip"
	CompressionFormatLZ4Key           = "lz4"
	CompressionFormatZStandardKey     = "zstandard"
	CompressionFormatBrotliKey        = "brotli"
	CompressionFormatBzip2Key         = "bzip2"
	CompressionFormatBzip2ParallelKey = "parallelbzip2"

	EncryptionFormatAgeKey = "age"
	EncryptionFormatPGPKey = "pgp"

	SignatureFormatMinisignKey = "minisign"
	SignatureFormatPGPKey      = "pgp"

	CompressionFormatGZipSuffix      = ".gz"
	CompressionFormatLZ4Suffix       = ".lz4"
	CompressionFormatZStandardSuffix = ".zst"
	CompressionFormatBrotliSuffix    = ".br"
	CompressionFormatBzip2Suffix     = ".bz2"

	EncryptionFormatAgeSuffix = ".age"
	EncryptionFormatPGPSuffix = ".pgp"

	ListFormatNameKey = "name"
	ListFormatCSVKey  = "csv"

	HeaderEventTypeList    = "list"
	HeaderEventTypeExtract = "extract"
	HeaderEventTypeIndex   = "index"
	HeaderEventTypeFetch   = "fetch"

	StdinPath = "-"

	// Blocks per read from tape drives and other sources that can not be seeked
	DefaultRecordSize = 20
)

// Layout of a ustar header record
const (
	BlockSize = 512

	NameLength     = 100
	ModeLength     = 8
	UIDLength      = 8
	GIDLength      = 8
	SizeLength     = 12
	MtimeLength    = 12
	ChksumLength   = 8
	TypeflagLength = 1
	LinknameLength = 100
	MagicLength    = 6
	VersionLength  = 2
	UnameLength    = 32
	GnameLength    = 32
	DevmajorLength = 8
	DevminorLength = 8
	PrefixLength   = 155
	PaddingLength  = 12

	ChksumOffset = NameLength + ModeLength + UIDLength + GIDLength + SizeLength + MtimeLength

	MagicUSTAR = "ustar"

	TypeflagRegular    = '0'
	TypeflagRegularOld = '\x00'
)

var (
	KnownCompressionFormats = []string{NoneKey, AutoKey, CompressionFormatGZipKey, CompressionFormatParallelGZipKey, CompressionFormatLZ4Key, CompressionFormatZStandardKey, CompressionFormatBrotliKey, CompressionFormatBzip2Key, CompressionFormatBzip2ParallelKey}

	KnownEncryptionFormats = []string{NoneKey, AutoKey, EncryptionFormatAgeKey, EncryptionFormatPGPKey}

	KnownSignatureFormats = []string{NoneKey, SignatureFormatMinisignKey, SignatureFormatPGPKey}

	KnownListFormats = []string{ListFormatNameKey, ListFormatCSVKey}
)
