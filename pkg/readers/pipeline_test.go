package readers

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/rand"
	"io"
	"testing"

	"aead.dev/minisign"
	"filippo.io/age"
	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
	"github.com/pierrec/lz4/v4"
	"github.com/pojntfx/ustar/internal/testutil"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var archive = testutil.Archive(
	testutil.Entry{Name: "hello.txt", Body: []byte("world")},
	testutil.Entry{Name: "big.bin", Body: bytes.Repeat([]byte("ab"), 1000)},
)

func compress(t *testing.T, format string, data []byte) []byte {
	out := &bytes.Buffer{}

	var w io.WriteCloser
	switch format {
	case config.CompressionFormatGZipKey:
		w = gzip.NewWriter(out)
	case config.CompressionFormatParallelGZipKey:
		w = pgzip.NewWriter(out)
	case config.CompressionFormatLZ4Key:
		w = lz4.NewWriter(out)
	case config.CompressionFormatZStandardKey:
		zz, err := zstd.NewWriter(out)
		require.NoError(t, err)

		w = zz
	case config.CompressionFormatBrotliKey:
		w = brotli.NewWriter(out)
	case config.CompressionFormatBzip2Key, config.CompressionFormatBzip2ParallelKey:
		bz, err := bzip2.NewWriter(out, &bzip2.WriterConfig{Level: bzip2.DefaultCompression})
		require.NoError(t, err)

		w = bz
	default:
		t.Fatalf("no writer for %v", format)
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return out.Bytes()
}

func readAll(t *testing.T, p *Pipeline) []byte {
	got, err := io.ReadAll(p.Reader)
	require.NoError(t, err)

	return got
}

func TestPipeline_Plain(t *testing.T) {
	p, err := NewPipeline(
		context.Background(),
		config.ReaderConfig{Drive: bytes.NewReader(archive), Seekable: true},
		config.PipeConfig{},
		config.CryptoConfig{},
		&testutil.Logger{},
	)
	require.NoError(t, err)
	defer p.Close()

	assert.True(t, p.Reader.Seekable())
	assert.Equal(t, archive, readAll(t, p))
	assert.NoError(t, p.Verify())
}

func TestPipeline_TapeReadsWholeRecords(t *testing.T) {
	tests := []struct {
		name       string
		data       []byte
		pipes      config.PipeConfig
		recordSize int
	}{
		{"Plain", archive, config.PipeConfig{RecordSize: 20}, config.BlockSize * 20},
		{"Single block records", archive, config.PipeConfig{RecordSize: 1}, config.BlockSize},
		{"Default record size", archive, config.PipeConfig{}, config.BlockSize * config.DefaultRecordSize},
		{"Compressed", compress(t, config.CompressionFormatZStandardKey, archive), config.PipeConfig{Compression: config.CompressionFormatZStandardKey, RecordSize: 20}, config.BlockSize * 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tape := &testutil.Tape{Reader: bytes.NewReader(tt.data)}

			p, err := NewPipeline(
				context.Background(),
				config.ReaderConfig{Drive: tape},
				tt.pipes,
				config.CryptoConfig{},
				&testutil.Logger{},
			)
			require.NoError(t, err)
			defer p.Close()

			eof, err := p.Reader.Probe()
			require.NoError(t, err)
			require.False(t, eof)

			assert.Equal(t, archive, readAll(t, p))

			for _, n := range tape.Reads {
				assert.Equal(t, tt.recordSize, n)
			}
		})
	}
}

func TestPipeline_Decompress(t *testing.T) {
	for _, format := range []string{
		config.CompressionFormatGZipKey,
		config.CompressionFormatParallelGZipKey,
		config.CompressionFormatLZ4Key,
		config.CompressionFormatZStandardKey,
		config.CompressionFormatBrotliKey,
		config.CompressionFormatBzip2Key,
		config.CompressionFormatBzip2ParallelKey,
	} {
		t.Run(format, func(t *testing.T) {
			compressed := compress(t, format, archive)

			p, err := NewPipeline(
				context.Background(),
				config.ReaderConfig{Drive: bytes.NewReader(compressed), Seekable: true},
				config.PipeConfig{Compression: format},
				config.CryptoConfig{},
				&testutil.Logger{},
			)
			require.NoError(t, err)
			defer p.Close()

			assert.False(t, p.Reader.Seekable())
			assert.Equal(t, archive, readAll(t, p))
			assert.Equal(t, int64(len(compressed)), p.Raw.BytesRead)
		})
	}
}

func TestPipeline_UnsupportedFormats(t *testing.T) {
	for _, pipes := range []config.PipeConfig{
		{Compression: "xz"},
		{Encryption: "rot13"},
		{Signature: "gpgsm"},
	} {
		_, err := NewPipeline(
			context.Background(),
			config.ReaderConfig{Drive: bytes.NewReader(archive)},
			pipes,
			config.CryptoConfig{},
			&testutil.Logger{},
		)
		assert.Error(t, err)
	}
}

func TestPipeline_DecryptAge(t *testing.T) {
	identity, err := age.GenerateX25519Identity()
	require.NoError(t, err)

	encrypted := &bytes.Buffer{}
	w, err := age.Encrypt(encrypted, identity.Recipient())
	require.NoError(t, err)

	_, err = w.Write(compress(t, config.CompressionFormatZStandardKey, archive))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	p, err := NewPipeline(
		context.Background(),
		config.ReaderConfig{Drive: encrypted},
		config.PipeConfig{Compression: config.CompressionFormatZStandardKey, Encryption: config.EncryptionFormatAgeKey},
		config.CryptoConfig{Identity: identity},
		&testutil.Logger{},
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, archive, readAll(t, p))
}

func TestPipeline_DecryptAgeWrongIdentityType(t *testing.T) {
	_, err := NewPipeline(
		context.Background(),
		config.ReaderConfig{Drive: bytes.NewReader(archive)},
		config.PipeConfig{Encryption: config.EncryptionFormatAgeKey},
		config.CryptoConfig{Identity: []byte("not a key")},
		&testutil.Logger{},
	)
	require.ErrorIs(t, err, config.ErrIdentityUnparsable)
}

func TestPipeline_DecryptPGP(t *testing.T) {
	entity, err := openpgp.NewEntity("ustar", "", "ustar@example.com", nil)
	require.NoError(t, err)

	encrypted := &bytes.Buffer{}
	w, err := openpgp.Encrypt(encrypted, openpgp.EntityList{entity}, nil, nil, nil)
	require.NoError(t, err)

	_, err = w.Write(archive)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	p, err := NewPipeline(
		context.Background(),
		config.ReaderConfig{Drive: encrypted},
		config.PipeConfig{Encryption: config.EncryptionFormatPGPKey},
		config.CryptoConfig{Identity: openpgp.EntityList{entity}},
		&testutil.Logger{},
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, archive, readAll(t, p))
}

func TestPipeline_VerifyMinisign(t *testing.T) {
	pub, priv, err := minisign.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signer := minisign.NewReader(bytes.NewReader(archive))
	_, err = io.Copy(io.Discard, signer)
	require.NoError(t, err)
	sig := signer.Sign(priv)

	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"Valid", archive, nil},
		{"Trailing bytes", append(append([]byte{}, archive...), 0), config.ErrSignatureInvalid},
		{"Modified", append([]byte("j"), archive[1:]...), config.ErrSignatureInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPipeline(
				context.Background(),
				config.ReaderConfig{Drive: bytes.NewReader(tt.data), Seekable: true},
				config.PipeConfig{Signature: config.SignatureFormatMinisignKey},
				config.CryptoConfig{Recipient: pub, Signature: sig},
				&testutil.Logger{},
			)
			require.NoError(t, err)
			defer p.Close()

			// Only the first record is consumed; Verify reads the rest
			_, err = p.Reader.Read(make([]byte, config.BlockSize))
			require.NoError(t, err)

			err = p.Verify()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestPipeline_VerifyMissingSignature(t *testing.T) {
	pub, _, err := minisign.GenerateKey(rand.Reader)
	require.NoError(t, err)

	_, err = NewPipeline(
		context.Background(),
		config.ReaderConfig{Drive: bytes.NewReader(archive)},
		config.PipeConfig{Signature: config.SignatureFormatMinisignKey},
		config.CryptoConfig{Recipient: pub},
		&testutil.Logger{},
	)
	require.ErrorIs(t, err, config.ErrSignatureMissing)
}

func TestPipeline_VerifyPGP(t *testing.T) {
	entity, err := openpgp.NewEntity("ustar", "", "ustar@example.com", nil)
	require.NoError(t, err)

	binarySig := &bytes.Buffer{}
	require.NoError(t, openpgp.DetachSign(binarySig, entity, bytes.NewReader(archive), nil))

	armoredSig := &bytes.Buffer{}
	require.NoError(t, openpgp.ArmoredDetachSign(armoredSig, entity, bytes.NewReader(archive), nil))

	for name, sig := range map[string][]byte{
		"binary":  binarySig.Bytes(),
		"armored": armoredSig.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			for _, data := range [][]byte{archive, append([]byte("j"), archive[1:]...)} {
				p, err := NewPipeline(
					context.Background(),
					config.ReaderConfig{Drive: bytes.NewReader(data)},
					config.PipeConfig{Signature: config.SignatureFormatPGPKey},
					config.CryptoConfig{Recipient: openpgp.EntityList{entity}, Signature: sig},
					&testutil.Logger{},
				)
				require.NoError(t, err)

				err = p.Verify()
				if bytes.Equal(data, archive) {
					require.NoError(t, err)
				} else {
					require.ErrorIs(t, err, config.ErrSignatureInvalid)
				}

				require.NoError(t, p.Close())
			}
		})
	}
}
