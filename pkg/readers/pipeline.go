package readers

import (
	"context"
	"io"

	"github.com/pojntfx/ustar/internal/compression"
	"github.com/pojntfx/ustar/internal/encryption"
	"github.com/pojntfx/ustar/internal/ioext"
	"github.com/pojntfx/ustar/internal/signature"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/logging"
)

// Pipeline is an archive source with its decryption, decompression and
// signature stages applied, in that order. Reader yields the plain ustar
// stream.
type Pipeline struct {
	Reader *ioext.BlockReader
	Raw    *Counter

	pipes        config.PipeConfig
	decryptor    io.ReadCloser
	decompressor io.ReadCloser
	verify       func() error
	logger       logging.StructuredLogger
}

func NewPipeline(
	ctx context.Context,
	reader config.ReaderConfig,
	pipes config.PipeConfig,
	crypto config.CryptoConfig,
	logger logging.StructuredLogger,
) (*Pipeline, error) {
	drive := reader.Drive
	if !reader.Seekable {
		// Tape drives only accept reads of whole records
		recordSize := pipes.RecordSize
		if recordSize < 1 {
			recordSize = config.DefaultRecordSize
		}

		drive = ioext.NewRecordReader(drive, config.BlockSize*recordSize)
	}

	raw := &Counter{Reader: drive}

	p := &Pipeline{
		Raw:    raw,
		pipes:  pipes,
		logger: logger,
	}

	// Without any stages the source can be seeked directly
	if reader.Seekable &&
		pipes.Encryption == config.NoneKey &&
		pipes.Compression == config.NoneKey &&
		pipes.Signature == config.NoneKey {
		p.Reader = ioext.NewBlockReader(reader.Drive, true)
		p.verify = func() error {
			return nil
		}

		return p, nil
	}

	decryptor, err := encryption.Decrypt(raw, pipes.Encryption, crypto.Identity)
	if err != nil {
		return nil, err
	}
	p.decryptor = decryptor

	decompressor, err := compression.Decompress(ctx, decryptor, pipes.Compression)
	if err != nil {
		_ = p.Close()

		return nil, err
	}
	p.decompressor = decompressor

	verifier, verify, err := signature.Verify(decompressor, pipes.Signature, crypto.Recipient, crypto.Signature)
	if err != nil {
		_ = p.Close()

		return nil, err
	}
	p.verify = verify

	p.Reader = ioext.NewBlockReader(verifier, false)

	logger.Debug("Opened archive pipeline", map[string]interface{}{
		"encryption":  pipes.Encryption,
		"compression": pipes.Compression,
		"signature":   pipes.Signature,
	})

	return p, nil
}

// Verify checks the detached signature, if any. The rest of the stream is
// read first, as the signature covers all of it.
func (p *Pipeline) Verify() error {
	if p.pipes.Signature == config.NoneKey {
		return nil
	}

	if _, err := io.Copy(io.Discard, p.Reader); err != nil {
		return err
	}

	p.logger.Debug("Verifying signature", map[string]interface{}{
		"format":    p.pipes.Signature,
		"bytesRead": p.Reader.BytesRead,
		"rawRead":   p.Raw.BytesRead,
	})

	return p.verify()
}

func (p *Pipeline) Close() error {
	if p.decompressor != nil {
		if err := p.decompressor.Close(); err != nil {
			return err
		}
	}

	if p.decryptor != nil {
		if err := p.decryptor.Close(); err != nil {
			return err
		}
	}

	return nil
}
