package headers

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/pojntfx/ustar/internal/ioext"
	"github.com/pojntfx/ustar/internal/testutil"
	"github.com/pojntfx/ustar/pkg/config"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		block    []byte
		wantName string
		wantSize uint64
		wantErr  error
	}{
		{
			"Regular file",
			testutil.Header(testutil.Entry{Name: "hello.txt", Body: []byte("world")}),
			"hello.txt",
			5,
			nil,
		},
		{
			"Old-style NUL typeflag",
			testutil.Header(testutil.Entry{Name: "old.txt", Size: 3, Typeflag: 0x00, RawTypeflag: true}),
			"old.txt",
			3,
			nil,
		},
		{
			"No magic",
			testutil.Header(testutil.Entry{Name: "v7.txt", Size: 1, NoMagic: true}),
			"v7.txt",
			1,
			nil,
		},
		{
			"GNU magic",
			testutil.Header(testutil.Entry{Name: "gnu.txt", Size: 1, Magic: "ustar "}),
			"gnu.txt",
			1,
			nil,
		},
		{
			"Base-256 size",
			testutil.Header(testutil.Entry{Name: "big.img", Size: 1 << 34}),
			"big.img",
			1 << 34,
			nil,
		},
		{
			"All zero",
			testutil.ZeroBlocks(1),
			"",
			0,
			nil,
		},
		{
			"Bad magic",
			testutil.Header(testutil.Entry{Name: "x", Magic: "bogus"}),
			"",
			0,
			config.ErrMagicMismatch,
		},
		{
			"Directory",
			testutil.Header(testutil.Entry{Name: "dir/", Typeflag: '5'}),
			"",
			0,
			config.ErrUnsupportedTypeflag,
		},
		{
			"Symlink",
			testutil.Header(testutil.Entry{Name: "link", Typeflag: '2'}),
			"",
			0,
			config.ErrUnsupportedTypeflag,
		},
		{
			"Short block",
			make([]byte, 100),
			"",
			0,
			config.ErrTruncatedInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.block)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if tt.wantErr != nil {
				return
			}

			if got.Name != tt.wantName {
				t.Errorf("Decode().Name = %q, want %q", got.Name, tt.wantName)
			}

			if got.Size != tt.wantSize {
				t.Errorf("Decode().Size = %v, want %v", got.Size, tt.wantSize)
			}
		})
	}
}

func TestDecode_CorruptKinds(t *testing.T) {
	for _, block := range [][]byte{
		testutil.Header(testutil.Entry{Name: "x", Magic: "bogus"}),
		testutil.Header(testutil.Entry{Name: "x", Typeflag: '5'}),
	} {
		if _, err := Decode(block); !errors.Is(err, config.ErrCorruptArchive) {
			t.Errorf("Decode() error = %v, wantErr %v", err, config.ErrCorruptArchive)
		}
	}
}

func TestDecode_MagicCheckedBeforeNumericFields(t *testing.T) {
	block := testutil.Header(testutil.Entry{Name: "x", Magic: "bogus"})

	// Base-256 size no entry can have
	copy(block[config.ChksumOffset-config.MtimeLength-config.SizeLength:], []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff})

	if _, err := Decode(block); !errors.Is(err, config.ErrMagicMismatch) {
		t.Errorf("Decode() error = %v, wantErr %v", err, config.ErrMagicMismatch)
	}
}

func TestDecode_AllFields(t *testing.T) {
	got, err := Decode(testutil.Header(testutil.Entry{
		Name:   "file.txt",
		Prefix: "some/dir",
		Body:   []byte("abc"),
		Mode:   0600,
		UID:    1000,
		GID:    100,
		Mtime:  1700000000,
		Uname:  "alice",
		Gname:  "users",
	}))
	if err != nil {
		t.Errorf("Decode() error = %v", err)

		return
	}

	want := Header{
		Name:     "file.txt",
		Mode:     0600,
		UID:      1000,
		GID:      100,
		Size:     3,
		Mtime:    1700000000,
		Chksum:   got.Chksum,
		Typeflag: config.TypeflagRegular,
		Magic:    "ustar",
		Version:  "00",
		Uname:    "alice",
		Gname:    "users",
		Prefix:   "some/dir",
	}

	if *got != want {
		t.Errorf("Decode() = %+v, want %+v", *got, want)
	}

	if got.FullName() != "some/dir/file.txt" {
		t.Errorf("FullName() = %q, want %q", got.FullName(), "some/dir/file.txt")
	}
}

func TestHeader_IsEmpty(t *testing.T) {
	tests := []struct {
		name string
		hdr  Header
		want bool
	}{
		{"Zero value", Header{}, true},
		{"Named", Header{Name: "a"}, false},
		{"Only a size", Header{Size: 1}, false},
		{"Only a typeflag", Header{Typeflag: config.TypeflagRegular}, false},
		{"Only a version", Header{Version: "00"}, false},
		{"Only a prefix", Header{Prefix: "p"}, false},
		{"Only a devminor", Header{Devminor: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.hdr.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHeader_DataLayout(t *testing.T) {
	tests := []struct {
		size           uint64
		wantBlocks     uint64
		wantLastLength int
	}{
		{0, 0, config.BlockSize},
		{5, 1, 5},
		{512, 1, config.BlockSize},
		{513, 2, 1},
		{1024, 2, config.BlockSize},
	}

	for _, tt := range tests {
		hdr := Header{Size: tt.size}

		if got := hdr.DataBlocks(); got != tt.wantBlocks {
			t.Errorf("DataBlocks() for size %v = %v, want %v", tt.size, got, tt.wantBlocks)
		}

		if got := hdr.LastBlockLength(); got != tt.wantLastLength {
			t.Errorf("LastBlockLength() for size %v = %v, want %v", tt.size, got, tt.wantLastLength)
		}

		length, ok := hdr.DataLength()
		if !ok || length != int64(tt.wantBlocks)*config.BlockSize {
			t.Errorf("DataLength() for size %v = %v, %v", tt.size, length, ok)
		}
	}

	if _, ok := (&Header{Size: 1 << 63}).DataLength(); ok {
		t.Error("DataLength() is representable for a size of 2^63")
	}
}

func TestRead(t *testing.T) {
	archive := testutil.Archive(testutil.Entry{Name: "hello.txt", Body: []byte("world")})

	tests := []struct {
		name    string
		data    []byte
		cfg     config.HeaderConfig
		wantErr error
	}{
		{"Header", archive, config.HeaderConfig{}, nil},
		{"Header with checksum verification", archive, config.HeaderConfig{VerifyChecksum: true}, nil},
		{"Clean EOF", []byte{}, config.HeaderConfig{}, io.EOF},
		{"Partial record", archive[:300], config.HeaderConfig{}, config.ErrCorruptArchive},
		{"Single byte", archive[:1], config.HeaderConfig{}, config.ErrUnexpectedEOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := ioext.NewBlockReader(bytes.NewReader(tt.data), true)

			_, err := Read(src, tt.cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Read() error = %v, wantErr %v", err, tt.wantErr)

				return
			}

			if tt.wantErr == nil && src.BytesRead != config.BlockSize {
				t.Errorf("Read() consumed %v bytes, want %v", src.BytesRead, config.BlockSize)
			}
		})
	}
}

func TestRead_ChecksumMismatch(t *testing.T) {
	block := testutil.Header(testutil.Entry{Name: "hello.txt", Body: []byte("world")})
	block[0] = 'j'

	if _, err := Read(ioext.NewBlockReader(bytes.NewReader(block), true), config.HeaderConfig{}); err != nil {
		t.Errorf("Read() error = %v without checksum verification", err)
	}

	_, err := Read(ioext.NewBlockReader(bytes.NewReader(block), true), config.HeaderConfig{VerifyChecksum: true})
	if !errors.Is(err, config.ErrChecksumMismatch) || !errors.Is(err, config.ErrCorruptArchive) {
		t.Errorf("Read() error = %v, wantErr %v", err, config.ErrChecksumMismatch)
	}
}

func TestRead_EmptyRecordSkipsChecksum(t *testing.T) {
	hdr, err := Read(ioext.NewBlockReader(bytes.NewReader(testutil.ZeroBlocks(1)), false), config.HeaderConfig{VerifyChecksum: true})
	if err != nil {
		t.Errorf("Read() error = %v", err)

		return
	}

	if !hdr.IsEmpty() {
		t.Errorf("Read() = %+v, want empty header", hdr)
	}
}
