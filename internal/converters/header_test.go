package converters

import (
	"reflect"
	"testing"

	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/headers"
)

func TestHeaderToConfigHeader(t *testing.T) {
	got := HeaderToConfigHeader(7, &headers.Header{
		Name:     "c.txt",
		Prefix:   "a/b",
		Mode:     0644,
		UID:      1000,
		GID:      100,
		Size:     513,
		Mtime:    1700000000,
		Typeflag: config.TypeflagRegular,
		Uname:    "alice",
		Gname:    "users",
	})

	want := &config.Header{
		Record:   7,
		Name:     "a/b/c.txt",
		Prefix:   "a/b",
		Size:     513,
		Mode:     0644,
		UID:      1000,
		GID:      100,
		Mtime:    1700000000,
		Uname:    "alice",
		Gname:    "users",
		Typeflag: '0',
	}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("HeaderToConfigHeader() = %+v, want %+v", got, want)
	}

	wantCSV := []string{"7", "a/b/c.txt", "513", "644", "1000", "100", "alice", "users", "2023-11-14T22:13:20Z", "48"}
	if gotCSV := ConfigHeaderToCSV(got); !reflect.DeepEqual(gotCSV, wantCSV) {
		t.Errorf("ConfigHeaderToCSV() = %v, want %v", gotCSV, wantCSV)
	}
}

func TestDBHeaderRoundTrip(t *testing.T) {
	for _, hdr := range []*config.Header{
		{Record: 3, Name: "plain.txt", Size: 1, Mode: 0644, Typeflag: '0'},
		{Record: 9, Name: "a/b/c.txt", Prefix: "a/b", Linkname: "target", Uname: "alice", Typeflag: 0},
	} {
		dbhdr := ConfigHeaderToDBHeader(hdr)

		if dbhdr.Prefix.Valid != (hdr.Prefix != "") {
			t.Errorf("ConfigHeaderToDBHeader().Prefix = %+v for prefix %q", dbhdr.Prefix, hdr.Prefix)
		}

		if got := DBHeaderToConfigHeader(dbhdr); !reflect.DeepEqual(got, hdr) {
			t.Errorf("DBHeaderToConfigHeader(ConfigHeaderToDBHeader()) = %+v, want %+v", got, hdr)
		}
	}
}
