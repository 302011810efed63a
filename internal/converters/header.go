package converters

import (
	"fmt"
	"time"

	"github.com/pojntfx/ustar/internal/persisters"
	"github.com/pojntfx/ustar/pkg/config"
	"github.com/pojntfx/ustar/pkg/headers"
	"github.com/volatiletech/null/v8"
)

// HeaderToConfigHeader converts a decoded header found at the given record.
// The name is the entry's full path; the prefix is kept for reference.
func HeaderToConfigHeader(record int64, hdr *headers.Header) *config.Header {
	return &config.Header{
		Record:   record,
		Name:     hdr.FullName(),
		Prefix:   hdr.Prefix,
		Linkname: hdr.Linkname,
		Size:     int64(hdr.Size),
		Mode:     int64(hdr.Mode),
		UID:      int64(hdr.UID),
		GID:      int64(hdr.GID),
		Mtime:    int64(hdr.Mtime),
		Uname:    hdr.Uname,
		Gname:    hdr.Gname,
		Typeflag: int64(hdr.Typeflag),
	}
}

func ConfigHeaderToCSV(hdr *config.Header) []string {
	return []string{
		fmt.Sprintf("%v", hdr.Record), hdr.Name, fmt.Sprintf("%v", hdr.Size), fmt.Sprintf("%o", hdr.Mode), fmt.Sprintf("%v", hdr.UID), fmt.Sprintf("%v", hdr.GID), hdr.Uname, hdr.Gname, time.Unix(hdr.Mtime, 0).UTC().Format(time.RFC3339), fmt.Sprintf("%v", hdr.Typeflag),
	}
}

func ConfigHeaderToDBHeader(hdr *config.Header) *persisters.Header {
	return &persisters.Header{
		Record:   hdr.Record,
		Name:     hdr.Name,
		Prefix:   null.NewString(hdr.Prefix, hdr.Prefix != ""),
		Linkname: null.NewString(hdr.Linkname, hdr.Linkname != ""),
		Size:     hdr.Size,
		Mode:     hdr.Mode,
		UID:      hdr.UID,
		GID:      hdr.GID,
		Mtime:    hdr.Mtime,
		Uname:    hdr.Uname,
		Gname:    hdr.Gname,
		Typeflag: hdr.Typeflag,
	}
}

func DBHeaderToConfigHeader(dbhdr *persisters.Header) *config.Header {
	return &config.Header{
		Record:   dbhdr.Record,
		Name:     dbhdr.Name,
		Prefix:   dbhdr.Prefix.String,
		Linkname: dbhdr.Linkname.String,
		Size:     dbhdr.Size,
		Mode:     dbhdr.Mode,
		UID:      dbhdr.UID,
		GID:      dbhdr.GID,
		Mtime:    dbhdr.Mtime,
		Uname:    dbhdr.Uname,
		Gname:    dbhdr.Gname,
		Typeflag: dbhdr.Typeflag,
	}
}
