package formatting

import (
	"encoding/csv"
	"fmt"
	"io"
)

var (
	HeaderCSV = []string{
		"record", "name", "size", "mode", "uid", "gid", "uname", "gname", "mtime", "typeflag",
	}
)

func PrintCSV(w io.Writer, input []string) error {
	cw := csv.NewWriter(w)

	return cw.WriteAll([][]string{input})
}

// PrintName writes one full path per line.
func PrintName(w io.Writer, name string) error {
	_, err := fmt.Fprintln(w, name)

	return err
}
