package persisters

import (
	"context"
	"fmt"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/volatiletech/null/v8"
	"github.com/volatiletech/sqlboiler/v4/queries"
)

var TableNames = struct {
	Headers string
}{
	Headers: "headers",
}

var HeaderColumns = struct {
	Record   string
	Name     string
	Prefix   string
	Linkname string
	Size     string
	Mode     string
	UID      string
	GID      string
	Mtime    string
	Uname    string
	Gname    string
	Typeflag string
}{
	Record:   "record",
	Name:     "name",
	Prefix:   "prefix",
	Linkname: "linkname",
	Size:     "size",
	Mode:     "mode",
	UID:      "uid",
	GID:      "gid",
	Mtime:    "mtime",
	Uname:    "uname",
	Gname:    "gname",
	Typeflag: "typeflag",
}

// Header is one indexed entry. Name holds the full path; prefix and
// linkname are only stored if they are set.
type Header struct {
	Record   int64       `boil:"record"`
	Name     string      `boil:"name"`
	Prefix   null.String `boil:"prefix"`
	Linkname null.String `boil:"linkname"`
	Size     int64       `boil:"size"`
	Mode     int64       `boil:"mode"`
	UID      int64       `boil:"uid"`
	GID      int64       `boil:"gid"`
	Mtime    int64       `boil:"mtime"`
	Uname    string      `boil:"uname"`
	Gname    string      `boil:"gname"`
	Typeflag int64       `boil:"typeflag"`
}

var metadataMigrations = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "1-create-headers",
			Up: []string{
				`create table headers (
    record integer not null primary key,
    name text not null,
    prefix text,
    linkname text,
    size integer not null,
    mode integer not null,
    uid integer not null,
    gid integer not null,
    mtime integer not null,
    uname text not null,
    gname text not null,
    typeflag integer not null
)`,
				`create index headers_name on headers (name)`,
			},
			Down: []string{
				`drop index headers_name`,
				`drop table headers`,
			},
		},
	},
}

type MetadataPersister struct {
	*SQLite
}

func NewMetadataPersister(dbPath string) *MetadataPersister {
	return &MetadataPersister{
		&SQLite{
			DBPath:     dbPath,
			Migrations: metadataMigrations,
		},
	}
}

var headerColumnList = fmt.Sprintf(
	`%v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v, %v`,
	HeaderColumns.Record,
	HeaderColumns.Name,
	HeaderColumns.Prefix,
	HeaderColumns.Linkname,
	HeaderColumns.Size,
	HeaderColumns.Mode,
	HeaderColumns.UID,
	HeaderColumns.GID,
	HeaderColumns.Mtime,
	HeaderColumns.Uname,
	HeaderColumns.Gname,
	HeaderColumns.Typeflag,
)

// UpsertHeader stores dbhdr, replacing any header indexed at the same record.
func (p *MetadataPersister) UpsertHeader(ctx context.Context, dbhdr *Header) error {
	if _, err := queries.Raw(
		fmt.Sprintf(
			`insert or replace into %v (%v) values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			TableNames.Headers,
			headerColumnList,
		),
		dbhdr.Record,
		dbhdr.Name,
		dbhdr.Prefix,
		dbhdr.Linkname,
		dbhdr.Size,
		dbhdr.Mode,
		dbhdr.UID,
		dbhdr.GID,
		dbhdr.Mtime,
		dbhdr.Uname,
		dbhdr.Gname,
		dbhdr.Typeflag,
	).ExecContext(ctx, p.DB); err != nil {
		return err
	}

	return nil
}

// GetHeaders returns every indexed header in archive order.
func (p *MetadataPersister) GetHeaders(ctx context.Context) ([]*Header, error) {
	headers := []*Header{}
	if err := queries.Raw(
		fmt.Sprintf(
			`select %v from %v order by %v asc`,
			headerColumnList,
			TableNames.Headers,
			HeaderColumns.Record,
		),
	).Bind(ctx, p.DB, &headers); err != nil {
		return nil, err
	}

	return headers, nil
}

// GetHeader returns the header indexed at record.
func (p *MetadataPersister) GetHeader(ctx context.Context, record int64) (*Header, error) {
	var header Header
	if err := queries.Raw(
		fmt.Sprintf(
			`select %v from %v where %v = ?`,
			headerColumnList,
			TableNames.Headers,
			HeaderColumns.Record,
		),
		record,
	).Bind(ctx, p.DB, &header); err != nil {
		return nil, err
	}

	return &header, nil
}

// GetHeaderByName returns the last header indexed under the full path name,
// which is the one extraction of the whole archive leaves on disk.
func (p *MetadataPersister) GetHeaderByName(ctx context.Context, name string) (*Header, error) {
	var header Header
	if err := queries.Raw(
		fmt.Sprintf(
			`select %v from %v where %v = ? order by %v desc limit 1`,
			headerColumnList,
			TableNames.Headers,
			HeaderColumns.Name,
			HeaderColumns.Record,
		),
		name,
	).Bind(ctx, p.DB, &header); err != nil {
		return nil, err
	}

	return &header, nil
}

func (p *MetadataPersister) PurgeAllHeaders(ctx context.Context) error {
	if _, err := queries.Raw(
		fmt.Sprintf(`delete from %v`, TableNames.Headers),
	).ExecContext(ctx, p.DB); err != nil {
		return err
	}

	return nil
}
