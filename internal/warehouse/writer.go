// Package warehouse writes the star schema tables to the lake as
// snappy-compressed parquet files, laid out hive-style
// (table/col=value/part-<uuid>.parquet).
package warehouse

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/sparkify/datalake/internal/model"
	"github.com/sparkify/datalake/internal/objectstore"
)

const parquetConcurrency = 4

// Writer writes each output table under its own prefix below Output.
// Every table write starts by deleting the table's prefix, so a rerun
// replaces the previous output instead of accumulating.
type Writer struct {
	Store  *objectstore.Store
	Output objectstore.Location
}

// NewWriter creates a Writer rooted at the output location
func NewWriter(store *objectstore.Store, output objectstore.Location) *Writer {
	return &Writer{Store: store, Output: output}
}

// WriteSongs writes the songs table partitioned by year and artist_id
func (w *Writer) WriteSongs(ctx context.Context, rows []model.SongRow) error {
	groups := make(map[string][]interface{})
	for _, r := range rows {
		key := fmt.Sprintf("year=%d/artist_id=%s", r.Year, r.ArtistID)
		groups[key] = append(groups[key], r)
	}
	return w.writeTable(ctx, "songs", new(model.SongRow), groups)
}

// WriteArtists writes the artists table as a single unpartitioned file
func (w *Writer) WriteArtists(ctx context.Context, rows []model.ArtistRow) error {
	return w.writeTable(ctx, "artists", new(model.ArtistRow), singleGroup(len(rows), func(i int) interface{} { return rows[i] }))
}

// WriteUsers writes the users table as a single unpartitioned file
func (w *Writer) WriteUsers(ctx context.Context, rows []model.UserRow) error {
	return w.writeTable(ctx, "users", new(model.UserRow), singleGroup(len(rows), func(i int) interface{} { return rows[i] }))
}

// WriteTime writes the time table partitioned by year and month
func (w *Writer) WriteTime(ctx context.Context, rows []model.TimeRow) error {
	groups := make(map[string][]interface{})
	for _, r := range rows {
		key := fmt.Sprintf("year=%d/month=%d", r.Year, r.Month)
		groups[key] = append(groups[key], r)
	}
	return w.writeTable(ctx, "time", new(model.TimeRow), groups)
}

// WriteSongplays writes the songplays table partitioned by year and
// month derived from the event timestamp
func (w *Writer) WriteSongplays(ctx context.Context, rows []model.SongplayRow) error {
	groups := make(map[string][]interface{})
	for _, r := range rows {
		key := fmt.Sprintf("year=%d/month=%d", r.Year, r.Month)
		groups[key] = append(groups[key], r)
	}
	return w.writeTable(ctx, "songplays", new(model.SongplayRow), groups)
}

// singleGroup puts all rows into the unpartitioned "" group
func singleGroup(n int, at func(int) interface{}) map[string][]interface{} {
	if n == 0 {
		return map[string][]interface{}{}
	}
	rows := make([]interface{}, n)
	for i := range rows {
		rows[i] = at(i)
	}
	return map[string][]interface{}{"": rows}
}

// writeTable overwrites one table: it deletes the table prefix, then
// writes one parquet file per partition group in sorted key order.
func (w *Writer) writeTable(ctx context.Context, table string, schema interface{}, groups map[string][]interface{}) error {
	tableLoc := w.Output.Child(table)

	if err := w.Store.Delete(ctx, tableLoc); err != nil {
		return fmt.Errorf("overwriting table %s: %w", table, err)
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	total := 0
	for _, key := range keys {
		rows := groups[key]
		name := "part-" + uuid.New().String() + ".parquet"
		objKey := tableLoc.Join(name)
		if key != "" {
			objKey = tableLoc.Join(key, name)
		}

		if err := w.writeFile(ctx, tableLoc.Bucket, objKey, schema, rows); err != nil {
			return fmt.Errorf("writing table %s partition %q: %w", table, key, err)
		}
		total += len(rows)
	}

	log.WithFields(log.Fields{
		"table":      table,
		"rows":       total,
		"partitions": len(keys),
	}).Info("Table written")

	return nil
}

// writeFile encodes rows into a temporary parquet file and uploads it
func (w *Writer) writeFile(ctx context.Context, bucket, key string, schema interface{}, rows []interface{}) error {
	tmp := filepath.Join(os.TempDir(), "part-"+uuid.New().String()+".parquet")
	defer os.Remove(tmp)

	if err := encodeParquet(tmp, schema, rows); err != nil {
		return err
	}

	file, err := os.Open(tmp)
	if err != nil {
		return err
	}
	defer file.Close()

	return w.Store.Upload(ctx, bucket, key, file)
}

func encodeParquet(path string, schema interface{}, rows []interface{}) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("creating parquet file: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, schema, parquetConcurrency)
	if err != nil {
		fw.Close()
		return fmt.Errorf("creating parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			fw.Close()
			return fmt.Errorf("writing parquet row: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("closing parquet writer: %w", err)
	}
	return fw.Close()
}
