// Package transform builds the star schema tables from raw records.
// Every builder is a pure function: project, drop rows with a missing
// key, deduplicate on the declared key and return rows in a
// deterministic order.
package transform

import (
	"sort"

	"github.com/sparkify/datalake/internal/model"
)

// Songs projects song metadata into the songs dimension table,
// deduplicated on song_id. Records without a song_id are dropped.
func Songs(records []model.SongRecord) []model.SongRow {
	seen := make(map[string]model.SongRow, len(records))
	for _, r := range records {
		if r.SongID == "" {
			continue
		}
		if _, ok := seen[r.SongID]; ok {
			continue
		}
		seen[r.SongID] = model.SongRow{
			SongID:   r.SongID,
			Title:    r.Title,
			ArtistID: r.ArtistID,
			Year:     r.Year,
			Duration: r.Duration,
		}
	}

	rows := make([]model.SongRow, 0, len(seen))
	for _, row := range seen {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SongID < rows[j].SongID })
	return rows
}

// Artists projects song metadata into the artists dimension table,
// deduplicated on artist_id. Records without an artist_id are dropped.
func Artists(records []model.SongRecord) []model.ArtistRow {
	seen := make(map[string]model.ArtistRow, len(records))
	for _, r := range records {
		if r.ArtistID == "" {
			continue
		}
		if _, ok := seen[r.ArtistID]; ok {
			continue
		}
		seen[r.ArtistID] = model.ArtistRow{
			ArtistID:  r.ArtistID,
			Name:      r.ArtistName,
			Location:  r.ArtistLocation,
			Latitude:  r.ArtistLatitude,
			Longitude: r.ArtistLongitude,
		}
	}

	rows := make([]model.ArtistRow, 0, len(seen))
	for _, row := range seen {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ArtistID < rows[j].ArtistID })
	return rows
}
