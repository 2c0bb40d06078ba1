// Package model holds the raw source records and the star schema row
// types written to the lake.
package model

// SongRecord is one raw song metadata record. The source dataset
// stores one JSON object per file. Latitude and longitude are null for
// most artists, so they stay pointers.
type SongRecord struct {
	NumSongs        int      `json:"num_songs"`
	ArtistID        string   `json:"artist_id"`
	ArtistLatitude  *float64 `json:"artist_latitude"`
	ArtistLongitude *float64 `json:"artist_longitude"`
	ArtistLocation  string   `json:"artist_location"`
	ArtistName      string   `json:"artist_name"`
	SongID          string   `json:"song_id"`
	Title           string   `json:"title"`
	Duration        float64  `json:"duration"`
	Year            int32    `json:"year"`
}
