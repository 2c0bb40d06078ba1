package transform

import (
	"time"

	"github.com/sparkify/datalake/internal/model"
)

// songKey is the equi-join key resolving a log event to song metadata
type songKey struct {
	title    string
	artist   string
	duration float64
}

// Songplays builds the fact table: one row per song play event, with
// song_id and artist_id resolved by joining the event's (song, artist,
// length) against the songs and artists tables. Events with no match
// keep nil ids, so no event is ever dropped by the join. Songplay ids
// are assigned monotonically in event order.
func Songplays(
	events []model.LogEvent,
	songs []model.SongRow,
	artists []model.ArtistRow,
	loc *time.Location,
) []model.SongplayRow {
	artistName := make(map[string]string, len(artists))
	for _, a := range artists {
		artistName[a.ArtistID] = a.Name
	}

	index := make(map[songKey]model.SongRow, len(songs))
	for _, s := range songs {
		key := songKey{title: s.Title, artist: artistName[s.ArtistID], duration: s.Duration}
		index[key] = s
	}

	var ids Nexter
	rows := make([]model.SongplayRow, 0, len(events))
	for _, e := range sortEvents(events) {
		t := e.Time(loc)
		row := model.SongplayRow{
			SongplayID: ids.Next(),
			StartTime:  e.TS,
			UserID:     e.UserID,
			Level:      e.Level,
			SessionID:  e.SessionID,
			Location:   e.Location,
			UserAgent:  e.UserAgent,
			Year:       int32(t.Year()),
			Month:      int32(t.Month()),
		}

		if s, ok := index[songKey{title: e.Song, artist: e.Artist, duration: e.Length}]; ok {
			songID, artistID := s.SongID, s.ArtistID
			row.SongID = &songID
			row.ArtistID = &artistID
		}

		rows = append(rows, row)
	}
	return rows
}
