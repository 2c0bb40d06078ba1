package transform

import (
	"sort"

	"github.com/sparkify/datalake/internal/model"
)

// FilterNextSong keeps only the song play events. Everything
// downstream of the log reader operates on this subset.
func FilterNextSong(events []model.LogEvent) []model.LogEvent {
	filtered := make([]model.LogEvent, 0, len(events))
	for _, e := range events {
		if e.Page == model.PageNextSong {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// sortEvents orders events by timestamp, breaking ties by session and
// item within session, so every builder sees the same event order
// regardless of which file each event came from.
func sortEvents(events []model.LogEvent) []model.LogEvent {
	ordered := make([]model.LogEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.TS != b.TS {
			return a.TS < b.TS
		}
		if a.SessionID != b.SessionID {
			return a.SessionID < b.SessionID
		}
		return a.ItemInSession < b.ItemInSession
	})
	return ordered
}

// Users projects events into the users dimension table, deduplicated
// on user_id. When a user appears with different levels across events
// (free to paid upgrades), the level of the user's latest event wins:
// events are applied in timestamp order and later rows overwrite
// earlier ones. Events without a userId are dropped.
func Users(events []model.LogEvent) []model.UserRow {
	byID := make(map[string]model.UserRow)
	for _, e := range sortEvents(events) {
		if e.UserID == "" {
			continue
		}
		byID[e.UserID] = model.UserRow{
			UserID:    e.UserID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Gender:    e.Gender,
			Level:     e.Level,
		}
	}

	rows := make([]model.UserRow, 0, len(byID))
	for _, row := range byID {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].UserID < rows[j].UserID })
	return rows
}
