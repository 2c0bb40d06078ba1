package transform

import (
	"sort"
	"time"

	"github.com/sparkify/datalake/internal/model"
)

// TimeTable builds the time dimension table from the distinct event
// timestamps, decomposed into calendar fields in the given timezone.
// Week is the ISO week number and Weekday follows time.Weekday
// (Sunday = 0).
func TimeTable(events []model.LogEvent, loc *time.Location) []model.TimeRow {
	seen := make(map[int64]struct{}, len(events))
	stamps := make([]int64, 0, len(events))
	for _, e := range events {
		if _, ok := seen[e.TS]; ok {
			continue
		}
		seen[e.TS] = struct{}{}
		stamps = append(stamps, e.TS)
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })

	rows := make([]model.TimeRow, 0, len(stamps))
	for _, ts := range stamps {
		rows = append(rows, decompose(ts, loc))
	}
	return rows
}

func decompose(ts int64, loc *time.Location) model.TimeRow {
	t := time.UnixMilli(ts).In(loc)
	_, week := t.ISOWeek()
	return model.TimeRow{
		StartTime: ts,
		Hour:      int32(t.Hour()),
		Day:       int32(t.Day()),
		Week:      int32(week),
		Month:     int32(t.Month()),
		Year:      int32(t.Year()),
		Weekday:   int32(t.Weekday()),
	}
}
