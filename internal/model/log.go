package model

import "time"

// PageNextSong is the page value identifying a song play event
const PageNextSong = "NextSong"

// LogEvent is one raw user-activity event. Log files are
// newline-delimited JSON, one event per line. The userId field arrives
// as a JSON string and is empty for unauthenticated events.
type LogEvent struct {
	Artist        string  `json:"artist"`
	Auth          string  `json:"auth"`
	FirstName     string  `json:"firstName"`
	Gender        string  `json:"gender"`
	ItemInSession int64   `json:"itemInSession"`
	LastName      string  `json:"lastName"`
	Length        float64 `json:"length"`
	Level         string  `json:"level"`
	Location      string  `json:"location"`
	Method        string  `json:"method"`
	Page          string  `json:"page"`
	Registration  float64 `json:"registration"`
	SessionID     int64   `json:"sessionId"`
	Song          string  `json:"song"`
	Status        int64   `json:"status"`
	TS            int64   `json:"ts"`
	UserAgent     string  `json:"userAgent"`
	UserID        string  `json:"userId"`
}

// Time converts the event's millisecond epoch timestamp into the
// given timezone
func (e LogEvent) Time(loc *time.Location) time.Time {
	return time.UnixMilli(e.TS).In(loc)
}
