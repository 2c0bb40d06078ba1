package objectstore

import (
	"fmt"
	"strings"
)

// Object represents a cloud object
type Object struct {
	Bucket string
	Key    string
	Size   int64
}

// Location represents a bucket and key prefix under which a dataset's
// objects live
type Location struct {
	Bucket string
	Prefix string
}

// ParseLocation parses an "s3://bucket/prefix" URL into a Location.
// The prefix part may be empty.
func ParseLocation(raw string) (Location, error) {
	trimmed := strings.TrimPrefix(raw, "s3://")
	if trimmed == raw {
		return Location{}, fmt.Errorf("objectstore: %q is not an s3:// URL", raw)
	}

	parts := strings.SplitN(trimmed, "/", 2)
	if parts[0] == "" {
		return Location{}, fmt.Errorf("objectstore: %q has no bucket", raw)
	}

	loc := Location{Bucket: parts[0]}
	if len(parts) == 2 {
		loc.Prefix = strings.Trim(parts[1], "/")
	}
	return loc, nil
}

// Join builds an object key under the location's prefix
func (l Location) Join(parts ...string) string {
	all := parts
	if l.Prefix != "" {
		all = append([]string{l.Prefix}, parts...)
	}
	return strings.Join(all, "/")
}

// Child returns the location one path element below this one
func (l Location) Child(name string) Location {
	return Location{Bucket: l.Bucket, Prefix: l.Join(name)}
}

// String renders the location back as an s3:// URL
func (l Location) String() string {
	if l.Prefix == "" {
		return "s3://" + l.Bucket
	}
	return "s3://" + l.Bucket + "/" + l.Prefix
}
