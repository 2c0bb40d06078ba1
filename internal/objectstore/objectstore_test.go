package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseLocation_HappyPath(t *testing.T) {
	loc, err := ParseLocation("s3://my-bucket/song_data")
	assert.Nil(t, err)
	assert.Equal(t, "my-bucket", loc.Bucket)
	assert.Equal(t, "song_data", loc.Prefix)
}

func Test_ParseLocation_BucketOnly(t *testing.T) {
	loc, err := ParseLocation("s3://my-bucket")
	assert.Nil(t, err)
	assert.Equal(t, "my-bucket", loc.Bucket)
	assert.Equal(t, "", loc.Prefix)
}

func Test_ParseLocation_TrailingSlash(t *testing.T) {
	loc, err := ParseLocation("s3://my-bucket/output/")
	assert.Nil(t, err)
	assert.Equal(t, "output", loc.Prefix)
}

func Test_ParseLocation_NotS3(t *testing.T) {
	_, err := ParseLocation("/local/path")
	assert.Error(t, err)
}

func Test_ParseLocation_NoBucket(t *testing.T) {
	_, err := ParseLocation("s3://")
	assert.Error(t, err)
}

func Test_Location_Join(t *testing.T) {
	loc := Location{Bucket: "b", Prefix: "lake"}
	assert.Equal(t, "lake/songs/part-1.parquet", loc.Join("songs", "part-1.parquet"))

	root := Location{Bucket: "b"}
	assert.Equal(t, "songs", root.Join("songs"))
}

func Test_Location_Child(t *testing.T) {
	loc := Location{Bucket: "b", Prefix: "lake"}
	child := loc.Child("songs")
	assert.Equal(t, "b", child.Bucket)
	assert.Equal(t, "lake/songs", child.Prefix)
}

func Test_Location_String(t *testing.T) {
	assert.Equal(t, "s3://b/lake", Location{Bucket: "b", Prefix: "lake"}.String())
	assert.Equal(t, "s3://b", Location{Bucket: "b"}.String())
}
