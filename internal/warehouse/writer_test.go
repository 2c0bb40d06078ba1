package warehouse_test

import (
	"bytes"
	"context"
	"io/ioutil"
	"regexp"
	"sort"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sparkify/datalake/internal/model"
	"github.com/sparkify/datalake/internal/objectstore"
	"github.com/sparkify/datalake/internal/warehouse"
	"github.com/sparkify/datalake/mocks"
)

type capturedUpload struct {
	key  string
	data []byte
}

// newTestWriter wires a Writer against mocks: listing under the output
// prefix finds nothing (nothing to overwrite) and uploads are captured
func newTestWriter(t *testing.T) (*warehouse.Writer, *[]capturedUpload) {
	t.Helper()

	listMock := new(mocks.ListObjectsAPI)
	listMock.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{}, nil)

	uploads := &[]capturedUpload{}
	uploadMock := new(mocks.ManagerUploaderAPI)
	uploadMock.On("Upload", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		in := args.Get(1).(*s3.PutObjectInput)
		data, err := ioutil.ReadAll(in.Body)
		assert.Nil(t, err)
		*uploads = append(*uploads, capturedUpload{key: aws.ToString(in.Key), data: data})
	}).Return(&manager.UploadOutput{}, nil)

	store := &objectstore.Store{
		ListAPI:   listMock,
		DeleteAPI: new(mocks.DeleteObjectsAPI),
		UploadAPI: uploadMock,
	}

	w := warehouse.NewWriter(store, objectstore.Location{Bucket: "lake-bucket", Prefix: "lake"})
	return w, uploads
}

func uploadKeys(uploads []capturedUpload) []string {
	keys := make([]string, 0, len(uploads))
	for _, u := range uploads {
		keys = append(keys, u.key)
	}
	sort.Strings(keys)
	return keys
}

func assertParquet(t *testing.T, data []byte) {
	t.Helper()
	// parquet files start and end with the PAR1 magic
	assert.True(t, len(data) > 8)
	assert.True(t, bytes.HasPrefix(data, []byte("PAR1")))
	assert.True(t, bytes.HasSuffix(data, []byte("PAR1")))
}

func Test_WriteSongs_PartitionsByYearAndArtist(t *testing.T) {
	w, uploads := newTestWriter(t)

	rows := []model.SongRow{
		{SongID: "S1", Title: "T1", ArtistID: "A1", Year: 2000, Duration: 200.0},
		{SongID: "S2", Title: "T2", ArtistID: "A1", Year: 2000, Duration: 150.0},
		{SongID: "S3", Title: "T3", ArtistID: "A2", Year: 2001, Duration: 100.0},
	}
	err := w.WriteSongs(context.Background(), rows)
	assert.Nil(t, err)

	keys := uploadKeys(*uploads)
	assert.Len(t, keys, 2)
	assert.Regexp(t, regexp.MustCompile(`^lake/songs/year=2000/artist_id=A1/part-[0-9a-f-]{36}\.parquet$`), keys[0])
	assert.Regexp(t, regexp.MustCompile(`^lake/songs/year=2001/artist_id=A2/part-[0-9a-f-]{36}\.parquet$`), keys[1])

	for _, u := range *uploads {
		assertParquet(t, u.data)
	}
}

func Test_WriteArtists_SingleFile(t *testing.T) {
	w, uploads := newTestWriter(t)

	lat := 35.14968
	rows := []model.ArtistRow{
		{ArtistID: "A1", Name: "Art1", Location: "Memphis, TN", Latitude: &lat},
		{ArtistID: "A2", Name: "Art2"},
	}
	err := w.WriteArtists(context.Background(), rows)
	assert.Nil(t, err)

	keys := uploadKeys(*uploads)
	assert.Len(t, keys, 1)
	assert.Regexp(t, regexp.MustCompile(`^lake/artists/part-[0-9a-f-]{36}\.parquet$`), keys[0])
	assertParquet(t, (*uploads)[0].data)
}

func Test_WriteTime_PartitionsByYearAndMonth(t *testing.T) {
	w, uploads := newTestWriter(t)

	rows := []model.TimeRow{
		{StartTime: 1541106106796, Hour: 21, Day: 1, Week: 44, Month: 11, Year: 2018, Weekday: 4},
		{StartTime: 1543698106796, Hour: 20, Day: 1, Week: 48, Month: 12, Year: 2018, Weekday: 6},
	}
	err := w.WriteTime(context.Background(), rows)
	assert.Nil(t, err)

	keys := uploadKeys(*uploads)
	assert.Len(t, keys, 2)
	assert.Regexp(t, regexp.MustCompile(`^lake/time/year=2018/month=11/part-`), keys[0])
	assert.Regexp(t, regexp.MustCompile(`^lake/time/year=2018/month=12/part-`), keys[1])
}

func Test_WriteSongplays_NullableIDs(t *testing.T) {
	w, uploads := newTestWriter(t)

	songID, artistID := "S1", "A1"
	rows := []model.SongplayRow{
		{SongplayID: 0, StartTime: 1541106106796, UserID: "10", Level: "paid", SongID: &songID, ArtistID: &artistID, SessionID: 583, Year: 2018, Month: 11},
		{SongplayID: 1, StartTime: 1541106107796, UserID: "11", Level: "free", SessionID: 584, Year: 2018, Month: 11},
	}
	err := w.WriteSongplays(context.Background(), rows)
	assert.Nil(t, err)

	keys := uploadKeys(*uploads)
	assert.Len(t, keys, 1)
	assert.Regexp(t, regexp.MustCompile(`^lake/songplays/year=2018/month=11/part-`), keys[0])
	assertParquet(t, (*uploads)[0].data)
}

func Test_WriteUsers_OverwritesPreviousRun(t *testing.T) {
	listMock := new(mocks.ListObjectsAPI)
	listMock.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("lake/users/part-old.parquet"), Size: aws.Int64(10)},
		},
	}, nil)

	deleteMock := new(mocks.DeleteObjectsAPI)
	deleteMock.On("DeleteObjects", mock.Anything, mock.MatchedBy(func(in *s3.DeleteObjectsInput) bool {
		return len(in.Delete.Objects) == 1 &&
			aws.ToString(in.Delete.Objects[0].Key) == "lake/users/part-old.parquet"
	})).Return(&s3.DeleteObjectsOutput{}, nil).Once()

	uploadMock := new(mocks.ManagerUploaderAPI)
	uploadMock.On("Upload", mock.Anything, mock.Anything).Return(&manager.UploadOutput{}, nil)

	store := &objectstore.Store{ListAPI: listMock, DeleteAPI: deleteMock, UploadAPI: uploadMock}
	w := warehouse.NewWriter(store, objectstore.Location{Bucket: "lake-bucket", Prefix: "lake"})

	err := w.WriteUsers(context.Background(), []model.UserRow{
		{UserID: "10", FirstName: "Sylvie", LastName: "Cruz", Gender: "F", Level: "free"},
	})
	assert.Nil(t, err)
	deleteMock.AssertExpectations(t)
}

func Test_WriteTable_EmptyRowsStillOverwrites(t *testing.T) {
	w, uploads := newTestWriter(t)

	err := w.WriteUsers(context.Background(), nil)
	assert.Nil(t, err)
	assert.Empty(t, *uploads)
}
