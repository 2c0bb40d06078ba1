// Package pipeline runs the ETL: song metadata first (songs, artists),
// then activity logs (users, time, songplays). Stages run strictly in
// sequence and any failure aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/sparkify/datalake/internal/config"
	"github.com/sparkify/datalake/internal/model"
	"github.com/sparkify/datalake/internal/objectstore"
	"github.com/sparkify/datalake/internal/transform"
	"github.com/sparkify/datalake/internal/warehouse"
)

// Pipeline owns the object store clients and the run configuration
type Pipeline struct {
	RunID  uuid.UUID
	Config *config.Config

	Store  *objectstore.Store
	Writer *warehouse.Writer

	location *time.Location
	logger   *log.Entry
}

// New validates the config and wires up the AWS clients
func New(ctx context.Context, conf *config.Config) (*Pipeline, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	location, err := conf.Location()
	if err != nil {
		return nil, err
	}

	cfg, err := conf.InitAWS(ctx)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = conf.UsePathStyle()
	})
	store := objectstore.NewStore(client)

	output, err := objectstore.ParseLocation(conf.OutputData)
	if err != nil {
		return nil, err
	}

	runID := uuid.New()
	return &Pipeline{
		RunID:    runID,
		Config:   conf,
		Store:    store,
		Writer:   warehouse.NewWriter(store, output),
		location: location,
		logger:   log.WithField("runID", runID),
	}, nil
}

// Run executes both stages. The song stage's tables are reused
// in-memory by the log stage for the songplays join instead of
// re-reading the freshly written parquet output.
func (p *Pipeline) Run(ctx context.Context) error {
	songs, artists, err := p.ProcessSongData(ctx)
	if err != nil {
		return err
	}
	return p.ProcessLogData(ctx, songs, artists)
}

// ProcessSongData reads the song metadata files and writes the songs
// and artists dimension tables. It returns the built tables for the
// log stage.
func (p *Pipeline) ProcessSongData(ctx context.Context) ([]model.SongRow, []model.ArtistRow, error) {
	source, err := objectstore.ParseLocation(p.Config.SongData)
	if err != nil {
		return nil, nil, err
	}

	records, err := p.readSongRecords(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	songs := transform.Songs(records)
	artists := transform.Artists(records)
	p.logger.WithFields(log.Fields{
		"records": len(records),
		"songs":   len(songs),
		"artists": len(artists),
	}).Info("Song data processed")

	if err := p.Writer.WriteSongs(ctx, songs); err != nil {
		return nil, nil, err
	}
	if err := p.Writer.WriteArtists(ctx, artists); err != nil {
		return nil, nil, err
	}

	return songs, artists, nil
}

// ProcessLogData reads the activity log files, keeps the song play
// events and writes the users and time dimension tables and the
// songplays fact table.
func (p *Pipeline) ProcessLogData(ctx context.Context, songs []model.SongRow, artists []model.ArtistRow) error {
	source, err := objectstore.ParseLocation(p.Config.LogData)
	if err != nil {
		return err
	}

	events, err := p.readLogEvents(ctx, source)
	if err != nil {
		return err
	}

	plays := transform.FilterNextSong(events)
	p.logger.WithFields(log.Fields{
		"events":   len(events),
		"nextSong": len(plays),
	}).Info("Log data processed")

	if err := p.Writer.WriteUsers(ctx, transform.Users(plays)); err != nil {
		return err
	}
	if err := p.Writer.WriteTime(ctx, transform.TimeTable(plays, p.location)); err != nil {
		return err
	}
	return p.Writer.WriteSongplays(ctx, transform.Songplays(plays, songs, artists, p.location))
}

// list discovers the JSON objects under a source location. A source
// with no objects fails the run.
func (p *Pipeline) list(ctx context.Context, source objectstore.Location) ([]objectstore.Object, error) {
	objects, err := p.Store.List(ctx, source, ".json")
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, fmt.Errorf("no json objects under %s", source)
	}
	return objects, nil
}
