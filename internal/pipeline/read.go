package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/sparkify/datalake/internal/model"
	"github.com/sparkify/datalake/internal/objectstore"
)

// maxReadConcurrency bounds the number of objects fetched at once
// within a stage. Stages themselves still run one after another.
const maxReadConcurrency = 16

// maxLineSize is the scanner buffer cap for log lines
const maxLineSize = 1024 * 1024

// readSongRecords reads one JSON song record per object
func (p *Pipeline) readSongRecords(ctx context.Context, source objectstore.Location) ([]model.SongRecord, error) {
	objects, err := p.list(ctx, source)
	if err != nil {
		return nil, err
	}

	records := make([]model.SongRecord, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxReadConcurrency)

	for i, obj := range objects {
		i, obj := i, obj
		g.Go(func() error {
			body, err := p.Store.Read(gctx, obj)
			if err != nil {
				return err
			}
			defer body.Close()

			if err := json.NewDecoder(body).Decode(&records[i]); err != nil {
				return fmt.Errorf("decoding %s: %w", obj.Key, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// readLogEvents reads newline-delimited JSON events from every object.
// Events are flattened in object listing order so the result is
// deterministic for a given source.
func (p *Pipeline) readLogEvents(ctx context.Context, source objectstore.Location) ([]model.LogEvent, error) {
	objects, err := p.list(ctx, source)
	if err != nil {
		return nil, err
	}

	perObject := make([][]model.LogEvent, len(objects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxReadConcurrency)

	for i, obj := range objects {
		i, obj := i, obj
		g.Go(func() error {
			body, err := p.Store.Read(gctx, obj)
			if err != nil {
				return err
			}
			defer body.Close()

			scanner := bufio.NewScanner(body)
			scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

			line := 0
			for scanner.Scan() {
				line++
				text := strings.TrimSpace(scanner.Text())
				if text == "" {
					continue
				}

				var event model.LogEvent
				if err := json.Unmarshal([]byte(text), &event); err != nil {
					return fmt.Errorf("decoding %s line %d: %w", obj.Key, line, err)
				}
				perObject[i] = append(perObject[i], event)
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading %s: %w", obj.Key, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var events []model.LogEvent
	for _, batch := range perObject {
		events = append(events, batch...)
	}
	return events, nil
}
