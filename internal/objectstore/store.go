package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// deleteBatchSize is the maximum number of keys DeleteObjects accepts
const deleteBatchSize = 1000

// Store bundles the object store operations the pipeline needs. The
// per-call interfaces keep the S3 clients mockable in tests.
type Store struct {
	ListAPI   ListObjectsAPI
	GetAPI    GetObjectAPI
	DeleteAPI DeleteObjectsAPI
	UploadAPI ManagerUploaderAPI
}

// NewStore creates a Store backed by a single S3 client
func NewStore(client *s3.Client) *Store {
	return &Store{
		ListAPI:   client,
		GetAPI:    client,
		DeleteAPI: client,
		UploadAPI: manager.NewUploader(client),
	}
}

// List returns all objects under the location whose key ends with
// suffix. An empty suffix matches everything. Listing paginates, so
// prefixes with more than one page of objects are handled.
func (s *Store) List(ctx context.Context, loc Location, suffix string) ([]Object, error) {
	paginator := s3.NewListObjectsV2Paginator(s.ListAPI, &s3.ListObjectsV2Input{
		Bucket: aws.String(loc.Bucket),
		Prefix: aws.String(loc.Prefix),
	})

	var objects []Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", loc, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if suffix != "" && !strings.HasSuffix(key, suffix) {
				continue
			}
			objects = append(objects, Object{
				Bucket: loc.Bucket,
				Key:    key,
				Size:   aws.ToInt64(obj.Size),
			})
		}
	}

	return objects, nil
}

// Read opens an object for streaming. The caller closes the reader.
func (s *Store) Read(ctx context.Context, obj Object) (io.ReadCloser, error) {
	out, err := s.GetAPI.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(obj.Bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("reading s3://%s/%s: %w", obj.Bucket, obj.Key, err)
	}
	return out.Body, nil
}

// Delete removes every object under the location. This gives each
// table full overwrite semantics: a run never appends to a previous
// run's output.
func (s *Store) Delete(ctx context.Context, loc Location) error {
	objects, err := s.List(ctx, loc, "")
	if err != nil {
		return err
	}
	if len(objects) == 0 {
		return nil
	}

	for start := 0; start < len(objects); start += deleteBatchSize {
		end := start + deleteBatchSize
		if end > len(objects) {
			end = len(objects)
		}

		identifiers := make([]types.ObjectIdentifier, 0, end-start)
		for _, obj := range objects[start:end] {
			identifiers = append(identifiers, types.ObjectIdentifier{
				Key: aws.String(obj.Key),
			})
		}

		_, err := s.DeleteAPI.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(loc.Bucket),
			Delete: &types.Delete{
				Objects: identifiers,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("deleting under %s: %w", loc, err)
		}
	}

	return nil
}

// Upload writes body to the given bucket and key through the manager
// uploader
func (s *Store) Upload(ctx context.Context, bucket, key string, body io.Reader) error {
	_, err := s.UploadAPI.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", bucket, key, err)
	}
	return nil
}
