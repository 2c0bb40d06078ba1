package objectstore

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ListObjectsAPI is an interface used to mock the S3 list calls. It
// matches s3.ListObjectsV2APIClient so the paginator accepts it.
type ListObjectsAPI interface {
	ListObjectsV2(
		ctx context.Context,
		params *s3.ListObjectsV2Input,
		optFns ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// GetObjectAPI is an interface used to mock API calls reading objects
type GetObjectAPI interface {
	GetObject(
		ctx context.Context,
		params *s3.GetObjectInput,
		optFns ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)
}

// DeleteObjectsAPI is an interface used to mock batch object deletion
type DeleteObjectsAPI interface {
	DeleteObjects(
		ctx context.Context,
		params *s3.DeleteObjectsInput,
		optFns ...func(*s3.Options),
	) (*s3.DeleteObjectsOutput, error)
}

// ManagerUploaderAPI is an interface used to mock API calls made to
// the aws S3 manager uploader
type ManagerUploaderAPI interface {
	Upload(
		ctx context.Context,
		input *s3.PutObjectInput,
		opts ...func(*manager.Uploader),
	) (*manager.UploadOutput, error)
}
