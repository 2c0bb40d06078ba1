package config

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"gopkg.in/yaml.v2"
)

const localstackEndpoint = "http://127.0.0.1:4566"

// Config represents the configuration file specified by the user
type Config struct {
	AWSAccessKeyID     string `yaml:"awsAccessKeyID"`
	AWSSecretAccessKey string `yaml:"awsSecretAccessKey"`
	Region             string `yaml:"region"`
	Endpoint           string `yaml:"endpoint"`
	Local              bool   `yaml:"local"`
	LogLevel           int    `yaml:"logLevel"`
	Timezone           string `yaml:"timezone"`
	SongData           string `yaml:"songData"`
	LogData            string `yaml:"logData"`
	OutputData         string `yaml:"outputData"`
}

// ReadLocalConfigFile reads the config file from the local file system
// note that the path can be an absolute or relative path
func ReadLocalConfigFile(path string) (*Config, error) {
	var conf Config

	confFile, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(confFile, &conf)
	if err != nil {
		return nil, err
	}

	return &conf, nil
}

// Validate checks that the config holds everything needed to touch the
// object store. It runs before any data access so that credential or
// path mistakes fail the run immediately.
func (c *Config) Validate() error {
	if !c.Local {
		if c.AWSAccessKeyID == "" || c.AWSSecretAccessKey == "" {
			return errors.New("config: awsAccessKeyID and awsSecretAccessKey are required unless local is set")
		}
		if c.Region == "" {
			return errors.New("config: region is required unless local is set")
		}
	}

	if c.SongData == "" {
		return errors.New("config: songData path is required")
	}
	if c.LogData == "" {
		return errors.New("config: logData path is required")
	}
	if c.OutputData == "" {
		return errors.New("config: outputData path is required")
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("config: invalid timezone %q: %w", c.Timezone, err)
	}

	return nil
}

// Location returns the timezone used for calendar decomposition of
// event timestamps. Defaults to UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// InitAWS builds the AWS configuration from the credentials in the
// config file. When local is set the clients point to localstack with
// dummy credentials; a custom endpoint overrides the resolver for
// MinIO-style deployments.
func (c *Config) InitAWS(ctx context.Context) (aws.Config, error) {
	accessKey := c.AWSAccessKeyID
	secretKey := c.AWSSecretAccessKey
	endpoint := c.Endpoint

	if c.Local {
		if accessKey == "" {
			accessKey = "dummyKey"
			secretKey = "dummyKey"
		}
		if endpoint == "" {
			endpoint = localstackEndpoint
		}
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		),
	}

	if endpoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			},
		)
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(resolver))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading aws config: %w", err)
	}

	return cfg, nil
}

// UsePathStyle reports whether S3 clients should address buckets in
// path style, which localstack and MinIO require.
func (c *Config) UsePathStyle() bool {
	return c.Local || c.Endpoint != ""
}
