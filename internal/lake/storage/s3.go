package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/arvind-menon/laketable-drop-partition/internal/lake/constants"
	"github.com/arvind-menon/laketable-drop-partition/internal/lake/models"
)

// S3API is the slice of the S3 client the storage adapter uses.
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Storage backs tables stored under an s3://bucket/prefix base path.
type S3Storage struct {
	client S3API
}

func NewS3Storage(cfg aws.Config) *S3Storage {
	return &S3Storage{client: s3.NewFromConfig(cfg)}
}

func NewS3StorageWithClient(client S3API) *S3Storage {
	return &S3Storage{client: client}
}

// DeleteRecursive removes every object under the partition's key prefix in
// batches. An empty listing is a success: the partition's data is already
// gone.
func (s *S3Storage) DeleteRecursive(ctx context.Context, path string) error {
	bucket, key, err := splitS3Path(path)
	if err != nil {
		return err
	}

	keys, err := s.listKeys(ctx, bucket, key+"/")
	if err != nil {
		return err
	}

	for start := 0; start < len(keys); start += constants.S3DeleteBatchSize {
		end := start + constants.S3DeleteBatchSize
		if end > len(keys) {
			end = len(keys)
		}
		identifiers := make([]s3types.ObjectIdentifier, 0, end-start)
		for _, k := range keys[start:end] {
			identifiers = append(identifiers, s3types.ObjectIdentifier{Key: aws.String(k)})
		}
		_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(bucket),
			Delete: &s3types.Delete{
				Objects: identifiers,
				Quiet:   aws.Bool(true),
			},
		})
		if err != nil {
			return fmt.Errorf("deleting objects under s3://%s/%s: %w", bucket, key, err)
		}
	}
	return nil
}

// ListPartitions derives the concrete partition paths of the table from
// its object keys: the leading field=value segments below the base prefix,
// one partition per distinct combination.
func (s *S3Storage) ListPartitions(ctx context.Context, table models.TableDescriptor, pathPrefix string) ([]models.PartitionPath, error) {
	bucket, basePrefix, err := splitS3Path(table.BasePath)
	if err != nil {
		return nil, err
	}

	listPrefix := basePrefix + "/"
	if pathPrefix != "" {
		listPrefix += pathPrefix
	}
	keys, err := s.listKeys(ctx, bucket, listPrefix)
	if err != nil {
		return nil, err
	}

	depth := len(table.PartitionFields)
	seen := make(map[string]struct{})
	var partitions []models.PartitionPath
	for _, key := range keys {
		rel := strings.TrimPrefix(key, basePrefix+"/")
		segments := strings.Split(rel, "/")
		if len(segments) <= depth {
			// Objects above partition depth are table metadata.
			continue
		}
		partition := segments[:depth]
		valid := true
		for _, segment := range partition {
			if !strings.Contains(segment, "=") {
				valid = false
				break
			}
		}
		if !valid {
			continue
		}
		p := strings.Join(partition, "/")
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		partitions = append(partitions, models.PartitionPath(p))
	}
	return partitions, nil
}

func (s *S3Storage) listKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, object := range page.Contents {
			keys = append(keys, aws.ToString(object.Key))
		}
	}
	return keys, nil
}

func splitS3Path(path string) (bucket, key string, err error) {
	trimmed, ok := strings.CutPrefix(path, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 path: %q", path)
	}
	bucket, key, _ = strings.Cut(trimmed, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("no bucket in s3 path: %q", path)
	}
	return bucket, strings.TrimSuffix(key, "/"), nil
}
