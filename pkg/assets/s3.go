package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the slice of the S3 API the manifest loader needs.
// *s3.Client satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// LoadFromS3 fetches a manifest.json object from an S3 bucket. Deploys
// that publish fingerprinted assets to a CDN-backed bucket keep the
// manifest next to them; the server loads it at startup.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	manifest, err := assets.LoadFromS3(ctx, s3.NewFromConfig(cfg), "my-bucket", "dist/manifest.json")
func LoadFromS3(ctx context.Context, client ObjectGetter, bucket, key string) (*Manifest, error) {
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("assets: fetch s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: read s3://%s/%s: %w", bucket, key, err)
	}

	return Parse(data)
}
