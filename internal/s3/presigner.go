package s3

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "department-service/internal/config"
)

// ImagePresigner hands out time-limited PUT URLs so event images go straight
// to object storage instead of through this process.
type ImagePresigner struct {
	S3PresignClient *s3.PresignClient
	BucketName      string
	Endpoint        string
	Expiry          time.Duration
}

func NewImagePresigner(cfg *appconfig.Config) (*ImagePresigner, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               cfg.S3Endpoint,
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(
		context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
	)

	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	return &ImagePresigner{
		S3PresignClient: s3.NewPresignClient(s3Client),
		BucketName:      cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		Expiry:          cfg.UploadURLExpiry,
	}, nil
}

func (p *ImagePresigner) GeneratePresignedUploadURL(objectKey string) (string, error) {
	request, err := p.S3PresignClient.PresignPutObject(
		context.TODO(),
		&s3.PutObjectInput{
			Bucket: aws.String(p.BucketName),
			Key:    aws.String(objectKey),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = p.Expiry
		},
	)

	if err != nil {
		return "", err
	}

	return request.URL, nil
}

// PublicURL is where the object will be readable after the client uploads it.
func (p *ImagePresigner) PublicURL(objectKey string) string {
	return p.Endpoint + "/" + p.BucketName + "/" + objectKey
}
