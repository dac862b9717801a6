package storage

import (
	"bytes"
	"context"
	"fmt"
	"giftlist/config"
	"giftlist/infras/otel"
	"giftlist/shared/constant"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

const otelAttrBucket = "bucket"

type s3Storage struct {
	client       *s3.Client
	bucket       string
	publicDomain string
	limits       limits
	otel         otel.Otel
}

// NewS3 stores images in the configured bucket under images/ and references them by public URL.
func NewS3(cfg *config.Config, lim limits, otl otel.Otel) Storage {
	s3Cfg := cfg.External.S3

	staticProvider := credentials.NewStaticCredentialsProvider(
		s3Cfg.AccessKeyID,
		s3Cfg.SecretAccessKey,
		constant.Empty,
	)

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(staticProvider),
		awsConfig.WithRegion(s3Cfg.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("Error loading AWS configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if s3Cfg.APIEndpoint != constant.Empty {
			o.BaseEndpoint = aws.String(s3Cfg.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Storage{
		client:       client,
		bucket:       s3Cfg.BucketName,
		publicDomain: strings.TrimSuffix(s3Cfg.PublicDomain, "/"),
		limits:       lim,
		otel:         otl,
	}
}

func (svc *s3Storage) Save(ctx context.Context, upload Upload) (ref string, err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	img, err := svc.limits.prepare(upload)
	if err != nil {
		return constant.Empty, err
	}

	objectKey := path.Join(imageDirectory, fileName(img.extension))

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket,
	})

	fileReader := bytes.NewReader(img.data)

	_, err = svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.bucket),
		Key:           aws.String(objectKey),
		Body:          fileReader,
		ContentType:   aws.String(img.contentType),
		ContentLength: aws.Int64(fileReader.Size()),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to upload file to S3")

		return constant.Empty, fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", svc.publicDomain, objectKey), nil
}

func (svc *s3Storage) Delete(ctx context.Context, ref string) (err error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	objectKey := svc.objectKey(ref)
	if objectKey == constant.Empty {
		return nil
	}

	scope.SetAttributes(map[string]any{
		otelAttrFileName: objectKey,
		otelAttrBucket:   svc.bucket,
	})

	_, err = svc.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(svc.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		log.Error().Err(err).Str("key", objectKey).Msg("failed to delete file from S3")

		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

func (svc *s3Storage) Owns(ref string) bool {
	return svc.objectKey(ref) != constant.Empty
}

// objectKey maps a public URL produced by Save back to its key, or "" for foreign references.
func (svc *s3Storage) objectKey(ref string) string {
	if svc.publicDomain == constant.Empty {
		return constant.Empty
	}

	prefix := svc.publicDomain + "/" + imageDirectory + "/"
	if !strings.HasPrefix(ref, prefix) {
		return constant.Empty
	}

	name := strings.TrimPrefix(ref, prefix)
	if name == constant.Empty || name != path.Base(name) {
		return constant.Empty
	}

	return path.Join(imageDirectory, name)
}
