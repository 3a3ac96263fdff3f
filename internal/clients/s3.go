package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("parcel-clients")

// MultipartBackend 对象存储的分段上传能力，桶在创建时绑定
type MultipartBackend interface {
	// CreateMultipartUpload 开启一次分段上传，返回后端分配的 upload id
	CreateMultipartUpload(ctx context.Context, key, contentType string) (string, error)
	// PresignUploadPart 为单个分段生成限时的 PUT 地址，不发起网络请求
	PresignUploadPart(ctx context.Context, key, uploadID string, partNumber int, ttl time.Duration) (string, error)
	// CompleteMultipartUpload 按给定顺序合并分段，调用方负责升序排列
	CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts types.Parts) (*types.CompletedObject, error)
}

type S3Options struct {
	S3ForcePathStyle   bool
	DisableSSL         bool
	InsecureSkipVerify bool
}

// S3Backend 基于 aws-sdk-go 的分段上传实现
type S3Backend struct {
	Client   *s3.S3
	Bucket   string
	Region   string
	EndPoint string
}

func NewS3Backend(ak, sk, token, region, endpoint, bucket string, opts ...S3Options) (*S3Backend, error) {
	cfg := &aws.Config{
		Region:      aws.String(region),
		HTTPClient:  &http.Client{},
		Credentials: credentials.NewStaticCredentials(ak, sk, token),
	}
	if endpoint != "" {
		cfg.Endpoint = aws.String(endpoint)
	}
	if len(opts) > 0 {
		if v1 := opts[0].S3ForcePathStyle; v1 {
			cfg.S3ForcePathStyle = &v1
		}
		if v2 := opts[0].DisableSSL; v2 {
			cfg.DisableSSL = &v2
		}
		if v3 := opts[0].InsecureSkipVerify; v3 {
			cfg.HTTPClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: v3,
				},
			}
		}
	}
	sess, err := session.NewSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 client, reason: %s", err.Error())
	}
	return &S3Backend{
		Client:   s3.New(sess),
		Bucket:   bucket,
		Region:   region,
		EndPoint: endpoint,
	}, nil
}

// backendError 包装为 ErrBackend，保留 aws 错误码
func backendError(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	if aerr, ok := err.(awserr.Error); ok {
		log.Logger.Errorf("S3 %s failed: code=%s message=%s", op, aerr.Code(), aerr.Message())
	} else {
		log.Logger.Errorf("S3 %s failed: %v", op, err)
	}
	return fmt.Errorf("%w: %s: %w", types.ErrBackend, op, err)
}

func (s *S3Backend) CreateMultipartUpload(ctx context.Context, key, contentType string) (string, error) {
	ctx, span := tracer.Start(ctx, "s3.create_multipart_upload",
		trace.WithAttributes(
			attribute.String("bucket", s.Bucket),
			attribute.String("object_key", key),
		),
	)
	defer span.End()

	input := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(key),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	out, err := s.Client.CreateMultipartUploadWithContext(ctx, input)
	if err != nil {
		return "", backendError(span, "create multipart upload", err)
	}
	uploadID := aws.StringValue(out.UploadId)
	if uploadID == "" {
		return "", backendError(span, "create multipart upload", fmt.Errorf("empty upload id"))
	}
	span.SetAttributes(attribute.String("upload_id", uploadID))
	return uploadID, nil
}

// PresignUploadPart 生成分段上传的预签名URL(aws signature version 4)
func (s *S3Backend) PresignUploadPart(ctx context.Context, key, uploadID string, partNumber int, ttl time.Duration) (string, error) {
	_, span := tracer.Start(ctx, "s3.presign_upload_part",
		trace.WithAttributes(
			attribute.String("object_key", key),
			attribute.String("upload_id", uploadID),
			attribute.Int("part_number", partNumber),
		),
	)
	defer span.End()

	req, _ := s.Client.UploadPartRequest(&s3.UploadPartInput{
		Bucket:     aws.String(s.Bucket),
		Key:        aws.String(key),
		UploadId:   aws.String(uploadID),
		PartNumber: aws.Int64(int64(partNumber)),
	})
	urlStr, err := req.Presign(ttl)
	if err != nil {
		return "", backendError(span, "presign upload part", err)
	}
	return urlStr, nil
}

func (s *S3Backend) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts types.Parts) (*types.CompletedObject, error) {
	ctx, span := tracer.Start(ctx, "s3.complete_multipart_upload",
		trace.WithAttributes(
			attribute.String("object_key", key),
			attribute.String("upload_id", uploadID),
			attribute.Int("part_count", len(parts)),
		),
	)
	defer span.End()

	completed := make([]*s3.CompletedPart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, &s3.CompletedPart{
			ETag:       aws.String(p.Checksum),
			PartNumber: aws.Int64(int64(p.PartNumber)),
		})
	}
	out, err := s.Client.CompleteMultipartUploadWithContext(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(s.Bucket),
		Key:             aws.String(key),
		UploadId:        aws.String(uploadID),
		MultipartUpload: &s3.CompletedMultipartUpload{Parts: completed},
	})
	if err != nil {
		return nil, backendError(span, "complete multipart upload", err)
	}

	result := &types.CompletedObject{
		Location: aws.StringValue(out.Location),
		Key:      aws.StringValue(out.Key),
		ETag:     aws.StringValue(out.ETag),
	}
	if result.Key == "" {
		result.Key = key
	}
	return result, nil
}
