package clients

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// MinioBackend 基于 minio-go Core 的分段上传实现
type MinioBackend struct {
	core   *minio.Core
	Bucket string
}

// NewMinioBackend endpoint 可以是 host:port，也可以带 http(s):// 前缀
func NewMinioBackend(ak, sk, token, region, endpoint, bucket string, opts ...S3Options) (*MinioBackend, error) {
	secure := true
	host := endpoint
	if strings.Contains(endpoint, "://") {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid minio endpoint %q: %w", endpoint, err)
		}
		host = u.Host
		secure = u.Scheme == "https"
	}

	mopts := &minio.Options{
		Creds:  credentials.NewStaticV4(ak, sk, token),
		Secure: secure,
		// 指定 region 后预签名不需要查询桶位置
		Region: region,
	}
	if len(opts) > 0 {
		if opts[0].S3ForcePathStyle {
			mopts.BucketLookup = minio.BucketLookupPath
		}
		if opts[0].DisableSSL {
			mopts.Secure = false
		}
		if opts[0].InsecureSkipVerify {
			mopts.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			}
		}
	}

	core, err := minio.NewCore(host, mopts)
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &MinioBackend{core: core, Bucket: bucket}, nil
}

func minioError(span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	resp := minio.ToErrorResponse(err)
	log.Logger.Errorf("MinIO %s failed: code=%s message=%s", op, resp.Code, err)
	return fmt.Errorf("%w: %s: %w", types.ErrBackend, op, err)
}

func (m *MinioBackend) CreateMultipartUpload(ctx context.Context, key, contentType string) (string, error) {
	ctx, span := tracer.Start(ctx, "minio.create_multipart_upload",
		trace.WithAttributes(
			attribute.String("bucket", m.Bucket),
			attribute.String("object_key", key),
		),
	)
	defer span.End()

	uploadID, err := m.core.NewMultipartUpload(ctx, m.Bucket, key, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", minioError(span, "create multipart upload", err)
	}
	span.SetAttributes(attribute.String("upload_id", uploadID))
	return uploadID, nil
}

func (m *MinioBackend) PresignUploadPart(ctx context.Context, key, uploadID string, partNumber int, ttl time.Duration) (string, error) {
	ctx, span := tracer.Start(ctx, "minio.presign_upload_part",
		trace.WithAttributes(
			attribute.String("object_key", key),
			attribute.String("upload_id", uploadID),
			attribute.Int("part_number", partNumber),
		),
	)
	defer span.End()

	params := url.Values{}
	params.Set("partNumber", strconv.Itoa(partNumber))
	params.Set("uploadId", uploadID)
	u, err := m.core.Presign(ctx, http.MethodPut, m.Bucket, key, ttl, params)
	if err != nil {
		return "", minioError(span, "presign upload part", err)
	}
	return u.String(), nil
}

func (m *MinioBackend) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts types.Parts) (*types.CompletedObject, error) {
	ctx, span := tracer.Start(ctx, "minio.complete_multipart_upload",
		trace.WithAttributes(
			attribute.String("object_key", key),
			attribute.String("upload_id", uploadID),
			attribute.Int("part_count", len(parts)),
		),
	)
	defer span.End()

	completed := make([]minio.CompletePart, 0, len(parts))
	for _, p := range parts {
		completed = append(completed, minio.CompletePart{PartNumber: p.PartNumber, ETag: p.Checksum})
	}
	info, err := m.core.CompleteMultipartUpload(ctx, m.Bucket, key, uploadID, completed, minio.PutObjectOptions{})
	if err != nil {
		return nil, minioError(span, "complete multipart upload", err)
	}

	result := &types.CompletedObject{
		Location: info.Location,
		Key:      info.Key,
		ETag:     info.ETag,
	}
	if result.Key == "" {
		result.Key = key
	}
	return result, nil
}
