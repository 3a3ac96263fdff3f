package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic-io/parcel/internal/clients"
	"github.com/elastic-io/parcel/internal/types"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// 分段上传地址的默认有效期
const DefaultPartURLExpiry = time.Hour

// Issuer 为单个分段签发限时上传地址。
// 不读写会话存储，upload id 是否存在由后端在上传时校验。
type Issuer struct {
	backend clients.MultipartBackend
	ttl     time.Duration
	now     func() time.Time
}

func NewIssuer(backend clients.MultipartBackend, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultPartURLExpiry
	}
	return &Issuer{backend: backend, ttl: ttl, now: time.Now}
}

// TTL 返回签发地址的有效期
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue 签发 partNumber 对应的上传地址，分段号越界时不访问后端
func (i *Issuer) Issue(ctx context.Context, uploadID, key string, partNumber int) (*types.PartAuthorization, error) {
	ctx, span := tracer.Start(ctx, "issuer.issue",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
			attribute.String("object_key", key),
			attribute.Int("part_number", partNumber),
		),
	)
	defer span.End()

	if !types.ValidPartNumber(partNumber) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", types.ErrInvalidPartNumber,
			partNumber, types.MinPartNumber, types.MaxPartNumber)
	}

	issuedAt := i.now()
	signed, err := i.backend.PresignUploadPart(ctx, key, uploadID, partNumber, i.ttl)
	if err != nil {
		span.RecordError(err)
		return nil, asBackendError("presign upload part", err)
	}
	return &types.PartAuthorization{
		SignedURL:  signed,
		PartNumber: partNumber,
		ExpiresAt:  issuedAt.Add(i.ttl).UTC(),
	}, nil
}

// asBackendError 确保后端返回的错误带有 ErrBackend
func asBackendError(op string, err error) error {
	if errors.Is(err, types.ErrBackend) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", types.ErrBackend, op, err)
}
