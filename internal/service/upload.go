package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/elastic-io/parcel/internal/clients"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/elastic-io/parcel/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("parcel-service")

type UploadService interface {
	StartUpload(ctx context.Context, filename, contentType, ownerID string) (*types.StartUploadResponse, error)
	GetPartAuthorization(ctx context.Context, uploadID, key string, partNumber int) (*types.PartAuthorization, error)
	ReportPart(ctx context.Context, uploadID, key, ownerID string, partNumber int, checksum string) error
	CompleteUpload(ctx context.Context, uploadID, key, ownerID string) (*types.CompletedObject, error)
	GetUpload(ctx context.Context, uploadID, key, ownerID string) (*types.UploadSession, error)
}

type Options struct {
	// 分段地址有效期，0 表示一小时
	PartURLExpiry time.Duration
	// 为对象键加随机前缀 <uid>/<filename>，避免同名文件互相覆盖
	UniqueKeys bool
}

// uploadService 不持有任何会话状态，所有状态都在 store 中
type uploadService struct {
	store   storage.SessionStore
	backend clients.MultipartBackend
	issuer  *Issuer
	opts    Options
}

// NewUploadService 创建上传协调服务
func NewUploadService(store storage.SessionStore, backend clients.MultipartBackend, opts Options) UploadService {
	return &uploadService{
		store:   store,
		backend: backend,
		issuer:  NewIssuer(backend, opts.PartURLExpiry),
		opts:    opts,
	}
}

func (u *uploadService) objectKey(filename string) string {
	if !u.opts.UniqueKeys {
		return filename
	}
	return path.Join(utils.UID(utils.HEX, 16), filename)
}

// StartUpload 先在后端开启分段上传，再写入会话记录。
// 后端成功而记录写入失败时，后端上会留下一个无人引用的分段上传，需要外部对账清理。
func (u *uploadService) StartUpload(ctx context.Context, filename, contentType, ownerID string) (*types.StartUploadResponse, error) {
	key := u.objectKey(filename)
	ctx, span := tracer.Start(ctx, "upload.start",
		trace.WithAttributes(
			attribute.String("object_key", key),
			attribute.String("owner_id", ownerID),
		),
	)
	defer span.End()

	uploadID, err := u.backend.CreateMultipartUpload(ctx, key, contentType)
	if err != nil {
		span.RecordError(err)
		log.Logger.Errorf("Failed to create multipart upload for %s: %v", key, err)
		return nil, asBackendError("create multipart upload", err)
	}
	span.SetAttributes(attribute.String("upload_id", uploadID))

	if err := u.store.Create(ctx, types.NewUploadSession(uploadID, key, ownerID, contentType)); err != nil {
		span.RecordError(err)
		log.Logger.Errorf("Orphaned multipart upload: upload_id=%s key=%s owner=%s, session record not written: %v",
			uploadID, key, ownerID, err)
		return nil, err
	}

	log.Logger.Infof("Upload started: upload_id=%s key=%s owner=%s", uploadID, key, ownerID)
	return &types.StartUploadResponse{UploadID: uploadID, Key: key}, nil
}

func (u *uploadService) GetPartAuthorization(ctx context.Context, uploadID, key string, partNumber int) (*types.PartAuthorization, error) {
	auth, err := u.issuer.Issue(ctx, uploadID, key, partNumber)
	if err != nil {
		log.Logger.Warnf("Part authorization refused: upload_id=%s part=%d: %v", uploadID, partNumber, err)
		return nil, err
	}
	log.Logger.Debugf("Part authorization issued: upload_id=%s part=%d expires=%s", uploadID, partNumber, auth.ExpiresAt)
	return auth, nil
}

// ReportPart 记录客户端上传完成的分段，同一分段号以最后一次上报为准
func (u *uploadService) ReportPart(ctx context.Context, uploadID, key, ownerID string, partNumber int, checksum string) error {
	ctx, span := tracer.Start(ctx, "upload.report_part",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
			attribute.String("object_key", key),
			attribute.Int("part_number", partNumber),
		),
	)
	defer span.End()

	if !types.ValidPartNumber(partNumber) {
		return fmt.Errorf("%w: %d not in [%d, %d]", types.ErrInvalidPartNumber,
			partNumber, types.MinPartNumber, types.MaxPartNumber)
	}

	err := u.store.AppendPart(ctx, uploadID, key, ownerID, types.Part{PartNumber: partNumber, Checksum: checksum})
	if err != nil {
		span.RecordError(err)
		log.Logger.Warnf("Failed to record part: upload_id=%s part=%d owner=%s: %v", uploadID, partNumber, ownerID, err)
		return err
	}

	log.Logger.Infof("Part recorded: upload_id=%s key=%s owner=%s part=%d", uploadID, key, ownerID, partNumber)
	return nil
}

// CompleteUpload 按分段号升序提交合并。
// 已完成的会话直接返回记录的结果，不会再次调用后端。
func (u *uploadService) CompleteUpload(ctx context.Context, uploadID, key, ownerID string) (*types.CompletedObject, error) {
	ctx, span := tracer.Start(ctx, "upload.complete",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
			attribute.String("object_key", key),
		),
	)
	defer span.End()

	session, err := u.store.Get(ctx, uploadID, key, ownerID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if session.Status == types.StatusCompleted {
		return recordedResult(session)
	}
	if len(session.Parts) == 0 {
		return nil, fmt.Errorf("%w: upload %s", types.ErrNoPartsUploaded, uploadID)
	}

	parts := session.Parts.Sorted()
	span.SetAttributes(attribute.Int("part_count", len(parts)))

	result, err := u.backend.CompleteMultipartUpload(ctx, key, uploadID, parts)
	if err != nil {
		span.RecordError(err)
		// 并发的另一个请求可能已经完成合并，此时后端会拒绝第二次合并
		if current, gerr := u.store.Get(ctx, uploadID, key, ownerID); gerr == nil && current.Status == types.StatusCompleted {
			log.Logger.Infof("Upload completed concurrently: upload_id=%s key=%s", uploadID, key)
			return recordedResult(current)
		}
		log.Logger.Errorf("Failed to complete multipart upload: upload_id=%s key=%s parts=%d: %v", uploadID, key, len(parts), err)
		return nil, asBackendError("complete multipart upload", err)
	}

	if err := u.store.MarkCompleted(ctx, uploadID, result); err != nil {
		span.RecordError(err)
		log.Logger.Errorf("Object assembled but session not marked completed: upload_id=%s key=%s location=%s: %v",
			uploadID, key, result.Location, err)
		return nil, err
	}

	// 以存储中记录的结果为准，并发完成时保持两次返回一致
	if current, err := u.store.Get(ctx, uploadID, key, ownerID); err == nil && current.Result != nil {
		result = current.Result
	}

	log.Logger.Infof("Upload completed: upload_id=%s key=%s owner=%s parts=%d location=%s",
		uploadID, key, ownerID, len(parts), result.Location)
	return result, nil
}

func recordedResult(session *types.UploadSession) (*types.CompletedObject, error) {
	if session.Result == nil {
		return nil, fmt.Errorf("%w: upload %s", types.ErrAlreadyCompleted, session.UploadID)
	}
	return session.Result, nil
}

// GetUpload 按 owner 范围读取会话记录
func (u *uploadService) GetUpload(ctx context.Context, uploadID, key, ownerID string) (*types.UploadSession, error) {
	session, err := u.store.Get(ctx, uploadID, key, ownerID)
	if err != nil {
		if !errors.Is(err, types.ErrSessionNotFound) {
			log.Logger.Warnf("Failed to read session %s: %v", uploadID, err)
		}
		return nil, err
	}
	return session, nil
}
