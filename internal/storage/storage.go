package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic-io/parcel/internal/types"
)

// Storage 会话存储后端
type Storage interface {
	SessionStore
	// 检查后端是否可用
	Ping(ctx context.Context) error
	// 关闭存储
	Close() error
}

// SessionStore 上传会话的持久化记录。每次调用都直接读写后端，不做缓存。
type SessionStore interface {
	// Create 写入一条新会话，upload_id 已存在时返回 ErrSessionExists
	Create(ctx context.Context, session *types.UploadSession) error
	// AppendPart 原子地合并一个分段并把状态推进到 in_progress。
	// upload_id、key、owner 任一不匹配都返回 ErrSessionNotFound。
	AppendPart(ctx context.Context, uploadID, key, ownerID string, part types.Part) error
	// Get 按 owner 范围读取会话
	Get(ctx context.Context, uploadID, key, ownerID string) (*types.UploadSession, error)
	// MarkCompleted 标记会话完成并记录合并结果，重复调用不报错
	MarkCompleted(ctx context.Context, uploadID string, result *types.CompletedObject) error
	// List 列出全部会话，供运维和外部对账使用
	List(ctx context.Context) ([]*types.UploadSession, error)
}

const (
	// 乐观事务冲突时的最大重试次数
	MaxConflictRetries = 64
	ConflictBackoff    = 2 * time.Millisecond
)

type backend func(string) (Storage, error)

var Backends = map[string]backend{}

func BackendRegister(name string, be backend) {
	if _, ok := Backends[name]; ok {
		panic(fmt.Errorf("backend %s already registered", name))
	}
	Backends[name] = be
}

// NewStorage 按名称打开存储后端，source 是文件路径或连接串
func NewStorage(engine, source string) (Storage, error) {
	if backend, ok := Backends[engine]; ok {
		return backend(source)
	}
	return nil, fmt.Errorf("backend %s not found", engine)
}

var domainErrors = []error{
	types.ErrSessionNotFound,
	types.ErrSessionExists,
	types.ErrAlreadyCompleted,
	types.ErrStoreUnavailable,
}

// Unavailable 把驱动层错误包装为 ErrStoreUnavailable，领域错误原样返回
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, de := range domainErrors {
		if errors.Is(err, de) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", types.ErrStoreUnavailable, op, err)
}

// ApplyPart 在已加载的记录上执行一次分段合并，各后端在自己的原子更新中调用
func ApplyPart(session *types.UploadSession, key, ownerID string, part types.Part) error {
	if !session.Owns(key, ownerID) {
		return types.ErrSessionNotFound
	}
	if session.Status == types.StatusCompleted {
		return types.ErrAlreadyCompleted
	}
	session.Parts = session.Parts.Merge(part)
	session.Status = types.StatusInProgress
	session.UpdatedAt = time.Now().UTC()
	return nil
}

// ApplyCompleted 在已加载的记录上标记完成，已完成的记录保持原结果
func ApplyCompleted(session *types.UploadSession, result *types.CompletedObject) bool {
	if session.Status == types.StatusCompleted {
		return false
	}
	session.Status = types.StatusCompleted
	session.Result = result
	session.UpdatedAt = time.Now().UTC()
	return true
}

// Scoped 校验读取到的记录是否属于调用者
func Scoped(session *types.UploadSession, key, ownerID string) (*types.UploadSession, error) {
	if session == nil || !session.Owns(key, ownerID) {
		return nil, types.ErrSessionNotFound
	}
	return session, nil
}
