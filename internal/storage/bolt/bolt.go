package bolt

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	"go.etcd.io/bbolt"
)

func init() {
	storage.BackendRegister("bolt", NewBoltSessionStorage)
}

const (
	sessionsBucket = "sessions"
)

// BoltSessionStorage 使用BoltDB保存上传会话。
// bbolt 同一时刻只有一个读写事务，AppendPart 在单个 Update 中完成读-改-写，不会丢失更新。
type BoltSessionStorage struct {
	db        *bbolt.DB
	closeOnce sync.Once
	mu        sync.RWMutex
}

// NewBoltSessionStorage 创建一个新的BoltDB存储实例
func NewBoltSessionStorage(path string) (storage.Storage, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout:      1 * time.Second,
		NoSync:       false,
		FreelistType: bbolt.FreelistMapType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(sessionsBucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", sessionsBucket, err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return &BoltSessionStorage{db: db}, nil
}

// safeBucketOperation 获取会话桶并执行操作，捕获 bbolt 内部 panic
func (s *BoltSessionStorage) safeBucketOperation(tx *bbolt.Tx, operation func(*bbolt.Bucket) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Logger.Errorf("Recovered from panic in bucket operation: %v\n%s", r, debug.Stack())
			err = fmt.Errorf("bucket operation panicked: %v", r)
		}
	}()

	bucket := tx.Bucket([]byte(sessionsBucket))
	if bucket == nil {
		return fmt.Errorf("bucket %s not found", sessionsBucket)
	}
	return operation(bucket)
}

func (s *BoltSessionStorage) view(fn func(*bbolt.Bucket) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("storage is closed")
	}
	return s.db.View(func(tx *bbolt.Tx) error {
		return s.safeBucketOperation(tx, fn)
	})
}

func (s *BoltSessionStorage) update(fn func(*bbolt.Bucket) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return fmt.Errorf("storage is closed")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return s.safeBucketOperation(tx, fn)
	})
}

func load(bkt *bbolt.Bucket, uploadID string) (*types.UploadSession, error) {
	data := bkt.Get([]byte(uploadID))
	if data == nil {
		return nil, types.ErrSessionNotFound
	}
	session := &types.UploadSession{}
	if err := session.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", uploadID, err)
	}
	return session, nil
}

func save(bkt *bbolt.Bucket, session *types.UploadSession) error {
	data, err := session.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return bkt.Put([]byte(session.UploadID), data)
}

// Create 写入新会话
func (s *BoltSessionStorage) Create(_ context.Context, session *types.UploadSession) error {
	err := s.update(func(bkt *bbolt.Bucket) error {
		if bkt.Get([]byte(session.UploadID)) != nil {
			return types.ErrSessionExists
		}
		return save(bkt, session)
	})
	return storage.Unavailable("create session", err)
}

// AppendPart 合并分段上报
func (s *BoltSessionStorage) AppendPart(_ context.Context, uploadID, key, ownerID string, part types.Part) error {
	err := s.update(func(bkt *bbolt.Bucket) error {
		session, err := load(bkt, uploadID)
		if err != nil {
			return err
		}
		if err := storage.ApplyPart(session, key, ownerID, part); err != nil {
			return err
		}
		return save(bkt, session)
	})
	return storage.Unavailable("append part", err)
}

// Get 读取会话
func (s *BoltSessionStorage) Get(_ context.Context, uploadID, key, ownerID string) (*types.UploadSession, error) {
	var session *types.UploadSession
	err := s.view(func(bkt *bbolt.Bucket) error {
		var err error
		session, err = load(bkt, uploadID)
		return err
	})
	if err != nil {
		return nil, storage.Unavailable("get session", err)
	}
	return storage.Scoped(session, key, ownerID)
}

// MarkCompleted 标记完成
func (s *BoltSessionStorage) MarkCompleted(_ context.Context, uploadID string, result *types.CompletedObject) error {
	err := s.update(func(bkt *bbolt.Bucket) error {
		session, err := load(bkt, uploadID)
		if err != nil {
			return err
		}
		if !storage.ApplyCompleted(session, result) {
			return nil
		}
		return save(bkt, session)
	})
	return storage.Unavailable("mark completed", err)
}

// List 列出全部会话
func (s *BoltSessionStorage) List(_ context.Context) ([]*types.UploadSession, error) {
	var sessions []*types.UploadSession
	err := s.view(func(bkt *bbolt.Bucket) error {
		return bkt.ForEach(func(k, v []byte) error {
			session := &types.UploadSession{}
			if err := session.UnmarshalJSON(v); err != nil {
				log.Logger.Warn("Failed to unmarshal session ", string(k), ": ", err)
				return nil
			}
			sessions = append(sessions, session)
			return nil
		})
	})
	if err != nil {
		return nil, storage.Unavailable("list sessions", err)
	}
	return sessions, nil
}

func (s *BoltSessionStorage) Ping(_ context.Context) error {
	return storage.Unavailable("ping", s.view(func(*bbolt.Bucket) error { return nil }))
}

// Close 关闭数据库
func (s *BoltSessionStorage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.db == nil {
			return
		}
		err = s.db.Close()
		s.db = nil
	})
	return err
}
