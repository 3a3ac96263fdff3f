package badger

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
)

func init() {
	storage.BackendRegister("badger", NewBadgerSessionStorage)
}

const (
	// Badger是扁平键值存储，使用前缀区分数据
	sessionPrefix = "sessions/"

	gcInterval     = 10 * time.Minute
	gcDiscardRatio = 0.5
)

// BadgerSessionStorage 使用Badger保存上传会话。
// Badger 事务是乐观的：提交时若读取过的键被其他事务改写则返回 ErrConflict，此时整体重试。
type BadgerSessionStorage struct {
	db     *badger.DB
	gcDone chan struct{}
	once   sync.Once
}

// NewBadgerSessionStorage 创建一个新的Badger存储实例
func NewBadgerSessionStorage(path string) (storage.Storage, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.ValueLogFileSize = 64 * types.MB
	opts.NumMemtables = 2
	opts.NumLevelZeroTables = 2
	opts.NumLevelZeroTablesStall = 8
	opts.BlockCacheSize = 16 * types.MB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	s := &BadgerSessionStorage{
		db:     db,
		gcDone: make(chan struct{}),
	}
	go s.runValueLogGC()
	return s, nil
}

func (s *BadgerSessionStorage) runValueLogGC() {
	defer func() {
		if r := recover(); r != nil {
			log.Logger.Errorf("Recovered from panic in GC routine: %v\n%s", r, debug.Stack())
		}
	}()

	ticker := time.NewTicker(gcInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.db.RunValueLogGC(gcDiscardRatio); err != nil && !errors.Is(err, badger.ErrNoRewrite) {
				log.Logger.Errorf("Error running value log GC: %v", err)
			}
		case <-s.gcDone:
			return
		}
	}
}

func sessionKey(uploadID string) []byte {
	return []byte(sessionPrefix + uploadID)
}

func load(txn *badger.Txn, uploadID string) (*types.UploadSession, error) {
	item, err := txn.Get(sessionKey(uploadID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, types.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	session := &types.UploadSession{}
	if err := item.Value(session.UnmarshalJSON); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", uploadID, err)
	}
	return session, nil
}

func save(txn *badger.Txn, session *types.UploadSession) error {
	data, err := session.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return txn.Set(sessionKey(session.UploadID), data)
}

// withConflictRetry 在 ErrConflict 时重试整个事务
func (s *BadgerSessionStorage) withConflictRetry(ctx context.Context, fn func(txn *badger.Txn) error) error {
	var err error
	for i := 0; i < storage.MaxConflictRetries; i++ {
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
		log.Logger.Debugf("Transaction conflict (attempt %d/%d), retrying", i+1, storage.MaxConflictRetries)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(storage.ConflictBackoff * time.Duration(i%8+1)):
		}
	}
	return fmt.Errorf("transaction failed after %d conflicts: %w", storage.MaxConflictRetries, err)
}

// Create 写入新会话
func (s *BadgerSessionStorage) Create(ctx context.Context, session *types.UploadSession) error {
	err := s.withConflictRetry(ctx, func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey(session.UploadID))
		if err == nil {
			return types.ErrSessionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return save(txn, session)
	})
	return storage.Unavailable("create session", err)
}

// AppendPart 合并分段上报
func (s *BadgerSessionStorage) AppendPart(ctx context.Context, uploadID, key, ownerID string, part types.Part) error {
	err := s.withConflictRetry(ctx, func(txn *badger.Txn) error {
		session, err := load(txn, uploadID)
		if err != nil {
			return err
		}
		if err := storage.ApplyPart(session, key, ownerID, part); err != nil {
			return err
		}
		return save(txn, session)
	})
	return storage.Unavailable("append part", err)
}

// Get 读取会话
func (s *BadgerSessionStorage) Get(_ context.Context, uploadID, key, ownerID string) (*types.UploadSession, error) {
	var session *types.UploadSession
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		session, err = load(txn, uploadID)
		return err
	})
	if err != nil {
		return nil, storage.Unavailable("get session", err)
	}
	return storage.Scoped(session, key, ownerID)
}

// MarkCompleted 标记完成
func (s *BadgerSessionStorage) MarkCompleted(ctx context.Context, uploadID string, result *types.CompletedObject) error {
	err := s.withConflictRetry(ctx, func(txn *badger.Txn) error {
		session, err := load(txn, uploadID)
		if err != nil {
			return err
		}
		if !storage.ApplyCompleted(session, result) {
			return nil
		}
		return save(txn, session)
	})
	return storage.Unavailable("mark completed", err)
}

// List 列出全部会话
func (s *BadgerSessionStorage) List(_ context.Context) ([]*types.UploadSession, error) {
	var sessions []*types.UploadSession
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(sessionPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			session := &types.UploadSession{}
			if err := item.Value(session.UnmarshalJSON); err != nil {
				log.Logger.Warn("Failed to unmarshal session ", string(item.Key()), ": ", err)
				continue
			}
			sessions = append(sessions, session)
		}
		return nil
	})
	if err != nil {
		return nil, storage.Unavailable("list sessions", err)
	}
	return sessions, nil
}

func (s *BadgerSessionStorage) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return fmt.Errorf("%w: badger database is closed", types.ErrStoreUnavailable)
	}
	return nil
}

// Close 关闭数据库并停止GC
func (s *BadgerSessionStorage) Close() error {
	var err error
	s.once.Do(func() {
		close(s.gcDone)
		err = s.db.Close()
	})
	return err
}
