package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	goredis "github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	storage.BackendRegister("redis", NewRedisSessionStorage)
}

var tracer = otel.Tracer("parcel-storage-redis")

const (
	keyPrefix   = "parcel:session:"
	scanCount   = 100
	pingTimeout = 3 * time.Second
)

// RedisSessionStorage 把每个会话保存为一个字符串键。
// AppendPart 使用 WATCH/MULTI，键在事务期间被改写时 EXEC 失败并重试。
type RedisSessionStorage struct {
	client *goredis.Client
}

// NewRedisSessionStorage 按 redis://[:password@]host:port/db 打开连接
func NewRedisSessionStorage(source string) (storage.Storage, error) {
	opts, err := goredis.ParseURL(source)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &RedisSessionStorage{client: client}, nil
}

func sessionKey(uploadID string) string {
	return keyPrefix + uploadID
}

func decode(uploadID string, data []byte) (*types.UploadSession, error) {
	session := &types.UploadSession{}
	if err := session.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", uploadID, err)
	}
	return session, nil
}

func load(ctx context.Context, c goredis.Cmdable, uploadID string) (*types.UploadSession, error) {
	data, err := c.Get(ctx, sessionKey(uploadID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, types.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode(uploadID, data)
}

// update 在 WATCH 下执行读-改-写，mutate 返回 false 表示无需写回
func (s *RedisSessionStorage) update(ctx context.Context, uploadID string, mutate func(*types.UploadSession) (bool, error)) error {
	key := sessionKey(uploadID)
	txf := func(tx *goredis.Tx) error {
		session, err := load(ctx, tx, uploadID)
		if err != nil {
			return err
		}
		changed, err := mutate(session)
		if err != nil || !changed {
			return err
		}
		data, err := session.MarshalJSON()
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	var err error
	for i := 0; i < storage.MaxConflictRetries; i++ {
		err = s.client.Watch(ctx, txf, key)
		if !errors.Is(err, goredis.TxFailedErr) {
			return err
		}
		log.Logger.Debugf("Watched key %s changed (attempt %d/%d), retrying", key, i+1, storage.MaxConflictRetries)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(storage.ConflictBackoff * time.Duration(i%8+1)):
		}
	}
	return fmt.Errorf("transaction failed after %d conflicts: %w", storage.MaxConflictRetries, err)
}

// Create 使用 SETNX 写入新会话
func (s *RedisSessionStorage) Create(ctx context.Context, session *types.UploadSession) error {
	ctx, span := tracer.Start(ctx, "redis.create_session",
		trace.WithAttributes(
			attribute.String("upload_id", session.UploadID),
		),
	)
	defer span.End()

	data, err := session.MarshalJSON()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(session.UploadID), data, 0).Result()
	if err != nil {
		span.RecordError(err)
		return storage.Unavailable("create session", err)
	}
	if !ok {
		return types.ErrSessionExists
	}
	return nil
}

func (s *RedisSessionStorage) AppendPart(ctx context.Context, uploadID, key, ownerID string, part types.Part) error {
	ctx, span := tracer.Start(ctx, "redis.append_part",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
			attribute.Int("part_number", part.PartNumber),
		),
	)
	defer span.End()

	err := s.update(ctx, uploadID, func(session *types.UploadSession) (bool, error) {
		return true, storage.ApplyPart(session, key, ownerID, part)
	})
	if err != nil {
		span.RecordError(err)
	}
	return storage.Unavailable("append part", err)
}

func (s *RedisSessionStorage) Get(ctx context.Context, uploadID, key, ownerID string) (*types.UploadSession, error) {
	ctx, span := tracer.Start(ctx, "redis.get_session",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
		),
	)
	defer span.End()

	session, err := load(ctx, s.client, uploadID)
	if err != nil {
		span.SetAttributes(attribute.Bool("found", false))
		return nil, storage.Unavailable("get session", err)
	}
	span.SetAttributes(attribute.Bool("found", true))
	return storage.Scoped(session, key, ownerID)
}

func (s *RedisSessionStorage) MarkCompleted(ctx context.Context, uploadID string, result *types.CompletedObject) error {
	ctx, span := tracer.Start(ctx, "redis.mark_completed",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
		),
	)
	defer span.End()

	err := s.update(ctx, uploadID, func(session *types.UploadSession) (bool, error) {
		return storage.ApplyCompleted(session, result), nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return storage.Unavailable("mark completed", err)
}

// List 用 SCAN 遍历会话键，遍历期间被删除的键会被跳过
func (s *RedisSessionStorage) List(ctx context.Context) ([]*types.UploadSession, error) {
	var sessions []*types.UploadSession
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", scanCount).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		uploadID := key[len(keyPrefix):]
		session, err := load(ctx, s.client, uploadID)
		if errors.Is(err, types.ErrSessionNotFound) {
			continue
		}
		if err != nil {
			log.Logger.Warn("Failed to load session ", key, ": ", err)
			continue
		}
		sessions = append(sessions, session)
	}
	if err := iter.Err(); err != nil {
		return nil, storage.Unavailable("list sessions", err)
	}
	return sessions, nil
}

func (s *RedisSessionStorage) Ping(ctx context.Context) error {
	return storage.Unavailable("ping", s.client.Ping(ctx).Err())
}

func (s *RedisSessionStorage) Close() error {
	return s.client.Close()
}
