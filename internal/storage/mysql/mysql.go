package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/types"
	driver "github.com/go-sql-driver/mysql"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func init() {
	storage.BackendRegister("mysql", NewMySQLSessionStorage)
}

var tracer = otel.Tracer("parcel-storage-mysql")

const (
	errDuplicateEntry = 1062

	pingTimeout = 5 * time.Second
)

const schema = `CREATE TABLE IF NOT EXISTS upload_sessions (
	upload_id    VARCHAR(255) NOT NULL PRIMARY KEY,
	object_key   VARCHAR(1024) NOT NULL,
	owner_id     VARCHAR(255) NOT NULL,
	content_type VARCHAR(255) NOT NULL DEFAULT '',
	parts        MEDIUMTEXT NOT NULL,
	status       VARCHAR(32) NOT NULL,
	result       TEXT NULL,
	version      BIGINT NOT NULL DEFAULT 0,
	created_at   DATETIME(6) NOT NULL,
	updated_at   DATETIME(6) NOT NULL
)`

const selectColumns = `SELECT upload_id, object_key, owner_id, content_type, parts, status, result, version, created_at, updated_at FROM upload_sessions`

// MySQLSessionStorage 一行一个会话，分段列表以 JSON 保存在 parts 列。
// 更新使用 version 列做比较交换，受影响行数为 0 时说明被并发修改，重新读取后重试。
type MySQLSessionStorage struct {
	db *sql.DB
}

// NewMySQLSessionStorage 按 DSN 打开连接并建表
func NewMySQLSessionStorage(source string) (storage.Storage, error) {
	cfg, err := driver.ParseDSN(source)
	if err != nil {
		return nil, fmt.Errorf("invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC

	connector, err := driver.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLSessionStorage{db: db}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*types.UploadSession, int64, error) {
	var (
		session types.UploadSession
		parts   string
		status  string
		result  sql.NullString
		version int64
	)
	err := row.Scan(&session.UploadID, &session.Key, &session.OwnerID, &session.ContentType,
		&parts, &status, &result, &version, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		return nil, 0, err
	}
	session.Status = types.Status(status)
	if err := session.Parts.UnmarshalJSON([]byte(parts)); err != nil {
		return nil, 0, fmt.Errorf("failed to unmarshal parts of %s: %w", session.UploadID, err)
	}
	if result.Valid && result.String != "" {
		session.Result = &types.CompletedObject{}
		if err := session.Result.UnmarshalJSON([]byte(result.String)); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal result of %s: %w", session.UploadID, err)
		}
	}
	if session.Parts == nil {
		session.Parts = types.Parts{}
	}
	return &session, version, nil
}

func encodeParts(session *types.UploadSession) (string, sql.NullString, error) {
	parts := session.Parts
	if parts == nil {
		parts = types.Parts{}
	}
	p, err := parts.MarshalJSON()
	if err != nil {
		return "", sql.NullString{}, err
	}
	var result sql.NullString
	if session.Result != nil {
		r, err := session.Result.MarshalJSON()
		if err != nil {
			return "", sql.NullString{}, err
		}
		result = sql.NullString{String: string(r), Valid: true}
	}
	return string(p), result, nil
}

func (s *MySQLSessionStorage) load(ctx context.Context, uploadID string) (*types.UploadSession, int64, error) {
	session, version, err := scanSession(s.db.QueryRowContext(ctx, selectColumns+` WHERE upload_id = ?`, uploadID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, types.ErrSessionNotFound
	}
	return session, version, err
}

// update 读取-修改-比较交换，mutate 返回 false 表示无需写回
func (s *MySQLSessionStorage) update(ctx context.Context, uploadID string, mutate func(*types.UploadSession) (bool, error)) error {
	for i := 0; i < storage.MaxConflictRetries; i++ {
		session, version, err := s.load(ctx, uploadID)
		if err != nil {
			return err
		}
		changed, err := mutate(session)
		if err != nil || !changed {
			return err
		}
		parts, result, err := encodeParts(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		res, err := s.db.ExecContext(ctx,
			`UPDATE upload_sessions SET parts = ?, status = ?, result = ?, version = version + 1, updated_at = ?
			 WHERE upload_id = ? AND version = ?`,
			parts, string(session.Status), result, session.UpdatedAt, uploadID, version)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 1 {
			return nil
		}
		log.Logger.Debugf("Version conflict on session %s (attempt %d/%d), retrying", uploadID, i+1, storage.MaxConflictRetries)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(storage.ConflictBackoff * time.Duration(i%8+1)):
		}
	}
	return fmt.Errorf("update of session %s failed after %d conflicts", uploadID, storage.MaxConflictRetries)
}

func (s *MySQLSessionStorage) Create(ctx context.Context, session *types.UploadSession) error {
	ctx, span := tracer.Start(ctx, "mysql.create_session",
		trace.WithAttributes(
			attribute.String("upload_id", session.UploadID),
		),
	)
	defer span.End()

	parts, result, err := encodeParts(session)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	query := `INSERT INTO upload_sessions (upload_id, object_key, owner_id, content_type, parts, status, result, version, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`
	_, err = s.db.ExecContext(ctx, query, session.UploadID, session.Key, session.OwnerID, session.ContentType,
		parts, string(session.Status), result, session.CreatedAt, session.UpdatedAt)
	var myErr *driver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == errDuplicateEntry {
		return types.ErrSessionExists
	}
	if err != nil {
		span.RecordError(err)
	}
	return storage.Unavailable("create session", err)
}

func (s *MySQLSessionStorage) AppendPart(ctx context.Context, uploadID, key, ownerID string, part types.Part) error {
	ctx, span := tracer.Start(ctx, "mysql.append_part",
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

func (s *MySQLSessionStorage) Get(ctx context.Context, uploadID, key, ownerID string) (*types.UploadSession, error) {
	ctx, span := tracer.Start(ctx, "mysql.get_session",
		trace.WithAttributes(
			attribute.String("upload_id", uploadID),
		),
	)
	defer span.End()

	session, _, err := s.load(ctx, uploadID)
	if err != nil {
		span.SetAttributes(attribute.Bool("found", false))
		return nil, storage.Unavailable("get session", err)
	}
	span.SetAttributes(attribute.Bool("found", true))
	return storage.Scoped(session, key, ownerID)
}

func (s *MySQLSessionStorage) MarkCompleted(ctx context.Context, uploadID string, result *types.CompletedObject) error {
	ctx, span := tracer.Start(ctx, "mysql.mark_completed",
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

func (s *MySQLSessionStorage) List(ctx context.Context) ([]*types.UploadSession, error) {
	rows, err := s.db.QueryContext(ctx, selectColumns+` ORDER BY created_at ASC`)
	if err != nil {
		return nil, storage.Unavailable("list sessions", err)
	}
	defer rows.Close()

	var sessions []*types.UploadSession
	for rows.Next() {
		session, _, err := scanSession(rows)
		if err != nil {
			log.Logger.Warn("Failed to scan session: ", err)
			continue
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Unavailable("list sessions", err)
	}
	return sessions, nil
}

func (s *MySQLSessionStorage) Ping(ctx context.Context) error {
	return storage.Unavailable("ping", s.db.PingContext(ctx))
}

func (s *MySQLSessionStorage) Close() error {
	return s.db.Close()
}
