package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/storage"
	"github.com/elastic-io/parcel/internal/storage/bolt"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// 模拟的对象存储后端
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) CreateMultipartUpload(ctx context.Context, key, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) PresignUploadPart(ctx context.Context, key, uploadID string, partNumber int, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, uploadID, partNumber, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) CompleteMultipartUpload(ctx context.Context, key, uploadID string, parts types.Parts) (*types.CompletedObject, error) {
	args := m.Called(ctx, key, uploadID, parts)
	if obj := args.Get(0); obj != nil {
		return obj.(*types.CompletedObject), args.Error(1)
	}
	return nil, args.Error(1)
}

// 测试辅助函数
func setupTestService(t *testing.T, opts Options) (UploadService, *MockBackend, storage.Storage) {
	log.Init("", "debug")

	store, err := bolt.NewBoltSessionStorage(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	backend := new(MockBackend)
	return NewUploadService(store, backend, opts), backend, store
}

// startUpload 开启一个 video.mp4 的上传，返回 upload id
func startUpload(t *testing.T, svc UploadService, backend *MockBackend, uploadID string) string {
	backend.On("CreateMultipartUpload", mock.Anything, "video.mp4", "video/mp4").Return(uploadID, nil).Once()
	resp, err := svc.StartUpload(context.Background(), "video.mp4", "video/mp4", "alice")
	require.NoError(t, err)
	require.Equal(t, uploadID, resp.UploadID)
	return resp.UploadID
}

func partNumbers(parts types.Parts) []int {
	n := make([]int, 0, len(parts))
	for _, p := range parts {
		n = append(n, p.PartNumber)
	}
	return n
}

func TestStartUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("创建会话", func(t *testing.T) {
		svc, backend, store := setupTestService(t, Options{})
		id := startUpload(t, svc, backend, "up-1")

		got, err := store.Get(ctx, id, "video.mp4", "alice")
		require.NoError(t, err)
		assert.Equal(t, types.StatusInitiated, got.Status)
		assert.Equal(t, "video/mp4", got.ContentType)
		assert.Empty(t, got.Parts)
		backend.AssertExpectations(t)
	})

	t.Run("后端失败不写记录", func(t *testing.T) {
		svc, backend, store := setupTestService(t, Options{})
		backend.On("CreateMultipartUpload", mock.Anything, "video.mp4", "").Return("", errors.New("connection reset"))

		_, err := svc.StartUpload(ctx, "video.mp4", "", "alice")
		assert.ErrorIs(t, err, types.ErrBackend)
		assert.True(t, types.IsRetryable(err))

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, sessions)
	})

	t.Run("存储失败", func(t *testing.T) {
		svc, backend, store := setupTestService(t, Options{})
		require.NoError(t, store.Close())
		backend.On("CreateMultipartUpload", mock.Anything, "video.mp4", "").Return("up-orphan", nil)

		_, err := svc.StartUpload(ctx, "video.mp4", "", "alice")
		assert.ErrorIs(t, err, types.ErrStoreUnavailable)
		backend.AssertNumberOfCalls(t, "CreateMultipartUpload", 1)
	})

	t.Run("唯一键前缀", func(t *testing.T) {
		svc, backend, _ := setupTestService(t, Options{UniqueKeys: true})
		pattern := regexp.MustCompile(`^[0-9a-f]{16}/video\.mp4$`)
		backend.On("CreateMultipartUpload", mock.Anything, mock.MatchedBy(pattern.MatchString), "").Return("up-2", nil)

		resp, err := svc.StartUpload(ctx, "video.mp4", "", "alice")
		require.NoError(t, err)
		assert.Regexp(t, pattern, resp.Key)
	})
}

func TestGetPartAuthorization(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := setupTestService(t, Options{})

	for _, pn := range []int{0, -1, types.MaxPartNumber + 1} {
		_, err := svc.GetPartAuthorization(ctx, "up-1", "video.mp4", pn)
		assert.ErrorIs(t, err, types.ErrInvalidPartNumber, "part %d", pn)
		assert.False(t, types.IsRetryable(err))
	}
	backend.AssertNotCalled(t, "PresignUploadPart", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	backend.On("PresignUploadPart", mock.Anything, "video.mp4", "up-1", types.MaxPartNumber, DefaultPartURLExpiry).
		Return("https://bucket.example/video.mp4?partNumber=10000", nil).Twice()
	before := time.Now()
	auth, err := svc.GetPartAuthorization(ctx, "up-1", "video.mp4", types.MaxPartNumber)
	require.NoError(t, err)
	assert.Equal(t, types.MaxPartNumber, auth.PartNumber)
	assert.Contains(t, auth.SignedURL, "partNumber=10000")
	assert.WithinDuration(t, before.Add(time.Hour), auth.ExpiresAt, 5*time.Second)

	// 同一分段可以重复签发
	_, err = svc.GetPartAuthorization(ctx, "up-1", "video.mp4", types.MaxPartNumber)
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestGetPartAuthorizationBackendError(t *testing.T) {
	svc, backend, _ := setupTestService(t, Options{PartURLExpiry: 15 * time.Minute})
	backend.On("PresignUploadPart", mock.Anything, "k", "up-1", 1, 15*time.Minute).Return("", errors.New("no credentials"))

	_, err := svc.GetPartAuthorization(context.Background(), "up-1", "k", 1)
	assert.ErrorIs(t, err, types.ErrBackend)
}

func TestReportPart(t *testing.T) {
	ctx := context.Background()

	t.Run("未知会话不修改任何记录", func(t *testing.T) {
		svc, backend, store := setupTestService(t, Options{})
		id := startUpload(t, svc, backend, "up-1")

		for _, c := range []struct{ id, key, owner string }{
			{"up-missing", "video.mp4", "alice"},
			{id, "other.mp4", "alice"},
			{id, "video.mp4", "mallory"},
		} {
			err := svc.ReportPart(ctx, c.id, c.key, c.owner, 1, "etag-1")
			assert.ErrorIs(t, err, types.ErrSessionNotFound)
			assert.False(t, types.IsRetryable(err))
		}

		got, err := store.Get(ctx, id, "video.mp4", "alice")
		require.NoError(t, err)
		assert.Empty(t, got.Parts)
		assert.Equal(t, types.StatusInitiated, got.Status)
	})

	t.Run("分段号越界", func(t *testing.T) {
		svc, backend, _ := setupTestService(t, Options{})
		id := startUpload(t, svc, backend, "up-1")
		assert.ErrorIs(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 0, "x"), types.ErrInvalidPartNumber)
		assert.ErrorIs(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 10001, "x"), types.ErrInvalidPartNumber)
	})

	t.Run("重复上报覆盖旧校验值", func(t *testing.T) {
		svc, backend, store := setupTestService(t, Options{})
		id := startUpload(t, svc, backend, "up-1")

		require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "old"))
		require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "old"))
		require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "new"))

		got, err := svc.GetUpload(ctx, id, "video.mp4", "alice")
		require.NoError(t, err)
		assert.Equal(t, types.Parts{{PartNumber: 1, Checksum: "new"}}, got.Parts)
		assert.Equal(t, types.StatusInProgress, got.Status)

		backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id, types.Parts{{PartNumber: 1, Checksum: "new"}}).
			Return(&types.CompletedObject{Location: "loc", Key: "video.mp4"}, nil).Once()
		_, err = svc.CompleteUpload(ctx, id, "video.mp4", "alice")
		require.NoError(t, err)

		got, err = store.Get(ctx, id, "video.mp4", "alice")
		require.NoError(t, err)
		assert.Equal(t, types.StatusCompleted, got.Status)
	})

	t.Run("完成后拒绝上报", func(t *testing.T) {
		svc, backend, store := setupTestService(t, Options{})
		id := startUpload(t, svc, backend, "up-1")
		require.NoError(t, store.MarkCompleted(ctx, id, &types.CompletedObject{Location: "loc", Key: "video.mp4"}))

		err := svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "x")
		assert.ErrorIs(t, err, types.ErrAlreadyCompleted)
	})
}

func TestCompleteUploadOrdersParts(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")

	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 2, "etag-2"))
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-1"))

	want := &types.CompletedObject{Location: "https://bucket.example/video.mp4", Key: "video.mp4"}
	backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id,
		types.Parts{{PartNumber: 1, Checksum: "etag-1"}, {PartNumber: 2, Checksum: "etag-2"}}).
		Return(want, nil).Once()

	got, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	assert.Equal(t, want.Location, got.Location)
	assert.Equal(t, want.Key, got.Key)
	backend.AssertExpectations(t)
}

func TestCompleteUploadConcurrentReports(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")

	const n = 40
	var wg sync.WaitGroup
	for i := n; i >= 1; i-- {
		wg.Add(1)
		go func(pn int) {
			defer wg.Done()
			assert.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", pn, fmt.Sprintf("etag-%d", pn)))
		}(i)
	}
	wg.Wait()

	ascending := mock.MatchedBy(func(parts types.Parts) bool {
		if len(parts) != n {
			return false
		}
		for i, p := range parts {
			if p.PartNumber != i+1 {
				return false
			}
		}
		return true
	})
	backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id, ascending).
		Return(&types.CompletedObject{Location: "loc", Key: "video.mp4"}, nil).Once()

	_, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestCompleteUploadNoParts(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")

	_, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	assert.ErrorIs(t, err, types.ErrNoPartsUploaded)
	backend.AssertNotCalled(t, "CompleteMultipartUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	_, err = svc.CompleteUpload(ctx, id, "video.mp4", "mallory")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func TestCompleteUploadTwice(t *testing.T) {
	ctx := context.Background()
	svc, backend, _ := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-1"))

	want := &types.CompletedObject{Location: "loc", Key: "video.mp4", ETag: `"final"`}
	backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id, mock.Anything).Return(want, nil).Once()

	first, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	second, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	backend.AssertNumberOfCalls(t, "CompleteMultipartUpload", 1)
}

func TestCompleteUploadCompletedWithoutResult(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-1"))
	require.NoError(t, store.MarkCompleted(ctx, id, nil))

	_, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	assert.ErrorIs(t, err, types.ErrAlreadyCompleted)
	backend.AssertNotCalled(t, "CompleteMultipartUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteUploadBackendFailure(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-1"))

	backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id, mock.Anything).
		Return(nil, errors.New("InvalidPart: etag mismatch")).Once()

	_, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	assert.ErrorIs(t, err, types.ErrBackend)
	assert.True(t, types.IsRetryable(err))

	got, err := store.Get(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	assert.Equal(t, types.StatusInProgress, got.Status)

	// 修正分段后重试
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-fixed"))
	backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id, types.Parts{{PartNumber: 1, Checksum: "etag-fixed"}}).
		Return(&types.CompletedObject{Location: "loc", Key: "video.mp4"}, nil).Once()
	_, err = svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestCompleteUploadRacedByConcurrentCompletion(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-1"))

	winner := &types.CompletedObject{Location: "loc-winner", Key: "video.mp4"}
	backend.On("CompleteMultipartUpload", mock.Anything, "video.mp4", id, mock.Anything).
		Run(func(mock.Arguments) {
			// 另一个请求先完成了合并
			require.NoError(t, store.MarkCompleted(ctx, id, winner))
		}).
		Return(nil, errors.New("NoSuchUpload")).Once()

	got, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	assert.Equal(t, winner.Location, got.Location)
}

func TestCompleteUploadStoreFailure(t *testing.T) {
	ctx := context.Background()
	svc, backend, store := setupTestService(t, Options{})
	id := startUpload(t, svc, backend, "up-1")
	require.NoError(t, svc.ReportPart(ctx, id, "video.mp4", "alice", 1, "etag-1"))
	require.NoError(t, store.Close())

	_, err := svc.CompleteUpload(ctx, id, "video.mp4", "alice")
	assert.ErrorIs(t, err, types.ErrStoreUnavailable)
	assert.True(t, types.IsRetryable(err))
	backend.AssertNotCalled(t, "CompleteMultipartUpload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
