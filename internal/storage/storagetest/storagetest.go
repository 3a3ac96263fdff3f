// Package storagetest 提供所有会话存储后端共用的行为测试
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/elastic-io/parcel/internal/storage"
	"github.com/google/uuid"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run 对 newStore 返回的存储执行完整的行为测试，每个子测试使用独立的 upload_id
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("CreateAndGet", func(t *testing.T) { testCreateAndGet(t, newStore(t)) })
	t.Run("CreateDuplicate", func(t *testing.T) { testCreateDuplicate(t, newStore(t)) })
	t.Run("OwnerScope", func(t *testing.T) { testOwnerScope(t, newStore(t)) })
	t.Run("AppendPart", func(t *testing.T) { testAppendPart(t, newStore(t)) })
	t.Run("ReplacePart", func(t *testing.T) { testReplacePart(t, newStore(t)) })
	t.Run("MarkCompleted", func(t *testing.T) { testMarkCompleted(t, newStore(t)) })
	t.Run("ConcurrentAppend", func(t *testing.T) { testConcurrentAppend(t, newStore(t)) })
	t.Run("List", func(t *testing.T) { testList(t, newStore(t)) })
}

// 外部后端（redis、mysql）跨多次运行保留数据，用 runID 隔离
var runID = uuid.NewString()[:8]

var seq struct {
	sync.Mutex
	n int
}

func uploadID(t *testing.T) string {
	seq.Lock()
	defer seq.Unlock()
	seq.n++
	return fmt.Sprintf("%s-%s-%d", runID, t.Name(), seq.n)
}

func testCreateAndGet(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)

	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "video.mp4", "alice", "video/mp4")))

	got, err := s.Get(ctx, id, "video.mp4", "alice")
	require.NoError(t, err)
	assert.Equal(t, id, got.UploadID)
	assert.Equal(t, "video/mp4", got.ContentType)
	assert.Equal(t, types.StatusInitiated, got.Status)
	assert.Empty(t, got.Parts)
	assert.NoError(t, s.Ping(ctx))
}

func testCreateDuplicate(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)

	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "a", "alice", "")))
	err := s.Create(ctx, types.NewUploadSession(id, "b", "bob", ""))
	assert.ErrorIs(t, err, types.ErrSessionExists)

	got, err := s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.OwnerID, "原记录不应被覆盖")
}

func testOwnerScope(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)
	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "a", "alice", "")))

	_, err := s.Get(ctx, id, "a", "mallory")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	_, err = s.Get(ctx, id, "other-key", "alice")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	_, err = s.Get(ctx, "missing-"+id, "a", "alice")
	assert.ErrorIs(t, err, types.ErrSessionNotFound)

	err = s.AppendPart(ctx, id, "a", "mallory", types.Part{PartNumber: 1, Checksum: "x"})
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
	err = s.AppendPart(ctx, "missing-"+id, "a", "alice", types.Part{PartNumber: 1, Checksum: "x"})
	assert.ErrorIs(t, err, types.ErrSessionNotFound)

	got, err := s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	assert.Empty(t, got.Parts, "失败的上报不应修改记录")
	assert.Equal(t, types.StatusInitiated, got.Status)
}

func testAppendPart(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)
	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "a", "alice", "")))

	require.NoError(t, s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 2, Checksum: "b"}))
	require.NoError(t, s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 1, Checksum: "a"}))

	got, err := s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	assert.Equal(t, types.StatusInProgress, got.Status)
	assert.Equal(t, types.Parts{{PartNumber: 2, Checksum: "b"}, {PartNumber: 1, Checksum: "a"}}, got.Parts)
}

func testReplacePart(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)
	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "a", "alice", "")))

	require.NoError(t, s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 1, Checksum: "old"}))
	require.NoError(t, s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 2, Checksum: "b"}))
	require.NoError(t, s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 1, Checksum: "new"}))

	got, err := s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	require.Len(t, got.Parts, 2)
	seen := map[int]string{}
	for _, p := range got.Parts {
		_, dup := seen[p.PartNumber]
		assert.False(t, dup, "part %d appears twice", p.PartNumber)
		seen[p.PartNumber] = p.Checksum
	}
	assert.Equal(t, "new", seen[1])
}

func testMarkCompleted(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)
	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "a", "alice", "")))
	require.NoError(t, s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 1, Checksum: "x"}))

	result := &types.CompletedObject{Location: "https://bucket.example/a", Key: "a", ETag: "\"e-1\""}
	require.NoError(t, s.MarkCompleted(ctx, id, result))
	require.NoError(t, s.MarkCompleted(ctx, id, &types.CompletedObject{Location: "other"}), "重复标记不报错")

	got, err := s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, got.Status)
	require.NotNil(t, got.Result)
	assert.Equal(t, result.Location, got.Result.Location)

	err = s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: 2, Checksum: "y"})
	assert.ErrorIs(t, err, types.ErrAlreadyCompleted)

	got, err = s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	assert.Equal(t, types.StatusCompleted, got.Status, "状态不能回退")

	err = s.MarkCompleted(ctx, "missing-"+id, result)
	assert.ErrorIs(t, err, types.ErrSessionNotFound)
}

func testConcurrentAppend(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	id := uploadID(t)
	require.NoError(t, s.Create(ctx, types.NewUploadSession(id, "a", "alice", "")))

	const n = 16
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 1; i <= n; i++ {
		wg.Add(1)
		go func(pn int) {
			defer wg.Done()
			errs <- s.AppendPart(ctx, id, "a", "alice", types.Part{PartNumber: pn, Checksum: fmt.Sprintf("etag-%d", pn)})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := s.Get(ctx, id, "a", "alice")
	require.NoError(t, err)
	assert.Len(t, got.Parts, n, "并发追加不能丢失更新")
}

func testList(t *testing.T, s storage.Storage) {
	ctx := context.Background()
	a, b := uploadID(t), uploadID(t)
	require.NoError(t, s.Create(ctx, types.NewUploadSession(a, "a", "alice", "")))
	require.NoError(t, s.Create(ctx, types.NewUploadSession(b, "b", "bob", "")))

	sessions, err := s.List(ctx)
	require.NoError(t, err)
	ids := map[string]bool{}
	for _, sess := range sessions {
		ids[sess.UploadID] = true
	}
	assert.True(t, ids[a])
	assert.True(t, ids[b])
}
