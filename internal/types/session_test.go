package types

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartsMerge(t *testing.T) {
	parts := Parts{}
	parts = parts.Merge(Part{PartNumber: 2, Checksum: "b"})
	parts = parts.Merge(Part{PartNumber: 1, Checksum: "a"})
	assert.Equal(t, Parts{{2, "b"}, {1, "a"}}, parts, "保持上报顺序")

	t.Run("同编号覆盖", func(t *testing.T) {
		merged := parts.Merge(Part{PartNumber: 2, Checksum: "b2"})
		assert.Equal(t, Parts{{1, "a"}, {2, "b2"}}, merged)
		// 原切片不被修改
		assert.Equal(t, Parts{{2, "b"}, {1, "a"}}, parts)
	})

	t.Run("重复上报相同校验值", func(t *testing.T) {
		merged := parts.Merge(Part{PartNumber: 1, Checksum: "a"})
		assert.Len(t, merged, 2)
	})
}

func TestPartsSorted(t *testing.T) {
	parts := Parts{{3, "c"}, {10, "j"}, {1, "a"}, {2, "b"}}
	sorted := parts.Sorted()

	want := []int{1, 2, 3, 10}
	require.Len(t, sorted, len(want))
	for i, n := range want {
		assert.Equal(t, n, sorted[i].PartNumber)
	}
	assert.Equal(t, 3, parts[0].PartNumber, "Sorted 不应修改原切片")
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusInitiated, StatusInProgress, true},
		{StatusInitiated, StatusCompleted, true},
		{StatusInProgress, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusInitiated, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCompleted, true},
		{StatusInitiated, Status("aborted"), false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanAdvanceTo(tt.to))
		})
	}
}

func TestValidPartNumber(t *testing.T) {
	assert.False(t, ValidPartNumber(0))
	assert.True(t, ValidPartNumber(1))
	assert.True(t, ValidPartNumber(10000))
	assert.False(t, ValidPartNumber(10001))
	assert.False(t, ValidPartNumber(-1))
}

func TestUploadSessionCodec(t *testing.T) {
	s := NewUploadSession("u-1", "movie.mp4", "alice", "video/mp4")
	s.Parts = s.Parts.Merge(Part{PartNumber: 1, Checksum: "\"abc\""})
	s.Status = StatusCompleted
	s.Result = &CompletedObject{Location: "https://bucket/movie.mp4", Key: "movie.mp4"}

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"user_id":"alice"`)
	assert.Contains(t, string(data), `"parts":[{"part_number":1,"etag":"\"abc\""}]`)

	decoded := &UploadSession{}
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, s.UploadID, decoded.UploadID)
	assert.Equal(t, s.Parts, decoded.Parts)
	assert.Equal(t, s.Result, decoded.Result)
	assert.True(t, s.CreatedAt.Equal(decoded.CreatedAt))

	t.Run("空分段列表", func(t *testing.T) {
		fresh := NewUploadSession("u-2", "k", "bob", "")
		data, err := fresh.MarshalJSON()
		require.NoError(t, err)
		assert.Contains(t, string(data), `"parts":[]`)
		assert.NotContains(t, string(data), "result")
	})

	t.Run("非法输入", func(t *testing.T) {
		err := (&UploadSession{}).UnmarshalJSON([]byte(`{"parts":`))
		assert.Error(t, err)
	})
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("%w: complete multipart upload: %w", ErrBackend, fmt.Errorf("InvalidPart"))
	assert.True(t, IsRetryable(wrapped))
	assert.Equal(t, "BackendError", ErrorCode(wrapped))

	assert.True(t, IsRetryable(fmt.Errorf("%w: timeout", ErrStoreUnavailable)))
	assert.False(t, IsRetryable(ErrSessionNotFound))
	assert.False(t, IsRetryable(ErrInvalidPartNumber))
	assert.Equal(t, "NoPartsUploaded", ErrorCode(ErrNoPartsUploaded))
	assert.Equal(t, "InternalError", ErrorCode(fmt.Errorf("boom")))
}
