package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 模拟的 parcel 服务，同时充当预签名地址的对象存储
type fakeServer struct {
	mu          sync.Mutex
	srv         *httptest.Server
	contentType string
	blobs       map[int]string
	reported    []types.ReportPartRequest
	completed   bool
	auth        string
}

func newFakeServer(t *testing.T) *fakeServer {
	f := &fakeServer{blobs: map[int]string{}}
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/start-upload", func(w http.ResponseWriter, r *http.Request) {
		var req types.StartUploadRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Filename == "" {
			writeErr(w, http.StatusBadRequest, "InvalidRequest", "filename is required", false)
			return
		}
		f.mu.Lock()
		f.contentType = req.ContentType
		f.auth = r.Header.Get("Authorization")
		f.mu.Unlock()
		writeJSON(w, types.StartUploadResponse{UploadID: "up-1", Key: req.Filename})
	})

	mux.HandleFunc("GET /api/get-signed-url", func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(r.URL.Query().Get("part_number"))
		if err != nil {
			writeErr(w, http.StatusBadRequest, "InvalidRequest", "bad part_number", false)
			return
		}
		writeJSON(w, types.PartAuthorization{
			SignedURL:  fmt.Sprintf("%s/blob/%d?X-Amz-Signature=sig", f.srv.URL, n),
			PartNumber: n,
			ExpiresAt:  time.Now().Add(time.Hour),
		})
	})

	mux.HandleFunc("PUT /blob/{n}", func(w http.ResponseWriter, r *http.Request) {
		n, _ := strconv.Atoi(r.PathValue("n"))
		data, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.blobs[n] = string(data)
		f.mu.Unlock()
		w.Header().Set("ETag", fmt.Sprintf(`"etag-%d"`, n))
	})

	mux.HandleFunc("POST /api/upload-part", func(w http.ResponseWriter, r *http.Request) {
		var req types.ReportPartRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.reported = append(f.reported, req)
		f.mu.Unlock()
		writeJSON(w, types.ReportPartResponse{Success: true})
	})

	mux.HandleFunc("POST /api/complete-upload", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if len(f.reported) == 0 {
			writeErr(w, http.StatusConflict, "NoPartsUploaded", "no parts uploaded", false)
			return
		}
		f.completed = true
		writeJSON(w, types.CompleteUploadResponse{
			Message:  "Upload completed successfully",
			Location: "https://bucket.example.com/" + f.reported[0].Key,
			Key:      f.reported[0].Key,
		})
	})

	mux.HandleFunc("GET /api/uploads/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "up-1" {
			writeErr(w, http.StatusNotFound, "SessionNotFound", "upload session not found", false)
			return
		}
		writeJSON(w, types.UploadSession{
			UploadID: "up-1",
			Key:      r.URL.Query().Get("key"),
			OwnerID:  r.URL.Query().Get("user_id"),
			Status:   types.StatusInProgress,
		})
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, code, msg string, retryable bool) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: code, Retryable: retryable})
}

func TestUpload(t *testing.T) {
	log.Init("", "debug")
	f := newFakeServer(t)
	c := New(f.srv.URL, WithChunkSize(4))

	done, err := c.Upload(context.Background(), strings.NewReader("abcdefghij"), "a.txt", "text/plain", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", done.Key)
	assert.Equal(t, "https://bucket.example.com/a.txt", done.Location)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.True(t, f.completed)
	assert.Equal(t, "text/plain", f.contentType)
	assert.Equal(t, map[int]string{1: "abcd", 2: "efgh", 3: "ij"}, f.blobs)
	require.Len(t, f.reported, 3)
	for i, p := range f.reported {
		assert.Equal(t, i+1, p.PartNumber)
		assert.Equal(t, fmt.Sprintf("etag-%d", i+1), p.ETag)
		assert.Equal(t, "user-1", p.OwnerID)
		assert.Equal(t, "up-1", p.UploadID)
	}
}

func TestUploadExactChunks(t *testing.T) {
	log.Init("", "debug")
	f := newFakeServer(t)
	c := New(f.srv.URL, WithChunkSize(4))

	_, err := c.Upload(context.Background(), strings.NewReader("abcdefgh"), "b.bin", "", "user-1")
	require.NoError(t, err)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Len(t, f.reported, 2)
}

func TestUploadEmpty(t *testing.T) {
	log.Init("", "debug")
	f := newFakeServer(t)
	c := New(f.srv.URL)

	_, err := c.Upload(context.Background(), strings.NewReader(""), "empty.bin", "", "user-1")
	require.NoError(t, err)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, map[int]string{1: ""}, f.blobs)
	assert.Len(t, f.reported, 1)
}

func TestUploadFile(t *testing.T) {
	log.Init("", "debug")
	f := newFakeServer(t)
	c := New(f.srv.URL, WithChunkSize(1024), WithBasicAuth("admin", "secret"))

	path := filepath.Join(t.TempDir(), "notes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"k":1}`), 0o644))

	done, err := c.UploadFile(context.Background(), path, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "notes.json", done.Key)

	f.mu.Lock()
	defer f.mu.Unlock()
	assert.Equal(t, "application/json", f.contentType)
	assert.True(t, strings.HasPrefix(f.auth, "Basic "))

	_, err = c.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing"), "user-1")
	assert.Error(t, err)
}

func TestAPIError(t *testing.T) {
	log.Init("", "debug")
	f := newFakeServer(t)
	c := New(f.srv.URL)

	_, err := c.CompleteUpload(context.Background(), "up-1", "a.txt", "user-1")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "NoPartsUploaded", apiErr.Code)
	assert.False(t, apiErr.Retryable)

	_, err = c.Status(context.Background(), "nope", "a.txt", "user-1")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	session, err := c.Status(context.Background(), "up-1", "a.txt", "user-1")
	require.NoError(t, err)
	assert.Equal(t, types.StatusInProgress, session.Status)
	assert.Equal(t, "user-1", session.OwnerID)
}
