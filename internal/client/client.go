package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
	"github.com/elastic-io/parcel/internal/utils"
	"github.com/mailru/easyjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DefaultChunkSize 默认分段大小
const DefaultChunkSize = 10 * types.MB

// APIError 服务端返回的非 2xx 响应
type APIError struct {
	Status    int
	Code      string
	Message   string
	Retryable bool
}

func (e *APIError) Error() string {
	return fmt.Sprintf("parcel: %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	endpoint  string
	http      *http.Client
	chunkSize int
	username  string
	password  string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithChunkSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// New 创建客户端，默认 transport 带 otelhttp 埋点
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:  endpoint,
		chunkSize: DefaultChunkSize,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) ChunkSize() int {
	return c.chunkSize
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in easyjson.Marshaler, out easyjson.Unmarshaler) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := easyjson.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return easyjson.UnmarshalFromReader(resp.Body, out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var e types.ErrorResponse
	if err := easyjson.UnmarshalFromReader(resp.Body, &e); err != nil {
		apiErr.Code = "Unknown"
		apiErr.Message = resp.Status
		return apiErr
	}
	apiErr.Code = e.Code
	apiErr.Message = e.Error
	apiErr.Retryable = e.Retryable
	return apiErr
}

func (c *Client) StartUpload(ctx context.Context, filename, contentType, ownerID string) (*types.StartUploadResponse, error) {
	var out types.StartUploadResponse
	err := c.do(ctx, http.MethodPost, "/api/start-upload", nil, types.StartUploadRequest{
		Filename:    filename,
		ContentType: contentType,
		OwnerID:     ownerID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SignedURL(ctx context.Context, uploadID, key string, partNumber int) (*types.PartAuthorization, error) {
	q := url.Values{}
	q.Set("upload_id", uploadID)
	q.Set("key", key)
	q.Set("part_number", strconv.Itoa(partNumber))

	var out types.PartAuthorization
	if err := c.do(ctx, http.MethodGet, "/api/get-signed-url", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReportPart(ctx context.Context, req types.ReportPartRequest) error {
	var out types.ReportPartResponse
	if err := c.do(ctx, http.MethodPost, "/api/upload-part", nil, req, &out); err != nil {
		return err
	}
	if !out.Success {
		return fmt.Errorf("report part %d: server did not acknowledge", req.PartNumber)
	}
	return nil
}

func (c *Client) CompleteUpload(ctx context.Context, uploadID, key, ownerID string) (*types.CompleteUploadResponse, error) {
	var out types.CompleteUploadResponse
	err := c.do(ctx, http.MethodPost, "/api/complete-upload", nil, types.CompleteUploadRequest{
		UploadID: uploadID,
		Key:      key,
		OwnerID:  ownerID,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Status(ctx context.Context, uploadID, key, ownerID string) (*types.UploadSession, error) {
	q := url.Values{}
	q.Set("key", key)
	q.Set("user_id", ownerID)

	var out types.UploadSession
	if err := c.do(ctx, http.MethodGet, "/api/uploads/"+url.PathEscape(uploadID), q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// putPart 直接把分段 PUT 到预签名地址，返回去掉引号的 ETag
func (c *Client) putPart(ctx context.Context, signedURL string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.ContentLength = int64(len(data))

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("put part: unexpected status %s", resp.Status)
	}
	etag := utils.TrimETag(resp.Header.Get("ETag"))
	if etag == "" {
		return "", fmt.Errorf("put part: response carries no ETag")
	}
	return etag, nil
}

// Upload 把 r 按分段上传并完成合并。空输入也会上传一个空分段
func (c *Client) Upload(ctx context.Context, r io.Reader, filename, contentType, ownerID string) (*types.CompleteUploadResponse, error) {
	started, err := c.StartUpload(ctx, filename, contentType, ownerID)
	if err != nil {
		return nil, fmt.Errorf("start upload: %w", err)
	}
	log.Logger.Infof("Started upload %s for %s", started.UploadID, started.Key)

	buf := make([]byte, c.chunkSize)
	var total int64
	for partNumber := 1; ; partNumber++ {
		n, rerr := io.ReadFull(r, buf)
		if rerr != nil && rerr != io.EOF && rerr != io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("read part %d: %w", partNumber, rerr)
		}
		if n == 0 && partNumber > 1 {
			break
		}

		auth, err := c.SignedURL(ctx, started.UploadID, started.Key, partNumber)
		if err != nil {
			return nil, fmt.Errorf("sign part %d: %w", partNumber, err)
		}
		etag, err := c.putPart(ctx, auth.SignedURL, buf[:n])
		if err != nil {
			return nil, fmt.Errorf("upload part %d: %w", partNumber, err)
		}
		err = c.ReportPart(ctx, types.ReportPartRequest{
			UploadID:   started.UploadID,
			Key:        started.Key,
			PartNumber: partNumber,
			ETag:       etag,
			OwnerID:    ownerID,
		})
		if err != nil {
			return nil, fmt.Errorf("report part %d: %w", partNumber, err)
		}

		total += int64(n)
		log.Logger.Infof("Uploaded part %d (%d bytes, %d total)", partNumber, n, total)

		if rerr != nil {
			break
		}
	}

	done, err := c.CompleteUpload(ctx, started.UploadID, started.Key, ownerID)
	if err != nil {
		return nil, fmt.Errorf("complete upload: %w", err)
	}
	log.Logger.Infof("Completed upload %s at %s", started.UploadID, done.Location)
	return done, nil
}

// UploadFile 上传本地文件，content type 按扩展名推断
func (c *Client) UploadFile(ctx context.Context, path, ownerID string) (*types.CompleteUploadResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := filepath.Base(path)
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return c.Upload(ctx, f, name, contentType, ownerID)
}
