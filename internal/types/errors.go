package types

import "errors"

var (
	// 可重试
	ErrBackend          = errors.New("object storage backend error")
	ErrStoreUnavailable = errors.New("session store unavailable")

	// 需要客户端修正后再重试
	ErrSessionNotFound   = errors.New("upload session not found")
	ErrNoPartsUploaded   = errors.New("no parts uploaded")
	ErrInvalidPartNumber = errors.New("invalid part number: must be between 1 and 10000")
	ErrAlreadyCompleted  = errors.New("upload session already completed")
	ErrSessionExists     = errors.New("upload session already exists")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrBackend, "BackendError"},
	{ErrStoreUnavailable, "StoreUnavailable"},
	{ErrSessionNotFound, "SessionNotFound"},
	{ErrNoPartsUploaded, "NoPartsUploaded"},
	{ErrInvalidPartNumber, "InvalidPartNumber"},
	{ErrAlreadyCompleted, "AlreadyCompleted"},
	{ErrSessionExists, "SessionExists"},
}

// IsRetryable 后端或存储故障可以原样重试，其余错误需要客户端先修正请求
func IsRetryable(err error) bool {
	return errors.Is(err, ErrBackend) || errors.Is(err, ErrStoreUnavailable)
}

// ErrorCode 返回错误对应的稳定错误码，未知错误返回 "InternalError"
func ErrorCode(err error) string {
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "InternalError"
}
