package types

import "time"

//go:generate easyjson -all api.go
type StartUploadRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	OwnerID     string `json:"user_id"`
}

//go:generate easyjson -all api.go
type StartUploadResponse struct {
	UploadID string `json:"upload_id"`
	Key      string `json:"key"`
}

// PartAuthorization 单个分段的限时上传凭证
//
//go:generate easyjson -all api.go
type PartAuthorization struct {
	SignedURL  string    `json:"signed_url"`
	PartNumber int       `json:"part_number"`
	ExpiresAt  time.Time `json:"expires_at"`
}

//go:generate easyjson -all api.go
type ReportPartRequest struct {
	UploadID   string `json:"upload_id"`
	Key        string `json:"key"`
	PartNumber int    `json:"part_number"`
	ETag       string `json:"etag"`
	OwnerID    string `json:"user_id"`
}

//go:generate easyjson -all api.go
type ReportPartResponse struct {
	Success bool `json:"success"`
}

//go:generate easyjson -all api.go
type CompleteUploadRequest struct {
	UploadID string `json:"upload_id"`
	Key      string `json:"key"`
	OwnerID  string `json:"user_id"`
}

//go:generate easyjson -all api.go
type CompleteUploadResponse struct {
	Message  string `json:"message"`
	Location string `json:"location"`
	Key      string `json:"key"`
}

//go:generate easyjson -all api.go
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Retryable bool   `json:"retryable"`
}

//go:generate easyjson -all api.go
type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}
