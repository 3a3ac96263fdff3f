package types

import (
	"sort"
	"time"
)

const (
	// 分段编号的协议上限，与S3一致
	MinPartNumber = 1
	MaxPartNumber = 10000
)

// Status 上传会话状态，只能向前推进
type Status string

const (
	StatusInitiated  Status = "initiated"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func (s Status) rank() int {
	switch s {
	case StatusInitiated:
		return 1
	case StatusInProgress:
		return 2
	case StatusCompleted:
		return 3
	}
	return 0
}

// Valid 判断状态是否是已知状态
func (s Status) Valid() bool {
	return s.rank() > 0
}

// CanAdvanceTo 判断能否从 s 迁移到 next，停留在原状态也视为合法
func (s Status) CanAdvanceTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s == StatusCompleted {
		return next == StatusCompleted
	}
	return next.rank() >= s.rank()
}

// Part 客户端上报的一个已上传分段
//
//go:generate easyjson -all session.go
type Part struct {
	PartNumber int    `json:"part_number"`
	Checksum   string `json:"etag"`
}

// Parts 按上报顺序排列的分段列表
//
//easyjson:json
type Parts []Part

// CompletedObject 完成合并后后端返回的对象位置
//
//go:generate easyjson -all session.go
type CompletedObject struct {
	Location string `json:"location"`
	Key      string `json:"key"`
	ETag     string `json:"etag,omitempty"`
}

// UploadSession 一次分段上传的持久化记录
//
//go:generate easyjson -all session.go
type UploadSession struct {
	UploadID    string           `json:"upload_id"`
	Key         string           `json:"key"`
	OwnerID     string           `json:"user_id"`
	ContentType string           `json:"content_type,omitempty"`
	Parts       Parts            `json:"parts"`
	Status      Status           `json:"status"`
	Result      *CompletedObject `json:"result,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// NewUploadSession 创建一条处于 initiated 状态的会话记录
func NewUploadSession(uploadID, key, ownerID, contentType string) *UploadSession {
	now := time.Now().UTC()
	return &UploadSession{
		UploadID:    uploadID,
		Key:         key,
		OwnerID:     ownerID,
		ContentType: contentType,
		Parts:       Parts{},
		Status:      StatusInitiated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Owns 判断 (key, owner) 是否与记录匹配
func (s *UploadSession) Owns(key, ownerID string) bool {
	return s.Key == key && s.OwnerID == ownerID
}

// ValidPartNumber 检查分段编号是否在 [1, 10000] 内
func ValidPartNumber(n int) bool {
	return n >= MinPartNumber && n <= MaxPartNumber
}

// Merge 合并一次分段上报：同编号的旧记录被移除，新记录追加到末尾
func (p Parts) Merge(part Part) Parts {
	merged := make(Parts, 0, len(p)+1)
	for _, existing := range p {
		if existing.PartNumber != part.PartNumber {
			merged = append(merged, existing)
		}
	}
	return append(merged, part)
}

// Sorted 返回按分段编号升序排列的副本，S3 要求完成请求中的分段严格升序
func (p Parts) Sorted() Parts {
	sorted := make(Parts, len(p))
	copy(sorted, p)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PartNumber < sorted[j].PartNumber
	})
	return sorted
}
