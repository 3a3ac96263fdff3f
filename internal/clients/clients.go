package clients

import "fmt"

const (
	KindS3    = "s3"
	KindMinio = "minio"
)

// Config 对象存储连接参数
type Config struct {
	Kind      string
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Token     string
	S3Options
}

// New 按 Kind 创建分段上传后端
func New(cfg Config) (MultipartBackend, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	switch cfg.Kind {
	case KindS3, "":
		return NewS3Backend(cfg.AccessKey, cfg.SecretKey, cfg.Token, cfg.Region, cfg.Endpoint, cfg.Bucket, cfg.S3Options)
	case KindMinio:
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("minio backend requires an endpoint")
		}
		return NewMinioBackend(cfg.AccessKey, cfg.SecretKey, cfg.Token, cfg.Region, cfg.Endpoint, cfg.Bucket, cfg.S3Options)
	default:
		return nil, fmt.Errorf("unknown object backend %q", cfg.Kind)
	}
}
