package utils

import (
	"encoding/base32"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/google/uuid"
)

const (
	HEX          = "hex"
	BASE32       = "base32"
	ALPHANUMERIC = "alphanumeric"
)

func UID(style string, length int) string {
	uid := uuid.New()

	switch style {
	case HEX:
		// 十六进制风格
		noDash := strings.ReplaceAll(uid.String(), "-", "")
		if len(noDash) >= length {
			return noDash[:length]
		}
		return noDash

	case BASE32:
		encoded := base32.StdEncoding.EncodeToString(uid[:])
		clean := strings.ToLower(strings.TrimRight(encoded, "="))
		if len(clean) >= length {
			return clean[:length]
		}
		return clean

	case ALPHANUMERIC:
		noDash := strings.ReplaceAll(uid.String(), "-", "")
		var result strings.Builder
		for _, char := range noDash {
			if (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9') {
				result.WriteRune(char)
				if result.Len() >= length {
					break
				}
			}
		}
		return result.String()

	default:
		s := uid.String()
		if len(s) > length {
			return s[:length]
		}
		return s
	}
}

// ParseSize 解析 10M、512k 这类大小，unit 在 s 不带单位时生效
func ParseSize(s, unit string) (int, error) {
	sz := strings.TrimRight(s, "gGmMkK")
	if len(sz) == 0 {
		return -1, fmt.Errorf("%q:can't parse as num[gGmMkK]:%w", s, strconv.ErrSyntax)
	}
	amt, err := strconv.ParseUint(sz, 0, 0)
	if err != nil {
		return -1, err
	}
	if len(s) > len(sz) {
		unit = s[len(sz):]
	}
	switch unit {
	case "G", "g":
		return int(amt) << 30, nil
	case "M", "m":
		return int(amt) << 20, nil
	case "K", "k":
		return int(amt) << 10, nil
	case "":
		return int(amt), nil
	}
	return -1, fmt.Errorf("can not parse %q as num[gGmMkK]:%w", s, strconv.ErrSyntax)
}

func MustParseSize(s string) int {
	res, err := ParseSize(s, "")
	if err != nil {
		panic(err)
	}
	return res
}

func FileExist(file string) bool {
	_, err := os.Stat(file)
	if err == nil {
		return true
	} else if os.IsNotExist(err) {
		return false
	}
	panic(err)
}

func FindKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// TrimETag 去掉 ETag 两侧的引号，存储服务返回的 ETag 带引号
func TrimETag(etag string) string {
	return strings.Trim(strings.TrimSpace(etag), `"`)
}

func WritePidFile(path string, pid int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(pid)), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func ReadPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid pid file %s: %w", path, err)
	}
	return pid, nil
}

func SafeGo(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Logger.Error(fmt.Errorf("goroutine panic: %v", r), " goroutine panic")
			}
		}()
		fn()
	}()
}
