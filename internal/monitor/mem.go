package monitor

import (
	"context"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/elastic-io/parcel/internal/log"
	"github.com/elastic-io/parcel/internal/types"
)

// MemoryStats 一次采样结果，单位 MiB
type MemoryStats struct {
	Alloc      uint64
	TotalAlloc uint64
	Sys        uint64
	NumGC      uint32
}

func sample() (MemoryStats, uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemoryStats{
		Alloc:      m.Alloc / types.MB,
		TotalAlloc: m.TotalAlloc / types.MB,
		Sys:        m.Sys / types.MB,
		NumGC:      m.NumGC,
	}, m.Alloc
}

// check 记录一次内存使用，已分配字节数超过 limit 时主动 GC 并归还内存。limit 为 0 表示不设上限
func check(limit uint64) (MemoryStats, bool) {
	s, alloc := sample()
	log.Logger.Infof("Memory usage: Alloc=%v MiB, TotalAlloc=%v MiB, Sys=%v MiB, NumGC=%v",
		s.Alloc, s.TotalAlloc, s.Sys, s.NumGC)

	if limit == 0 || alloc <= limit {
		return s, false
	}
	log.Logger.Warn("High memory usage detected, triggering GC")
	runtime.GC()
	debug.FreeOSMemory()
	return s, true
}

// MemoryUsage 每隔 interval 采样一次，直到 ctx 取消
func MemoryUsage(ctx context.Context, interval time.Duration, limit uint64) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check(limit)
		}
	}
}
