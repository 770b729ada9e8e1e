package store

import (
	"os"
	"sync"
	"time"

	"github.com/MaximilianIsing/PathPal/logger"
)

// DefaultCacheTTL 数据集快照的默认有效期
const DefaultCacheTTL = 5 * time.Minute

// DatasetCache 只读数据集的内存快照，带固定有效期。
// 首次访问或快照过期时同步整体重载，除此之外没有任何失效机制。
// 重载失败时快照为空但时间戳照常更新，避免对缺失文件的反复重读。
type DatasetCache struct {
	path string
	ttl  time.Duration

	mu       sync.Mutex
	loaded   bool
	loadedAt time.Time
	snapshot []map[string]string
}

// NewDatasetCache 创建数据集缓存，ttl不为正时使用默认值
func NewDatasetCache(path string, ttl time.Duration) *DatasetCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &DatasetCache{path: path, ttl: ttl}
}

// Get 返回当前快照，now由调用方传入以便测试控制时间
func (c *DatasetCache) Get(now time.Time) []map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded || now.Sub(c.loadedAt) > c.ttl {
		c.reload(now)
	}
	return c.snapshot
}

// reload 重新读取数据集文件并替换快照
func (c *DatasetCache) reload(now time.Time) {
	c.loaded = true
	c.loadedAt = now

	data, err := os.ReadFile(c.path)
	if err != nil {
		logger.Warn("读取数据集文件失败，使用空快照", "path", c.path, "error", err)
		c.snapshot = nil
		return
	}

	rows := DecodeRows(string(data))
	if len(rows) < 2 {
		c.snapshot = nil
		return
	}

	header := rows[0]
	snapshot := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(header) {
			continue
		}
		rec := make(map[string]string, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}
		snapshot = append(snapshot, rec)
	}

	c.snapshot = snapshot
	logger.Info("数据集快照已加载", "path", c.path, "rows", len(snapshot))
}
