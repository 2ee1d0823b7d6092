// Package cache 转译结果缓存
//
// 用于批量构建时跳过未变化的文件。
//
// 功能：
// 1. 源码内容哈希（含转译选项指纹）计算和变化检测
// 2. 生成的 Rust 代码存取
// 3. 缓存目录与索引管理
// 4. LRU 清理策略
package cache

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/segmentio/encoding/json"
	"golang.org/x/crypto/blake2b"
)

const (
	// CacheVersion 缓存版本，版本不匹配时清空缓存
	CacheVersion = "1"

	// IndexFile 索引文件名
	IndexFile = "index.json"

	// MaxCacheEntries 最大缓存条目数
	MaxCacheEntries = 1000
)

// CacheManager 缓存管理器
//
// 可在多个 goroutine 中同时使用。
type CacheManager struct {
	mu       sync.RWMutex
	cacheDir string
	index    *CacheIndex
	enabled  bool
	dirty    bool
}

// CacheIndex 缓存索引
type CacheIndex struct {
	Version   string                 `json:"version"`
	Entries   map[string]*CacheEntry `json:"entries"`
	TotalSize int64                  `json:"total_size"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// CacheEntry 缓存条目
type CacheEntry struct {
	SourcePath  string    `json:"source_path"`
	Hash        string    `json:"hash"`
	CacheFile   string    `json:"cache_file"`
	Size        int64     `json:"size"`
	StoredAt    time.Time `json:"stored_at"`
	AccessedAt  time.Time `json:"accessed_at"`
	AccessCount int       `json:"access_count"`
}

// CacheStats 缓存统计信息
type CacheStats struct {
	TotalEntries int
	TotalSize    int64
	CacheDir     string
	UpdatedAt    time.Time
}

// NewCacheManager 创建缓存管理器，cacheDir 不存在时创建
func NewCacheManager(cacheDir string) (*CacheManager, error) {
	cm := &CacheManager{
		cacheDir: cacheDir,
		enabled:  true,
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	// 索引缺失或损坏时从空索引开始
	if err := cm.loadIndex(); err != nil {
		cm.index = newIndex()
	}

	if cm.index.Version != CacheVersion || cm.index.Entries == nil {
		if err := cm.Clear(); err != nil {
			return nil, err
		}
	}

	return cm, nil
}

func newIndex() *CacheIndex {
	return &CacheIndex{
		Version: CacheVersion,
		Entries: make(map[string]*CacheEntry),
	}
}

// Enable 启用缓存
func (cm *CacheManager) Enable() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.enabled = true
}

// Disable 禁用缓存，Lookup 总是未命中，Store 不写入
func (cm *CacheManager) Disable() {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.enabled = false
}

// IsEnabled 检查是否启用
func (cm *CacheManager) IsEnabled() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.enabled
}

// Lookup 查找源码对应的转译结果
//
// 内容或指纹变化时条目失效并返回未命中。
func (cm *CacheManager) Lookup(sourcePath string, source []byte, fingerprint string) (string, bool) {
	if !cm.IsEnabled() {
		return "", false
	}
	hash := ContentHash(source, fingerprint)

	cm.mu.Lock()
	defer cm.mu.Unlock()

	entry, ok := cm.index.Entries[sourcePath]
	if !ok {
		return "", false
	}
	if entry.Hash != hash {
		cm.removeEntryUnsafe(sourcePath)
		return "", false
	}

	data, err := os.ReadFile(entry.CacheFile)
	if err != nil {
		cm.removeEntryUnsafe(sourcePath)
		return "", false
	}

	entry.AccessedAt = time.Now()
	entry.AccessCount++
	cm.dirty = true

	return string(data), true
}

// Store 保存转译结果，索引在 Save 时写盘
func (cm *CacheManager) Store(sourcePath string, source []byte, fingerprint, output string) error {
	if !cm.IsEnabled() {
		return nil
	}
	hash := ContentHash(source, fingerprint)

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.removeEntryUnsafe(sourcePath)

	cacheFile := cm.cacheFileName(sourcePath, hash)
	if err := os.WriteFile(cacheFile, []byte(output), 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	now := time.Now()
	entry := &CacheEntry{
		SourcePath:  sourcePath,
		Hash:        hash,
		CacheFile:   cacheFile,
		Size:        int64(len(output)),
		StoredAt:    now,
		AccessedAt:  now,
		AccessCount: 1,
	}
	cm.index.Entries[sourcePath] = entry
	cm.index.TotalSize += entry.Size
	cm.index.UpdatedAt = now
	cm.dirty = true

	if len(cm.index.Entries) > MaxCacheEntries {
		cm.evictLRU(len(cm.index.Entries) - MaxCacheEntries)
	}
	return nil
}

// Invalidate 使缓存条目失效
func (cm *CacheManager) Invalidate(sourcePath string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.removeEntryUnsafe(sourcePath)
}

// Clear 清空所有缓存
func (cm *CacheManager) Clear() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	entries, err := os.ReadDir(cm.cacheDir)
	if err == nil {
		for _, entry := range entries {
			if !entry.IsDir() && filepath.Ext(entry.Name()) == ".rs" {
				os.Remove(filepath.Join(cm.cacheDir, entry.Name()))
			}
		}
	}

	cm.index = newIndex()
	return cm.saveIndex()
}

// Save 把有变化的索引写回磁盘
func (cm *CacheManager) Save() error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	if !cm.dirty {
		return nil
	}
	return cm.saveIndex()
}

// Stats 获取缓存统计
func (cm *CacheManager) Stats() CacheStats {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	return CacheStats{
		TotalEntries: len(cm.index.Entries),
		TotalSize:    cm.index.TotalSize,
		CacheDir:     cm.cacheDir,
		UpdatedAt:    cm.index.UpdatedAt,
	}
}

// ContentHash 源码与选项指纹的 blake2b-256 哈希
func ContentHash(source []byte, fingerprint string) string {
	h, _ := blake2b.New256(nil)
	h.Write(source)
	h.Write([]byte{0})
	h.Write([]byte(fingerprint))
	return hex.EncodeToString(h.Sum(nil))
}

// ============================================================================
// 内部方法
// ============================================================================

func (cm *CacheManager) loadIndex() error {
	data, err := os.ReadFile(filepath.Join(cm.cacheDir, IndexFile))
	if err != nil {
		return err
	}

	index := &CacheIndex{}
	if err := json.Unmarshal(data, index); err != nil {
		return err
	}
	cm.index = index
	return nil
}

func (cm *CacheManager) saveIndex() error {
	data, err := json.MarshalIndent(cm.index, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(cm.cacheDir, IndexFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write cache index: %w", err)
	}
	cm.dirty = false
	return nil
}

// cacheFileName 路径哈希与内容哈希组合成缓存文件名
func (cm *CacheManager) cacheFileName(sourcePath, hash string) string {
	pathHash := blake2b.Sum256([]byte(sourcePath))
	name := hex.EncodeToString(pathHash[:8]) + "_" + hash[:16] + ".rs"
	return filepath.Join(cm.cacheDir, name)
}

// removeEntryUnsafe 删除缓存条目（不加锁）
func (cm *CacheManager) removeEntryUnsafe(sourcePath string) {
	entry, ok := cm.index.Entries[sourcePath]
	if !ok {
		return
	}

	os.Remove(entry.CacheFile)

	cm.index.TotalSize -= entry.Size
	delete(cm.index.Entries, sourcePath)
	cm.dirty = true
}

// evictLRU 删除最久未访问的 count 个条目
func (cm *CacheManager) evictLRU(count int) {
	entries := make([]*CacheEntry, 0, len(cm.index.Entries))
	for _, entry := range cm.index.Entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AccessedAt.Before(entries[j].AccessedAt)
	})

	for i := 0; i < count && i < len(entries); i++ {
		cm.removeEntryUnsafe(entries[i].SourcePath)
	}
}
