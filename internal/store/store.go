package store

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// Store 管理数据目录下的 JSON 集合文件，每个集合一个文件。
// 同一集合的写操作串行执行，读操作共享锁。
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

// Dir 返回数据目录
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) lock(collection string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[collection] = l
	}
	return l
}

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// Load 读取集合的全部记录，保持插入顺序。
// 文件不存在视为空集合（首次启动），其余读取/解析失败返回错误。
func Load[T any](s *Store, collection string) ([]T, error) {
	l := s.lock(collection)
	l.RLock()
	defer l.RUnlock()
	return readCollection[T](s.path(collection))
}

// Save 全量覆写集合文件
func Save[T any](s *Store, collection string, records []T) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return writeCollection(s.path(collection), records)
}

// Update 在集合的独占锁内执行完整的读-改-写。
// 并发的变更操作必须经由 Update，否则后写者会覆盖先写者的改动。
func Update[T any](s *Store, collection string, fn func(records []T) ([]T, error)) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := readCollection[T](s.path(collection))
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return writeCollection(s.path(collection), updated)
}

func readCollection[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", filepath.Base(path), err)
	}
	return records, nil
}

// writeCollection 先写临时文件再 rename，单次写入不会留下半截内容
func writeCollection[T any](path string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".collection-*")
	if err != nil {
		return fmt.Errorf("write collection %s: %w", filepath.Base(path), err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write collection %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write collection %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write collection %s: %w", filepath.Base(path), err)
	}
	return nil
}

// NewID 生成紧凑的唯一 ID：纳秒时间戳 + 64 位随机数，base36 编码。
// 时间分量保证跨进程生命周期单调趋势，随机分量保证同一纳秒内不冲突。
func NewID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand 在受支持平台上不会失败；兜底退化为纯时间戳
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	ts := strconv.FormatInt(time.Now().UnixNano(), 36)
	random := new(big.Int).SetBytes(buf[:]).Text(36)
	return ts + random
}
