package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"traitgen/internal/project"
)

// Current schema version - increment when CachedExpansion format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит готовые раскрытия по ключу содержимого на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedExpansion is what a cache entry holds for one input file.
type CachedExpansion struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Path        string
	ContentHash project.Digest
	// Output is the expanded text without the generated-file header.
	Output      []byte
	Items       int
	Invocations int
}

// OpenDiskCache opens (creating if needed) a cache in dir. An empty dir
// selects $XDG_CACHE_HOME/<app> or ~/.cache/<app>.
func OpenDiskCache(dir, app string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := key.String()
	// Для удобства чистки: подкаталог по первым двум символам.
	return filepath.Join(c.dir, "exp", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes an entry to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *CachedExpansion) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = diskCacheSchemaVersion
	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после удачного Rename временного файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads an entry. A missing entry or one written with another schema
// reports ok=false without error.
func (c *DiskCache) Get(key project.Digest, out *CachedExpansion) (ok bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}
