package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"rill/internal/config"
	"rill/internal/diag"
	"rill/internal/lint"
	"rill/internal/source"
)

// Поднимать при изменении формата cachePayload.
const cacheSchemaVersion uint16 = 1

// Digest keys the disk cache: content hash mixed with the effective
// lint configuration.
type Digest [32]byte

// DiskCache хранит готовые диагностики файла между запусками.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema uint16
	Diags  []diag.Diagnostic
}

// OpenDiskCache initializes a disk cache at the XDG standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	// Подкаталог для удобства очистки руками.
	return filepath.Join(c.dir, "lint", hex.EncodeToString(key[:])+".mp")
}

// Put serializes diagnostics for a key. The write is atomic: a temp
// file is renamed over the target.
func (c *DiskCache) Put(key Digest, diags []diag.Diagnostic) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&cachePayload{
		Schema: cacheSchemaVersion,
		Diags:  diags,
	}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads diagnostics for a key. A schema mismatch reads as a miss.
func (c *DiskCache) Get(key Digest) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return payload.Diags, true, nil
}

// DropAll invalidates the whole cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// cacheKey mixes the file content hash with everything that changes
// lint output: schema, active checks and the diagnostics cap.
func cacheKey(file *source.File, cfg config.Lint, checks []lint.Check) Digest {
	h := sha256.New()

	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], cacheSchemaVersion)
	h.Write(schema[:])
	h.Write(file.Hash[:])

	for _, c := range checks {
		h.Write([]byte(c.Meta().Name))
		h.Write([]byte{0})
	}

	var limit [8]byte
	binary.LittleEndian.PutUint64(limit[:], uint64(cfg.MaxDiagnostics))
	h.Write(limit[:])

	var out Digest
	h.Sum(out[:0])
	return out
}

// remapFile переносит кэшированные спаны на FileID текущего запуска.
func remapFile(d diag.Diagnostic, id source.FileID) diag.Diagnostic {
	d.Primary.File = id
	notes := make([]diag.Note, len(d.Notes))
	for i, n := range d.Notes {
		n.Span.File = id
		notes[i] = n
	}
	d.Notes = notes
	fixes := make([]diag.Fix, len(d.Fixes))
	for i, f := range d.Fixes {
		edits := make([]diag.TextEdit, len(f.Edits))
		for j, e := range f.Edits {
			e.Span.File = id
			edits[j] = e
		}
		f.Edits = edits
		fixes[i] = f
	}
	d.Fixes = fixes
	return d
}
