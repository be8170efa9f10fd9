package runner

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"liquidlint/internal/diag"
	"liquidlint/internal/version"
)

// bump when cachedIssue changes
const cacheSchemaVersion uint16 = 1

// DiskCache keeps per-file lint results between runs.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachedIssue is the on-disk form of diag.Issue; File is restored on read.
type cachedIssue struct {
	Linter   string `msgpack:"l"`
	Line     int32  `msgpack:"n"`
	Message  string `msgpack:"m"`
	Severity uint8  `msgpack:"s"`
}

type cachePayload struct {
	Schema uint16        `msgpack:"schema"`
	Issues []cachedIssue `msgpack:"issues"`
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/<app> (~/.cache/<app>).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens the cache in dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir is the cache directory.
func (c *DiskCache) Dir() string { return c.dir }

// CacheKey identifies the results of linting content at path with the given
// configuration digest and checks.
func CacheKey(path string, content, cfgDigest [32]byte, checks []string) [32]byte {
	h := sha256.New()
	h.Write([]byte(version.Version))
	h.Write([]byte{0})
	h.Write([]byte(path))
	h.Write([]byte{0})
	h.Write(content[:])
	h.Write(cfgDigest[:])
	for _, name := range checks {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

func (c *DiskCache) pathFor(key [32]byte) string {
	// подкаталог по первым двум символам, чтобы не держать всё в одной папке
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put stores issues under key.
func (c *DiskCache) Put(key [32]byte, issues []diag.Issue) (err error) {
	if c == nil {
		return nil
	}
	payload := cachePayload{Schema: cacheSchemaVersion, Issues: make([]cachedIssue, 0, len(issues))}
	for _, it := range issues {
		line, convErr := safecast.Conv[int32](it.Line)
		if convErr != nil {
			return convErr
		}
		payload.Issues = append(payload.Issues, cachedIssue{
			Linter:   it.Linter,
			Line:     line,
			Message:  it.Message,
			Severity: uint8(it.Severity),
		})
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
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(f.Name(), p)
}

// Get loads issues stored under key, attributing them to file.
// Entries written with another schema are treated as misses.
func (c *DiskCache) Get(key [32]byte, file string) ([]diag.Issue, bool, error) {
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
	issues := make([]diag.Issue, 0, len(payload.Issues))
	for _, ci := range payload.Issues {
		issues = append(issues, diag.Issue{
			Linter:   ci.Linter,
			File:     file,
			Line:     int(ci.Line),
			Message:  ci.Message,
			Severity: diag.Severity(ci.Severity),
		})
	}
	return issues, true, nil
}

// DropAll removes every cached result.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}
