package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"slang/internal/diag"
	"slang/internal/project"
	"slang/internal/source"
)

// diskCacheSchemaVersion is bumped whenever DiskPayload changes shape.
const diskCacheSchemaVersion uint16 = 1

// DiskCache keeps one msgpack file of diagnostics per cache key under
// <dir>/diags. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the record of one file's diagnostics. Spans are stored as
// offsets; the file ID is reattached on load.
type DiskPayload struct {
	Schema      uint16             `msgpack:"v"`
	Path        string             `msgpack:"path"`
	Stage       string             `msgpack:"stage"`
	ContentHash project.Digest     `msgpack:"hash"`
	Diagnostics []CachedDiagnostic `msgpack:"diags"`
}

type CachedDiagnostic struct {
	Severity uint8        `msgpack:"sev"`
	Code     uint16       `msgpack:"code"`
	Message  string       `msgpack:"msg"`
	Start    uint32       `msgpack:"s"`
	End      uint32       `msgpack:"e"`
	Notes    []CachedNote `msgpack:"notes,omitempty"`
}

type CachedNote struct {
	Start uint32 `msgpack:"s"`
	End   uint32 `msgpack:"e"`
	Msg   string `msgpack:"msg"`
}

// OpenDiskCache places the cache under the user cache directory
// ($XDG_CACHE_HOME or its platform equivalent).
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, fmt.Errorf("locate cache dir: %w", err)
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache uses dir as the cache root, creating it when needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) entriesDir() string { return filepath.Join(c.dir, "diags") }

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.entriesDir(), key.Short()[:2], key.String()+".mp")
}

// Put writes payload atomically: readers see either the old entry or the
// new one, never a partial file.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	target := c.pathFor(key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	if cerr := tmp.Close(); werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), target)
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
	}
	return werr
}

// Get fills out and reports whether the entry existed.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	data, err := os.ReadFile(c.pathFor(key))
	c.mu.RUnlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

// DropAll removes every entry. The directory is moved aside first so a
// concurrent reader never walks a half-deleted tree.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	trash := fmt.Sprintf("%s.drop-%d", c.entriesDir(), time.Now().UnixNano())
	if err := os.Rename(c.entriesDir(), trash); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(trash)
}

// lookup returns a fresh bag rebuilt from the cache. Corrupt or stale
// entries count as misses.
func (c *DiskCache) lookup(file *source.File, opts Options) (*diag.Bag, bool) {
	var payload DiskPayload
	ok, err := c.Get(cacheKey(file, opts), &payload)
	if err != nil || !ok {
		return nil, false
	}
	if payload.Schema != diskCacheSchemaVersion || payload.ContentHash != project.Digest(file.Hash) {
		return nil, false
	}
	return payloadToBag(&payload, file.ID, opts.MaxDiagnostics), true
}

// store пишет в кэш молча: ошибка записи кэша не ошибка диагностики.
func (c *DiskCache) store(file *source.File, opts Options, bag *diag.Bag) {
	_ = c.Put(cacheKey(file, opts), bagToPayload(file, opts, bag)) //nolint:errcheck
}

func bagToPayload(file *source.File, opts Options, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        file.Path,
		Stage:       string(stageOrDefault(opts.Stage)),
		ContentHash: project.Digest(file.Hash),
		Diagnostics: make([]CachedDiagnostic, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
		}
		for _, n := range d.Notes {
			cd.Notes = append(cd.Notes, CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg})
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

func payloadToBag(payload *DiskPayload, fileID source.FileID, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code),
			source.Span{File: fileID, Start: cd.Start, End: cd.End}, cd.Message)
		for _, n := range cd.Notes {
			d = d.WithNote(source.Span{File: fileID, Start: n.Start, End: n.End}, n.Msg)
		}
		bag.Add(d)
	}
	return bag
}

func stageOrDefault(s Stage) Stage {
	if s == "" {
		return StageSema
	}
	return s
}
