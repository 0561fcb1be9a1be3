package source

import (
	"crypto/sha256"
	"fmt"
	"os"

	"fortio.org/safecast"
)

// FileSet owns every loaded file. Re-adding a path creates a new version;
// older FileIDs stay valid so spans from a previous run still resolve.
type FileSet struct {
	files   []File
	latest  map[string]FileID
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{latest: make(map[string]FileID)}
}

// SetBaseDir fixes the directory "relative" paths are rendered against.
func (fs *FileSet) SetBaseDir(dir string) { fs.baseDir = dir }

// BaseDir falls back to the working directory when none was set.
func (fs *FileSet) BaseDir() string {
	if fs.baseDir != "" {
		return fs.baseDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

// Add stores content as is. Callers that read untrusted bytes should go
// through AddNormalized.
func (fs *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("file set overflow: %w", err))
	}
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	id := FileID(n)
	path = cleanPath(path)
	fs.files = append(fs.files, File{
		ID:         id,
		Path:       path,
		Content:    content,
		LineStarts: lineStarts(content),
		Hash:       sha256.Sum256(content),
		Flags:      flags,
	})
	fs.latest[path] = id
	return id
}

func (fs *FileSet) AddNormalized(path string, content []byte, flags FileFlags) FileID {
	content, extra := normalize(content)
	return fs.Add(path, content, flags|extra)
}

// AddVirtual registers in-memory text such as stdin or a test fixture.
func (fs *FileSet) AddVirtual(name string, content []byte) FileID {
	return fs.AddNormalized(name, content, FileVirtual)
}

// Load reads path from disk.
func (fs *FileSet) Load(path string) (FileID, error) {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return 0, err
	}
	return fs.AddNormalized(path, content, 0), nil
}

func (fs *FileSet) Len() int { return len(fs.files) }

// Get returns nil for an unknown id.
func (fs *FileSet) Get(id FileID) *File {
	if int(id) >= len(fs.files) {
		return nil
	}
	return &fs.files[id]
}

// GetLatest finds the newest version of path.
func (fs *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fs.latest[cleanPath(path)]
	return id, ok
}

// Resolve turns both ends of span into line/column form. A span from an
// unknown file resolves as if the text were a single line.
func (fs *FileSet) Resolve(span Span) (start, end Location) {
	f := fs.Get(span.File)
	return f.Locate(span.Start), f.Locate(span.End)
}

func (fs *FileSet) Range(span Span) Range {
	start, end := fs.Resolve(span)
	return Range{File: span.File, Start: start, End: end}
}

// Offset is the inverse of Resolve for one position.
func (fs *FileSet) Offset(id FileID, line, col uint32) (uint32, bool) {
	f := fs.Get(id)
	if f == nil || line == 0 || col == 0 || int(line) > len(f.LineStarts) {
		return 0, false
	}
	off := f.LineStarts[line-1] + col - 1
	if int(off) > len(f.Content) {
		return 0, false
	}
	return off, true
}
