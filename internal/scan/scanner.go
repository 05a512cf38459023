// Package scan walks a directory tree and reads the marker file of every
// directory that has one.
package scan

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// DefaultMarker is the file whose presence marks a directory for scanning.
const DefaultMarker = "code.html"

// ErrTooLarge is recorded on a folder whose marker file exceeds the size limit.
var ErrTooLarge = errors.New("marker file exceeds size limit")

// Folder is one candidate directory. Either Content is valid (Err == nil)
// or Err says why the marker file could not be read.
type Folder struct {
	Name    string // base name of the directory
	Dir     string // full path of the directory
	Content string
	Err     error
}

// OK reports whether the marker file was read successfully.
func (f Folder) OK() bool {
	return f.Err == nil
}

// Scanner finds candidate folders under a root directory.
type Scanner struct {
	root        string
	marker      string
	maxFileSize int64
	logger      hclog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithMarker sets the marker file name.
func WithMarker(name string) Option {
	return func(s *Scanner) {
		s.marker = name
	}
}

// WithMaxFileSize limits how many bytes of a marker file are read. Zero means unlimited.
func WithMaxFileSize(n int64) Option {
	return func(s *Scanner) {
		s.maxFileSize = n
	}
}

// WithLogger sets the logger used for skipped directories and files.
func WithLogger(logger hclog.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scanner rooted at root.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:   root,
		marker: DefaultMarker,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the directory the scanner walks.
func (s *Scanner) Root() string {
	return s.root
}

// Folders returns a lazy sequence of candidate folders in pre-order, lexical
// traversal order, starting with the root itself. Read failures are carried
// on the Folder. A non-nil error means the root could not be walked; it is
// yielded once and ends the sequence.
func (s *Scanner) Folders() iter.Seq2[Folder, error] {
	return func(yield func(Folder, error) bool) {
		info, err := os.Stat(s.root)
		if err != nil {
			yield(Folder{}, fmt.Errorf("failed to stat scan root: %w", err))
			return
		}
		if !info.IsDir() {
			yield(Folder{}, fmt.Errorf("scan root %s is not a directory", s.root))
			return
		}

		// A trailing separator makes WalkDir descend into a symlinked root.
		root := s.root
		if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
			root += string(filepath.Separator)
		}

		stopped := false
		walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				s.logger.Debug("skipping unreadable directory", "path", path, "error", err)
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.IsDir() {
				return nil
			}

			folder, ok := s.visit(path)
			if !ok {
				return nil
			}
			if !yield(folder, nil) {
				stopped = true
				return filepath.SkipAll
			}
			return nil
		})
		if walkErr != nil && !stopped {
			yield(Folder{}, fmt.Errorf("failed to walk scan root: %w", walkErr))
		}
	}
}

// visit checks dir for the marker file and reads it. ok is false when dir is
// not a candidate.
func (s *Scanner) visit(dir string) (Folder, bool) {
	markerPath := filepath.Join(dir, s.marker)

	info, err := os.Stat(markerPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// A dangling symlink still names a marker file; it fails on read.
		if _, lerr := os.Lstat(markerPath); lerr != nil {
			return Folder{}, false
		}
	case err == nil && info.IsDir():
		return Folder{}, false
	}

	folder := Folder{
		Name: filepath.Base(dir),
		Dir:  dir,
	}
	folder.Content, folder.Err = s.read(markerPath)
	if folder.Err != nil {
		s.logger.Debug("skipping unreadable marker file", "path", markerPath, "error", folder.Err)
	}
	return folder, true
}

// read returns the whole file as text. The size limit is checked before
// decoding, so an oversized file always fails with ErrTooLarge.
func (s *Scanner) read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if s.maxFileSize > 0 {
		r = io.LimitReader(f, s.maxFileSize+1)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if s.maxFileSize > 0 && int64(len(raw)) > s.maxFileSize {
		return "", fmt.Errorf("%w: %s (%d bytes)", ErrTooLarge, path, s.maxFileSize)
	}

	text, _, err := transform.Bytes(encoding.UTF8Validator, raw)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return string(text), nil
}
