package configsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileSource reads the document from <Dir>/<FileName>. When the file does not
// exist the fallback bytes are returned, and without a fallback ErrNotFound.
//
// With Watch enabled the contents are cached. Every Load compares the file's
// modification time and size with the cached copy, so an edit is visible at
// once; write, create, remove and rename events for the file also invalidate
// the cache. Close stops the watcher.
type FileSource struct {
	path     string
	fallback []byte
	logger   Logger

	watcher    *fsnotify.Watcher
	generation atomic.Uint64
	done       chan struct{}
	closeOnce  sync.Once

	mu     sync.Mutex
	cached *cachedDoc
}

type cachedDoc struct {
	data       []byte
	err        error
	generation uint64
	stamp      fileStamp
}

// fileStamp identifies one version of the file on disk. The zero value stands
// for a missing file.
type fileStamp struct {
	exists  bool
	modTime time.Time
	size    int64
	info    os.FileInfo
}

func (a fileStamp) same(b fileStamp) bool {
	if a.exists != b.exists {
		return false
	}
	if !a.exists {
		return true
	}
	return a.modTime.Equal(b.modTime) && a.size == b.size && os.SameFile(a.info, b.info)
}

// NewFileSource creates a file source. An empty Dir resolves to the directory
// of the running executable.
func NewFileSource(cfg Config) (*FileSource, error) {
	if cfg.FileName == "" {
		cfg.FileName = DefaultFileName
	}
	if cfg.Dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolve executable directory: %w", err)
		}
		cfg.Dir = filepath.Dir(exe)
	}

	s := &FileSource{
		path: filepath.Join(cfg.Dir, cfg.FileName),
		done: make(chan struct{}),
	}
	if cfg.Watch {
		if err := s.watch(cfg.Dir); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// WithFallback sets the bundled document used when the file is missing.
func (s *FileSource) WithFallback(doc []byte) *FileSource {
	s.fallback = doc
	s.generation.Add(1)
	return s
}

// WithLogger attaches a logger for watcher errors.
func (s *FileSource) WithLogger(logger Logger) *FileSource {
	s.logger = logger
	return s
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Path returns the file path.
func (s *FileSource) Path() string {
	return s.path
}

// Load returns the document.
func (s *FileSource) Load(ctx context.Context) ([]byte, error) {
	if s.watcher == nil {
		return s.read()
	}

	gen := s.generation.Load()
	stamp, err := s.stat()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c := s.cached; c != nil && c.generation == gen && c.stamp.same(stamp) {
		return c.data, c.err
	}

	data, err := s.read()
	s.cached = &cachedDoc{data: data, err: err, generation: gen, stamp: stamp}
	return data, err
}

func (s *FileSource) stat() (fileStamp, error) {
	info, err := os.Stat(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileStamp{}, nil
	}
	if err != nil {
		return fileStamp{}, fmt.Errorf("stat configuration %s: %w", s.path, err)
	}
	return fileStamp{exists: true, modTime: info.ModTime(), size: info.Size(), info: info}, nil
}

func (s *FileSource) read() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read configuration %s: %w", s.path, err)
	}
	if s.fallback != nil {
		return s.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, s.path)
}

// Close stops the watcher. It is safe to call more than once.
func (s *FileSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func (s *FileSource) watch(dir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	// The directory is watched so the file may be created or replaced later.
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}
	s.watcher = w
	go s.loop()
	return nil
}

func (s *FileSource) loop() {
	name := filepath.Base(s.path)
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				s.generation.Add(1)
			}

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			// Events may have been dropped; force a re-read.
			s.generation.Add(1)
			if s.logger != nil {
				s.logger.WarnWithContext(context.Background(), "configuration watcher error", err, map[string]interface{}{
					"path": s.path,
				})
			}

		case <-s.done:
			return
		}
	}
}
