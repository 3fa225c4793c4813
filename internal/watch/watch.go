// Package watch monitors ledger files on disk and reports changes. It
// debounces rapid events (editors often trigger multiple writes per save)
// and ignores anything that is not a ledger file.
package watch

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Directories to skip when watching recursively.
var ignoreDirs = map[string]bool{
	".git":    true,
	".idea":   true,
	".vscode": true,
}

var ledgerExtensions = map[string]bool{
	".beancount": true,
	".bean":      true,
	".txt":       true,
}

const debounceInterval = 50 * time.Millisecond

// Watcher monitors ledger files using fsnotify.
type Watcher struct {
	fw      *fsnotify.Watcher
	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

func NewWatcher() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fw:   fw,
		done: make(chan struct{}),
	}, nil
}

// Watch starts monitoring path, which may be a single ledger file or a
// directory tree. onChange is called with the absolute path of each
// changed ledger file.
func (w *Watcher) Watch(path string, onChange func(filePath string)) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return err
	}

	if info.IsDir() {
		err = filepath.Walk(absPath, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return nil // skip inaccessible paths
			}
			if fi.IsDir() {
				if ignoreDirs[fi.Name()] && p != absPath {
					return filepath.SkipDir
				}
				return w.fw.Add(p)
			}
			return nil
		})
	} else {
		// Watch the parent directory; many editors replace files on save,
		// which drops a watch placed on the file itself.
		err = w.fw.Add(filepath.Dir(absPath))
	}
	if err != nil {
		return err
	}

	// Debounce state: last event time per file.
	debounce := make(map[string]time.Time)
	var dmu sync.Mutex

	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				p := event.Name

				// New subdirectories join the watch list.
				if event.Has(fsnotify.Create) {
					if fi, err := os.Stat(p); err == nil && fi.IsDir() {
						if !ignoreDirs[fi.Name()] {
							w.fw.Add(p)
						}
					}
				}

				if !isLedgerFile(p) {
					continue
				}
				if !info.IsDir() && p != absPath {
					continue
				}

				dmu.Lock()
				last, seen := debounce[p]
				now := time.Now()
				if seen && now.Sub(last) < debounceInterval {
					dmu.Unlock()
					continue
				}
				debounce[p] = now
				dmu.Unlock()

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
					event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
					onChange(p)
				}

			case _, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				// Errors are swallowed — fsnotify recovers automatically

			case <-w.done:
				return
			}
		}
	}()

	return nil
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)
	return w.fw.Close()
}

func isLedgerFile(path string) bool {
	return ledgerExtensions[strings.ToLower(filepath.Ext(path))]
}
