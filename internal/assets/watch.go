package assets

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to files with given extensions in one directory.
// Bursts of events (editors often write, chmod and rename in sequence)
// collapse into a single notification after a short quiet period.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	exts    map[string]bool
	quiet   time.Duration
	log     *zap.Logger
}

// Watch starts watching dir. An empty exts list matches every file.
func Watch(dir string, exts []string, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		watcher: fw,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
		exts:    make(map[string]bool, len(exts)),
		quiet:   150 * time.Millisecond,
		log:     log,
	}
	for _, e := range exts {
		w.exts[strings.ToLower(e)] = true
	}
	go w.loop()
	return w, nil
}

// Changes delivers the name of the last changed file of each burst. A
// pending notification is never duplicated: the receiver reloads anyway.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

func (w *Watcher) matches(name string) bool {
	if len(w.exts) == 0 {
		return true
	}
	return w.exts[strings.ToLower(filepath.Ext(name))]
}

func (w *Watcher) loop() {
	timer := time.NewTimer(w.quiet)
	timer.Stop()
	var last string

	for {
		select {
		case <-w.done:
			timer.Stop()
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !w.matches(ev.Name) {
				continue
			}
			last = ev.Name
			timer.Reset(w.quiet)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			select {
			case w.changes <- last:
			default:
			}
		}
	}
}
