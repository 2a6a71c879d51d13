package content

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounce = 100 * time.Millisecond

// ChangeKind says which part of the content a changed file belongs to.
type ChangeKind int

const (
	ChangeTable ChangeKind = iota
	ChangeMap
	ChangeScript
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeTable:
		return "table"
	case ChangeMap:
		return "map"
	case ChangeScript:
		return "script"
	}
	return "unknown"
}

// Change is one content file that changed on disk. Name is the file's base
// name without extension, which is how maps and scripts are looked up.
type Change struct {
	Path string
	Kind ChangeKind
	Name string
}

// ClassifyChange maps a file path to the content it affects. Files that are
// not content report false.
func ClassifyChange(path string) (Change, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	c := Change{Path: path, Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))}
	switch {
	case ext == ".tengo":
		c.Kind = ChangeScript
	case ext == ".yaml" || ext == ".yml":
		if filepath.Base(filepath.Dir(path)) == "maps" {
			c.Kind = ChangeMap
		} else {
			c.Kind = ChangeTable
		}
	default:
		return Change{}, false
	}
	return c, true
}

// Watcher reports content files that changed on disk. Both channels are
// closed once the watcher stops.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Errors)
	defer close(w.Events)

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := ClassifyChange(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}
