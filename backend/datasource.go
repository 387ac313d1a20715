package backend

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Session is the state of one opened point file.
type Session struct {
	ID   string
	Path string
	Data Dataset
	// Live is set while the file is followed for appended rows.
	Live bool
	Err  error
}

type RWBox[T any] struct {
	t    T
	lock sync.RWMutex
}

func (r *RWBox[T]) Read(f func(*T)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	f(&r.t)
}

func (r *RWBox[T]) Write(f func(*T)) {
	r.lock.Lock()
	defer r.lock.Unlock()
	f(&r.t)
}

// latest is the most recently published session. changed is closed and
// replaced on every publish.
type latest struct {
	session Session
	changed chan struct{}
}

// Datasource loads point files and follows them as they are written.
// Only one file is open at a time; opening another ends the previous
// session.
type Datasource struct {
	watcher *fsnotify.Watcher
	latest  RWBox[latest]

	lock    sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	watched string
}

func NewDatasource() (*Datasource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed creating file watcher: %w", err)
	}
	ds := &Datasource{
		watcher: watcher,
	}
	ds.latest.Write(func(l *latest) {
		l.changed = make(chan struct{})
	})
	return ds, nil
}

// Sessions emits the current session immediately and then every update
// until ctx is done. Slow readers only see the newest state.
func (d *Datasource) Sessions(ctx context.Context) <-chan Session {
	out := make(chan Session)
	go func() {
		defer close(out)
		for {
			var (
				session Session
				changed chan struct{}
			)
			d.latest.Read(func(l *latest) {
				session, changed = l.session, l.changed
			})
			select {
			case out <- session:
			case <-ctx.Done():
				return
			}
			select {
			case <-changed:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func (d *Datasource) publish(s Session) {
	d.latest.Write(func(l *latest) {
		l.session = s
		close(l.changed)
		l.changed = make(chan struct{})
	})
}

func generateSessionID() string {
	return strings.Replace(time.Now().UTC().Format("20060102150405.000000000"), ".", "", 1)
}

// Open loads the file at path and keeps following it. It returns the ID of
// the new session.
func (d *Datasource) Open(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.stop()
	live := true
	if err := d.watch(filepath.Dir(path)); err != nil {
		log.Printf("failed watching %q, loading it once: %v", path, err)
		live = false
	}
	id := generateSessionID()
	d.start(func(ctx context.Context) {
		d.follow(ctx, Session{ID: id, Path: path, Live: live})
	})
	return id
}

// OpenReader loads points from rc and closes it. Files are followed like
// Open; other readers are read once.
func (d *Datasource) OpenReader(rc io.ReadCloser) string {
	if f, ok := rc.(interface{ Name() string }); ok && f.Name() != "" {
		if err := rc.Close(); err != nil {
			log.Printf("failed closing %q: %v", f.Name(), err)
		}
		return d.Open(f.Name())
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	d.stop()
	id := generateSessionID()
	d.start(func(ctx context.Context) {
		defer rc.Close()
		session := Session{ID: id}
		headers, points, err := ReadPoints(rc)
		if headers != nil {
			session.Data.SetHeadings(headers)
		}
		for _, p := range points {
			session.Data.Insert(p)
		}
		session.Err = err
		d.publish(session)
	})
	return id
}

// Close ends the current session and stops watching files.
func (d *Datasource) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.stop()
	return d.watcher.Close()
}

// start runs f in a new goroutine. d.lock must be held.
func (d *Datasource) start(f func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	d.cancel, d.done = cancel, done
	go func() {
		defer close(done)
		f(ctx)
	}()
}

// stop ends the running session and waits for it, so that it can no longer
// consume watcher events. d.lock must be held.
func (d *Datasource) stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
	d.cancel, d.done = nil, nil
}

// watch replaces the watched directory. Directories are watched instead of
// files so that a file replaced by an editor keeps being followed.
func (d *Datasource) watch(dir string) error {
	if d.watched == dir {
		return nil
	}
	if d.watched != "" {
		if err := d.watcher.Remove(d.watched); err != nil {
			log.Printf("failed unwatching %q: %v", d.watched, err)
		}
		d.watched = ""
	}
	if err := d.watcher.Add(dir); err != nil {
		return err
	}
	d.watched = dir
	return nil
}

type change uint8

const (
	changeNone change = iota
	changeGrew
	changeReplaced
)

// follow reads session.Path until ctx is done, starting over whenever the
// file is replaced or truncated.
func (d *Datasource) follow(ctx context.Context, session Session) {
	for {
		f, err := os.Open(session.Path)
		if err != nil {
			session.Err = fmt.Errorf("failed opening %q: %w", session.Path, err)
			session.Data = Dataset{}
			d.publish(session)
			if !session.Live || d.wait(ctx, session.Path) == changeNone {
				return
			}
			continue
		}
		replaced := d.tail(ctx, f, session)
		if err := f.Close(); err != nil {
			log.Printf("failed closing %q: %v", session.Path, err)
		}
		if !replaced {
			return
		}
	}
}

// tail publishes everything readable from f, then waits for more. It
// reports whether f was replaced and should be reopened.
func (d *Datasource) tail(ctx context.Context, f *os.File, session Session) (replaced bool) {
	lines := NewLineReader(f)
	points := NewPointReader(lines)
	var data Dataset
	for {
		err := drain(points, &data)
		session.Data = data.Clone()
		if pt, ok := parseLine(lines.Partial(), len(data.Points)+1); ok && data.Initialized() {
			session.Data.Insert(pt)
		}
		session.Err = err
		if err == nil && !session.Live && !session.Data.Initialized() {
			session.Err = ErrNoPoints
		}
		d.publish(session)
		if !session.Live {
			return false
		}
		switch d.wait(ctx, session.Path) {
		case changeNone:
			return false
		case changeReplaced:
			return true
		}
		if truncated(f) {
			return true
		}
	}
}

// drain reads points into data until the available input is exhausted.
func drain(points *PointReader, data *Dataset) error {
	if !data.Initialized() {
		headers, err := points.Headers()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return fmt.Errorf("failed reading headers: %w", err)
		}
		data.SetHeadings(headers)
	}
	for {
		pt, err := points.Next()
		var parseErr *csv.ParseError
		if errors.Is(err, io.EOF) {
			return nil
		} else if errors.As(err, &parseErr) {
			log.Printf("skipping malformed row: %v", err)
			continue
		} else if err != nil {
			return fmt.Errorf("failed reading points: %w", err)
		}
		data.Insert(pt)
	}
}

// truncated reports whether f shrank below the read position.
func truncated(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	pos, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	return info.Size() < pos
}

// wait blocks until path changes or ctx is done.
func (d *Datasource) wait(ctx context.Context, path string) change {
	for {
		select {
		case <-ctx.Done():
			return changeNone
		case ev, ok := <-d.watcher.Events:
			if !ok {
				return changeNone
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			switch {
			case ev.Has(fsnotify.Create):
				return changeReplaced
			case ev.Has(fsnotify.Write):
				return changeGrew
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return changeNone
			}
			log.Printf("failed watching %q: %v", path, err)
		}
	}
}
