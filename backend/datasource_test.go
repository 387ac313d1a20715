package backend

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newDatasource(t *testing.T) (*Datasource, <-chan Session) {
	t.Helper()
	ds, err := NewDatasource()
	if err != nil {
		t.Fatalf("failed creating datasource: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		if err := ds.Close(); err != nil {
			t.Errorf("failed closing datasource: %v", err)
		}
	})
	return ds, ds.Sessions(ctx)
}

func waitFor(t *testing.T, sessions <-chan Session, desc string, cond func(Session) bool) Session {
	t.Helper()
	timeout := time.After(5 * time.Second)
	var last Session
	for {
		select {
		case s, ok := <-sessions:
			if !ok {
				t.Fatalf("session stream closed waiting for %s", desc)
			}
			if cond(s) {
				return s
			}
			last = s
		case <-timeout:
			t.Fatalf("timed out waiting for %s, last session: %+v", desc, last)
		}
	}
}

func TestDatasourceFollowsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,12\n2,15\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, sessions := newDatasource(t)
	id := ds.Open(path)
	s := waitFor(t, sessions, "initial load", func(s Session) bool {
		return s.ID == id && len(s.Data.Points) == 2
	})
	if !s.Live {
		t.Errorf("expected the session to follow the file")
	}
	if s.Err != nil {
		t.Errorf("expected no error, got: %v", s.Err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := f.WriteString("3,32"); err != nil {
		t.Fatal(err)
	}
	s = waitFor(t, sessions, "unterminated row", func(s Session) bool {
		return len(s.Data.Points) == 3
	})
	expectY(t, s.Data.Points[2], 32, true)

	if _, err := f.WriteString("0\n4,\n"); err != nil {
		t.Fatal(err)
	}
	s = waitFor(t, sessions, "appended rows", func(s Session) bool {
		return len(s.Data.Points) == 4
	})
	expectY(t, s.Data.Points[2], 320, true)
	expectY(t, s.Data.Points[3], 0, false)
}

func TestDatasourceReplacedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.csv")
	if err := os.WriteFile(path, []byte("x,y\n1,1\n2,2\n3,3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, sessions := newDatasource(t)
	ds.Open(path)
	waitFor(t, sessions, "initial load", func(s Session) bool {
		return len(s.Data.Points) == 3
	})

	tmp := filepath.Join(dir, "points.csv.tmp")
	if err := os.WriteFile(tmp, []byte("a,b\n7,70\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}
	s := waitFor(t, sessions, "replacement", func(s Session) bool {
		return len(s.Data.Points) == 1
	})
	if s.Data.Headings != [2]string{"a", "b"} {
		t.Errorf("expected the new headings, got %q", s.Data.Headings)
	}
	expectY(t, s.Data.Points[0], 70, true)
}

func TestDatasourceMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "later.csv")
	ds, sessions := newDatasource(t)
	ds.Open(path)
	s := waitFor(t, sessions, "open error", func(s Session) bool {
		return s.Err != nil
	})
	if !errors.Is(s.Err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got: %v", s.Err)
	}
	if err := os.WriteFile(path, []byte("x,y\n1,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, sessions, "created file", func(s Session) bool {
		return s.Err == nil && len(s.Data.Points) == 1
	})
}

func TestDatasourceOpenReader(t *testing.T) {
	ds, sessions := newDatasource(t)
	id := ds.OpenReader(io.NopCloser(strings.NewReader("x,y\n1,2\n2,3")))
	s := waitFor(t, sessions, "reader load", func(s Session) bool {
		return s.ID == id
	})
	if s.Live {
		t.Errorf("expected a plain reader not to be followed")
	}
	if len(s.Data.Points) != 2 {
		t.Errorf("expected 2 points, got %d", len(s.Data.Points))
	}

	id = ds.OpenReader(io.NopCloser(strings.NewReader("")))
	s = waitFor(t, sessions, "empty reader", func(s Session) bool {
		return s.ID == id
	})
	if !errors.Is(s.Err, ErrNoPoints) {
		t.Errorf("expected ErrNoPoints, got: %v", s.Err)
	}
}

func TestDatasourceOpenReplacesSession(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")
	for _, p := range []string{first, second} {
		if err := os.WriteFile(p, []byte("x,y\n1,2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	ds, sessions := newDatasource(t)
	ds.Open(first)
	id := ds.Open(second)
	s := waitFor(t, sessions, "second session", func(s Session) bool {
		return s.ID == id && len(s.Data.Points) == 1
	})
	if filepath.Base(s.Path) != "second.csv" {
		t.Errorf("expected the second file, got %q", s.Path)
	}
}
