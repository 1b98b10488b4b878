package blob

import (
	"bytes"
	"context"
	"testing"
)

// storeTest exercises the Store contract shared by all implementations.
func storeTest(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	data := []byte("hello blob world")
	if err := s.Put(ctx, "files", "dir/report.pdf", data, "application/pdf"); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Get(ctx, "files", "dir/report.pdf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("get = %q, want %q", got, data)
	}

	head, err := s.GetRange(ctx, "files", "dir/report.pdf", 5)
	if err != nil {
		t.Fatalf("get range: %v", err)
	}
	if string(head) != "hello" {
		t.Errorf("range = %q, want %q", head, "hello")
	}

	// A range longer than the object is a short read, not an error.
	long, err := s.GetRange(ctx, "files", "dir/report.pdf", 1024)
	if err != nil {
		t.Fatalf("long range: %v", err)
	}
	if !bytes.Equal(long, data) {
		t.Errorf("long range = %q, want the whole object", long)
	}

	if _, err := s.Get(ctx, "files", "missing.pdf"); err == nil {
		t.Error("get of missing object succeeded, want error")
	}
	if _, err := s.GetRange(ctx, "files", "missing.pdf", 4); err == nil {
		t.Error("range of missing object succeeded, want error")
	}

	// Put replaces.
	if err := s.Put(ctx, "files", "dir/report.pdf", []byte("v2"), "application/pdf"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.Get(ctx, "files", "dir/report.pdf")
	if err != nil || string(got) != "v2" {
		t.Errorf("after overwrite: %q, %v", got, err)
	}

	for _, bad := range []struct{ bucket, key string }{
		{"", "key"},
		{"bucket", ""},
		{"bucket", "../escape"},
		{"/abs", "key"},
	} {
		if _, err := s.Get(ctx, bad.bucket, bad.key); err == nil {
			t.Errorf("get %q/%q succeeded, want error", bad.bucket, bad.key)
		}
		if err := s.Put(ctx, bad.bucket, bad.key, data, ""); err == nil {
			t.Errorf("put %q/%q succeeded, want error", bad.bucket, bad.key)
		}
	}
}

func TestDirStore(t *testing.T) {
	storeTest(t, NewDir(t.TempDir()))
}

func TestMemStore(t *testing.T) {
	storeTest(t, NewMem())
}

func TestMemStore_ContentType(t *testing.T) {
	m := NewMem()
	ctx := context.Background()
	if err := m.Put(ctx, "output", "doc.html", []byte("<p>x</p>"), "text/html"); err != nil {
		t.Fatal(err)
	}
	if ct := m.ContentType("output", "doc.html"); ct != "text/html" {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if ct := m.ContentType("output", "nope"); ct != "" {
		t.Errorf("missing object content type = %q, want empty", ct)
	}
}

func TestMemStore_DefensiveCopies(t *testing.T) {
	m := NewMem()
	ctx := context.Background()

	data := []byte("origineel")
	if err := m.Put(ctx, "b", "k", data, ""); err != nil {
		t.Fatal(err)
	}
	data[0] = 'X'

	got, err := m.Get(ctx, "b", "k")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "origineel" {
		t.Errorf("stored data aliased the caller's slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := m.Get(ctx, "b", "k")
	if string(again) != "origineel" {
		t.Errorf("returned data aliased the store's slice: %q", again)
	}
}

func TestDirStore_CanceledContext(t *testing.T) {
	d := NewDir(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := d.Get(ctx, "b", "k"); err == nil {
		t.Error("get with canceled context succeeded")
	}
	if err := d.Put(ctx, "b", "k", []byte("x"), ""); err == nil {
		t.Error("put with canceled context succeeded")
	}
}
