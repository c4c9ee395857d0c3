package local

import (
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	key, size, mimeType, err := store.Save(context.Background(), "resumes", "resume.txt", strings.NewReader("Budi Santoso\nbudi@example.com"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if size != int64(len("Budi Santoso\nbudi@example.com")) {
		t.Fatalf("unexpected size: %d", size)
	}
	if !strings.HasPrefix(mimeType, "text/plain") {
		t.Fatalf("unexpected mime: %q", mimeType)
	}
	if !strings.HasPrefix(key, "resumes/") && !strings.HasPrefix(key, "resumes\\") {
		t.Fatalf("expected category namespace in key, got %q", key)
	}

	reader, err := store.Open(context.Background(), key)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Budi Santoso\nbudi@example.com" {
		t.Fatalf("round trip mismatch: %q", data)
	}
}

func TestSaveWithKeyAndOpen(t *testing.T) {
	store := New(t.TempDir())

	n, err := store.SaveWithKey(context.Background(), "letters/abc.txt", "text/plain", strings.NewReader("letter body"))
	if err != nil {
		t.Fatalf("save with key: %v", err)
	}
	if n != int64(len("letter body")) {
		t.Fatalf("unexpected written size: %d", n)
	}

	reader, err := store.Open(context.Background(), "letters/abc.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "letter body" {
		t.Fatalf("round trip mismatch: %q", data)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../outside"); err == nil {
		t.Fatalf("expected traversal rejection")
	}
	if _, err := store.SaveWithKey(context.Background(), "../outside", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected traversal rejection on save")
	}
}
