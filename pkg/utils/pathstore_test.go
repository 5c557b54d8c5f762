package utils

import (
	"testing"
)

func TestPathStorePutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenPathStore(dir)
	if err != nil {
		t.Fatalf("OpenPathStore: %v", err)
	}
	defer store.Close()

	if _, ok := store.Get("US"); ok {
		t.Error("Get on an empty store reported a hit")
	}
	if err := store.Put("US", "M0,0L10,0L10,10Z"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok := store.Get("US")
	if !ok || got != "M0,0L10,0L10,10Z" {
		t.Errorf("Get = %q, %v", got, ok)
	}
}

func TestPathStorePersists(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenPathStore(dir)
	if err != nil {
		t.Fatalf("OpenPathStore: %v", err)
	}
	if err := store.Put("FR", "M1,1Z"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenPathStore(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got, ok := reopened.Get("FR"); !ok || got != "M1,1Z" {
		t.Errorf("Get after reopen = %q, %v", got, ok)
	}
}

func TestPathStorePutAllForEach(t *testing.T) {
	store, err := OpenPathStore(t.TempDir())
	if err != nil {
		t.Fatalf("OpenPathStore: %v", err)
	}
	defer store.Close()

	paths := map[string]string{
		"DE": "M2,2Z",
		"IT": "M3,3Z",
		"ES": "M4,4Z",
	}
	if err := store.PutAll(paths); err != nil {
		t.Fatalf("PutAll: %v", err)
	}

	seen := make(map[string]string)
	err = store.ForEach(func(code, path string) error {
		seen[code] = path
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach: %v", err)
	}
	if len(seen) != len(paths) {
		t.Fatalf("ForEach visited %d entries, want %d", len(seen), len(paths))
	}
	for code, want := range paths {
		if seen[code] != want {
			t.Errorf("seen[%s] = %q, want %q", code, seen[code], want)
		}
	}
}

func TestCacheFileName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/world.geo.json", "world.geo.json"},
		{"https://example.com/data/", "download"},
	}
	for _, tt := range tests {
		if got := cacheFileName(tt.url); got != tt.want {
			t.Errorf("cacheFileName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}
