package objstore

import (
	"context"
	"io"
	"testing"
)

func TestFSStoreWriteReadExistsList(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	ctx := context.Background()

	key := "logs/svc-A/year=2025/month=01/day=15/hour=10/123-abc.parquet"
	payload := []byte("parquet-bytes")

	if err := store.Write(ctx, key, payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	ok, err := store.Exists(ctx, key)
	if err != nil || !ok {
		t.Fatalf("Exists = (%v, %v), want (true, nil)", ok, err)
	}

	rc, err := store.Read(ctx, key)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	defer rc.Close()
	got, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("read back %q, want %q", got, payload)
	}

	keys, err := store.List(ctx, "logs/svc-A/")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Errorf("List = %v, want [%s]", keys, key)
	}
}

func TestFSStoreExistsFalseForMissingKey(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	ok, err := store.Exists(context.Background(), "nope/missing.parquet")
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if ok {
		t.Error("Exists = true, want false for missing key")
	}
}
