package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newEntry(i int) Entry {
	return NewEntry(fmt.Sprintf("original %d", i), fmt.Sprintf("rewritten %d", i), "Casual", "High",
		time.Date(2025, 1, 1, 0, 0, i, 0, time.UTC))
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	a := NewEntry("a", "b", "Witty", "Low", now)
	b := NewEntry("a", "b", "Witty", "Low", now)

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids not unique: %q %q", a.ID, b.ID)
	}
	if a.Timestamp != now.UnixMilli() {
		t.Errorf("timestamp = %d", a.Timestamp)
	}
	if !a.Time().Equal(now) {
		t.Errorf("Time() = %v", a.Time())
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	s := NewStore(NewMemoryKV(), 0)
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if entries == nil || len(entries) != 0 {
		t.Errorf("entries = %#v, want empty slice", entries)
	}
	if s.Capacity() != DefaultCapacity {
		t.Errorf("capacity = %d", s.Capacity())
	}
}

func TestStore_AppendKeepsMostRecent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryKV(), 10)

	var snapshot []Entry
	for i := 1; i <= 11; i++ {
		var err error
		snapshot, err = s.Append(ctx, newEntry(i))
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	if len(snapshot) != 10 {
		t.Fatalf("len = %d, want 10", len(snapshot))
	}
	if snapshot[0].Original != "original 11" || snapshot[9].Original != "original 2" {
		t.Errorf("order wrong: first=%q last=%q", snapshot[0].Original, snapshot[9].Original)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for i := range loaded {
		if loaded[i] != snapshot[i] {
			t.Fatalf("loaded[%d] = %+v, want %+v", i, loaded[i], snapshot[i])
		}
	}
}

func TestStore_SnapshotsAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryKV(), 3)

	first, _ := s.Append(ctx, newEntry(1))
	first[0].Humanized = "mutated"

	loaded, _ := s.Load(ctx)
	if loaded[0].Humanized != "rewritten 1" {
		t.Errorf("store affected by caller mutation: %q", loaded[0].Humanized)
	}
}

func TestStore_CorruptedValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	kv.Put(ctx, StorageKey, []byte("{not json"))

	var logs bytes.Buffer
	s := NewStore(kv, 10, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	entries, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("corruption must not be an error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %+v", entries)
	}
	if !strings.Contains(logs.String(), "corrupted") {
		t.Errorf("no warning logged: %q", logs.String())
	}

	// Appending over corrupted data starts a fresh list.
	next, err := s.Append(ctx, newEntry(1))
	if err != nil || len(next) != 1 {
		t.Fatalf("Append after corruption: %v %+v", err, next)
	}
}

func TestStore_GetAndClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryKV(), 5)

	e := newEntry(1)
	s.Append(ctx, e)

	got, ok, err := s.Get(ctx, e.ID)
	if err != nil || !ok || got != e {
		t.Fatalf("Get = %+v %v %v", got, ok, err)
	}
	if _, ok, _ := s.Get(ctx, "missing"); ok {
		t.Error("found missing id")
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatal(err)
	}
	entries, _ := s.Load(ctx)
	if len(entries) != 0 {
		t.Errorf("entries after Clear = %+v", entries)
	}
}

type failingKV struct{ *MemoryKV }

var errDisk = errors.New("disk on fire")

func (f *failingKV) Put(ctx context.Context, key string, value []byte) error { return errDisk }

func TestStore_PutError(t *testing.T) {
	s := NewStore(&failingKV{MemoryKV: NewMemoryKV()}, 5)
	if _, err := s.Append(context.Background(), newEntry(1)); !errors.Is(err, errDisk) {
		t.Fatalf("err = %v, want errDisk", err)
	}
}

func TestSQLiteKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "history.db")

	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}

	if _, ok, err := kv.Get(ctx, "k"); ok || err != nil {
		t.Fatalf("Get on empty db: %v %v", ok, err)
	}
	if err := kv.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatal(err)
	}
	if err := kv.Put(ctx, "k", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	v, ok, err := kv.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v2" {
		t.Fatalf("Get = %q %v %v", v, ok, err)
	}
	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := kv.Get(ctx, "k"); ok {
		t.Error("value survived Delete")
	}
	kv.Close()
}

func TestSQLiteKV_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.db")

	kv, err := OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(kv, 10)
	e := newEntry(7)
	if _, err := s.Append(ctx, e); err != nil {
		t.Fatal(err)
	}
	kv.Close()

	kv, err = OpenSQLite(path)
	if err != nil {
		t.Fatal(err)
	}
	defer kv.Close()

	entries, err := NewStore(kv, 10).Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0] != e {
		t.Errorf("entries = %+v", entries)
	}
}
