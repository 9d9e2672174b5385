package store

import (
	"testing"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func newTestKV(t *testing.T) KV {
	t.Helper()

	db, err := sqlx.Connect("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	db.MustExec(`CREATE TABLE kv_entries (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`)

	return NewKV(db)
}

func TestKVGetMissingKey(t *testing.T) {
	kv := newTestKV(t)

	value, ok, err := kv.Get("gonogo_u1_goals")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Errorf("missing key reported present, value=%q", value)
	}
}

func TestKVSetGetRoundTrip(t *testing.T) {
	kv := newTestKV(t)
	key := GoalsKey("u1")

	err := kv.Set(key, `[{"id":"g1"}]`)
	if err != nil {
		t.Fatalf("set: %v", err)
	}

	value, ok, err := kv.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("key not found after set")
	}
	if value != `[{"id":"g1"}]` {
		t.Errorf("value = %q", value)
	}
}

func TestKVSetOverwrites(t *testing.T) {
	kv := newTestKV(t)
	key := GoalsKey("u1")

	if err := kv.Set(key, "old"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(key, "new"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	value, ok, err := kv.Get(key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != "new" {
		t.Errorf("value = %q, want %q", value, "new")
	}
}

func TestKVDelete(t *testing.T) {
	kv := newTestKV(t)
	key := GoalsKey("u1")

	if err := kv.Set(key, "x"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, ok, err := kv.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("key still present after delete")
	}

	// Deleting a missing key is a no-op
	if err := kv.Delete(key); err != nil {
		t.Errorf("second delete: %v", err)
	}
}

func TestKVKeysAreUserScoped(t *testing.T) {
	kv := newTestKV(t)

	if err := kv.Set(GoalsKey("u1"), "alpha"); err != nil {
		t.Fatalf("set u1: %v", err)
	}
	if err := kv.Set(GoalsKey("u2"), "beta"); err != nil {
		t.Fatalf("set u2: %v", err)
	}

	value, _, err := kv.Get(GoalsKey("u1"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "alpha" {
		t.Errorf("u1 value = %q, want %q", value, "alpha")
	}
}
