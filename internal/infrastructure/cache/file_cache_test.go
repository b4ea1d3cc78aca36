package cache

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/doeshing/sqai-go/internal/domain"
)

func TestSetGet(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Hour)
	key := Key("mysql", "user:pass@tcp(localhost)/sakila", "sakila")
	if err := c.Set(domain.SchemaSnapshot{Key: key, Driver: "mysql", DDL: "CREATE TABLE actor (...)"}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err := c.Get(key)
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if got.DDL != "CREATE TABLE actor (...)" || got.CreatedAt.IsZero() {
		t.Fatalf("entry = %+v", got)
	}
}

func TestGetExpired(t *testing.T) {
	c := NewFileCache(t.TempDir(), time.Minute)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return start }
	if err := c.Set(domain.SchemaSnapshot{Key: "k", DDL: "x"}); err != nil {
		t.Fatal(err)
	}
	c.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, ok, err := c.Get("k"); ok || err != nil {
		t.Fatalf("Get() after ttl = %v, %v", ok, err)
	}
	if _, err := os.Stat(c.pathFor("k")); !os.IsNotExist(err) {
		t.Fatal("expired entry should be removed")
	}
}

func TestGetMissingAndEmptyKey(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	if _, ok, err := c.Get("nope"); ok || err != nil {
		t.Fatalf("Get(missing) = %v, %v", ok, err)
	}
	if _, ok, err := c.Get(""); ok || err != nil {
		t.Fatalf("Get(\"\") = %v, %v", ok, err)
	}
	if err := c.Set(domain.SchemaSnapshot{}); err != nil {
		t.Fatalf("Set(empty key) error = %v", err)
	}
}

func TestEvictionAndClear(t *testing.T) {
	c := NewFileCache(t.TempDir(), 0)
	c.maxEntries = 2
	for i := 0; i < 4; i++ {
		if err := c.Set(domain.SchemaSnapshot{Key: fmt.Sprintf("k%d", i), DDL: "x"}); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := c.Entries()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	entries, err = c.Entries()
	if err != nil || len(entries) != 0 {
		t.Fatalf("Entries() after Clear = %v, %v", entries, err)
	}
}

func TestKeyIsStableAndHidesInput(t *testing.T) {
	a := Key("mysql", "secret-dsn")
	if a != Key("mysql", "secret-dsn") {
		t.Fatal("Key() not stable")
	}
	if a == Key("mysqlsecret-dsn") {
		t.Fatal("Key() should separate parts")
	}
	if len(a) != 32 {
		t.Fatalf("len(Key()) = %d", len(a))
	}
}
