package repository

import (
	"context"
	"testing"

	"github.com/Iterio-app/Iterio-Platform-sub000/internal/publication/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&domain.Pointer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM document_pointers")
	})
	return db
}

func TestGetMissingPointerReturnsNil(t *testing.T) {
	repo := New(newTestDB(t))

	pointer, err := repo.Get(context.Background(), 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pointer != nil {
		t.Fatalf("expected nil pointer, got %+v", pointer)
	}
}

func TestUpsertInsertsThenUpdates(t *testing.T) {
	repo := New(newTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, domain.Pointer{QuoteID: 7, PublicURL: "https://cdn.test/a.pdf"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Upsert(ctx, domain.Pointer{QuoteID: 7, PublicURL: "https://cdn.test/b.pdf"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	pointer, err := repo.Get(ctx, 7)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pointer == nil || pointer.PublicURL != "https://cdn.test/b.pdf" {
		t.Fatalf("expected updated url, got %+v", pointer)
	}
	if pointer.Stale {
		t.Fatal("expected fresh pointer after upsert")
	}
}

func TestUpsertClearsStale(t *testing.T) {
	repo := New(newTestDB(t))
	ctx := context.Background()

	if err := repo.Upsert(ctx, domain.Pointer{QuoteID: 9, PublicURL: "https://cdn.test/a.pdf"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.MarkStale(ctx, 9); err != nil {
		t.Fatalf("mark stale: %v", err)
	}

	pointer, err := repo.Get(ctx, 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pointer == nil || !pointer.Stale {
		t.Fatalf("expected stale pointer, got %+v", pointer)
	}

	if err := repo.Upsert(ctx, domain.Pointer{QuoteID: 9, PublicURL: "https://cdn.test/b.pdf"}); err != nil {
		t.Fatalf("republish: %v", err)
	}
	pointer, err = repo.Get(ctx, 9)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if pointer == nil || pointer.Stale {
		t.Fatalf("expected fresh pointer after republish, got %+v", pointer)
	}
}

func TestMarkStaleWithoutPointerIsNoop(t *testing.T) {
	repo := New(newTestDB(t))

	if err := repo.MarkStale(context.Background(), 404); err != nil {
		t.Fatalf("mark stale: %v", err)
	}
}
