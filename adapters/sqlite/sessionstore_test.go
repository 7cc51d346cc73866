package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stonefield/jiraSOAP/adapters/sqlite"
	"github.com/stonefield/jiraSOAP/domain/auth"
	"github.com/stonefield/jiraSOAP/ports"
)

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store := sqlite.NewSessionStore(setupTestDB(t))
	ctx := context.Background()

	created := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	sess := auth.NewSession("https://jira.example.com/", "alice", "tok-123", created)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx, "HTTPS://jira.example.com")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Endpoint != "https://jira.example.com" {
		t.Errorf("Endpoint = %s, want https://jira.example.com", got.Endpoint)
	}
	if got.Username != "alice" {
		t.Errorf("Username = %s, want alice", got.Username)
	}
	if got.Token != "tok-123" {
		t.Errorf("Token = %s, want tok-123", got.Token)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestSessionStore_Replace(t *testing.T) {
	store := sqlite.NewSessionStore(setupTestDB(t))
	ctx := context.Background()

	store.Save(ctx, auth.NewSession("https://a", "alice", "old", time.Now()))
	if err := store.Save(ctx, auth.NewSession("https://a", "bob", "new", time.Now())); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("List() len = %d, want 1", len(all))
	}
	if all[0].Token != "new" || all[0].Username != "bob" {
		t.Errorf("stored = %+v, want bob/new", all[0])
	}
}

func TestSessionStore_LoadMissing(t *testing.T) {
	store := sqlite.NewSessionStore(setupTestDB(t))

	_, err := store.Load(context.Background(), "https://nowhere")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store := sqlite.NewSessionStore(setupTestDB(t))
	ctx := context.Background()

	store.Save(ctx, auth.NewSession("https://a", "alice", "t", time.Now()))

	if err := store.Delete(ctx, "https://a/"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "https://a"); !errors.Is(err, sqlite.ErrNotFound) {
		t.Errorf("Load() after Delete error = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "https://a"); err != nil {
		t.Errorf("Delete of missing session error = %v, want nil", err)
	}
}

func TestSessionStore_PersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	ctx := context.Background()

	db, err := sqlite.OpenMigrated(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := sqlite.NewSessionStore(db).Save(ctx, auth.NewSession("https://a", "alice", "kept", time.Now())); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	db.Close()

	db, err = sqlite.OpenMigrated(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db.Close()

	got, err := sqlite.NewSessionStore(db).Load(ctx, "https://a")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Token != "kept" {
		t.Errorf("Token = %s, want kept", got.Token)
	}
}
