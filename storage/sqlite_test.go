package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redpen/redpen/model"
)

func newTestSqlite(t *testing.T) *SqliteStorage {
	t.Helper()
	storage, err := NewSqliteInMemory()
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { storage.Close() })
	return storage
}

func TestSqliteStorageSaveAndLoadTranscript(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	ts := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	messages := []model.Message{
		{ID: "m1", Role: model.RoleUser, Content: "simplify this", Timestamp: ts},
		{ID: "m2", Role: model.RoleAssistant, Content: "Split two sentences.", Timestamp: ts,
			Meta: &model.MessageMeta{Action: "simplify", Confidence: 0.9, EditStatus: model.EditPending}},
	}

	if err := storage.SaveTranscript(ctx, "test-session", messages); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	loaded, err := storage.LoadTranscript(ctx, "test-session")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded))
	}
	if loaded[0].ID != "m1" || loaded[0].Role != model.RoleUser {
		t.Errorf("first message = %+v", loaded[0])
	}
	if !loaded[0].Timestamp.Equal(ts) {
		t.Errorf("timestamp = %v, want %v", loaded[0].Timestamp, ts)
	}
	if loaded[1].Meta == nil {
		t.Fatal("assistant message meta lost")
	}
	if loaded[1].Meta.Action != "simplify" || loaded[1].Meta.EditStatus != model.EditPending {
		t.Errorf("meta = %+v", loaded[1].Meta)
	}
	if loaded[1].Meta.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", loaded[1].Meta.Confidence)
	}
}

func TestSqliteStorageSaveReplacesTranscript(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	first := []model.Message{
		{ID: "a", Role: model.RoleUser, Content: "one", Timestamp: time.Now()},
		{ID: "b", Role: model.RoleUser, Content: "two", Timestamp: time.Now()},
	}
	if err := storage.SaveTranscript(ctx, "s", first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	second := []model.Message{
		{ID: "c", Role: model.RoleUser, Content: "only", Timestamp: time.Now()},
	}
	if err := storage.SaveTranscript(ctx, "s", second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := storage.LoadTranscript(ctx, "s")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if len(loaded) != 1 || loaded[0].ID != "c" {
		t.Errorf("transcript not replaced: %+v", loaded)
	}
}

func TestSqliteStorageLoadNonexistentSession(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	loaded, err := storage.LoadTranscript(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if loaded == nil || len(loaded) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", loaded)
	}
}

func TestSqliteStorageDocumentRoundTrip(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	doc := "Hello world.\n\nGoodbye"
	if err := storage.SaveDocument(ctx, "s", doc); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	loaded, err := storage.LoadDocument(ctx, "s")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if loaded != doc {
		t.Errorf("document = %q, want %q", loaded, doc)
	}

	if got, _ := storage.LoadDocument(ctx, "missing"); got != "" {
		t.Errorf("missing session document = %q, want empty", got)
	}
}

func TestSqliteStorageDeleteRemovesEverything(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	_ = storage.SaveDocument(ctx, "s", "doc")
	_ = storage.SaveTranscript(ctx, "s", []model.Message{
		{ID: "a", Role: model.RoleUser, Content: "hi", Timestamp: time.Now()},
	})

	if err := storage.Delete(ctx, "s"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := storage.Exists(ctx, "s")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("session still exists after delete")
	}

	loaded, err := storage.LoadTranscript(ctx, "s")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("messages survived delete: %d", len(loaded))
	}
}

func TestSqliteStorageListSessions(t *testing.T) {
	storage := newTestSqlite(t)
	ctx := context.Background()

	_ = storage.SaveDocument(ctx, "a", "first")
	_ = storage.SaveDocument(ctx, "b", "second")

	sessions, err := storage.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}
