package storage

import (
	"context"
	"testing"
	"time"

	"github.com/redpen/redpen/model"
)

func sampleTranscript() []model.Message {
	return []model.Message{
		{ID: "m1", Role: model.RoleUser, Content: "make it formal", Timestamp: time.Now().UTC()},
		{ID: "m2", Role: model.RoleAssistant, Content: "Adjusted the tone.", Timestamp: time.Now().UTC(),
			Meta: &model.MessageMeta{Action: "tone", Confidence: 0.9, EditStatus: model.EditPending}},
	}
}

func TestInMemoryStorageSaveAndLoadTranscript(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	if err := storage.SaveTranscript(ctx, "test-session", sampleTranscript()); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	loaded, err := storage.LoadTranscript(ctx, "test-session")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(loaded))
	}
	if loaded[0].Content != "make it formal" {
		t.Errorf("expected 'make it formal', got '%s'", loaded[0].Content)
	}
	if loaded[1].Meta == nil || loaded[1].Meta.Action != "tone" {
		t.Errorf("message meta not preserved: %+v", loaded[1].Meta)
	}
}

func TestInMemoryStorageLoadNonexistentSession(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	loaded, err := storage.LoadTranscript(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if len(loaded) != 0 {
		t.Errorf("expected empty slice, got %d messages", len(loaded))
	}

	doc, err := storage.LoadDocument(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if doc != "" {
		t.Errorf("expected empty document, got %q", doc)
	}
}

func TestInMemoryStorageDocument(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	if err := storage.SaveDocument(ctx, "test-session", "Hello world."); err != nil {
		t.Fatalf("SaveDocument failed: %v", err)
	}

	doc, err := storage.LoadDocument(ctx, "test-session")
	if err != nil {
		t.Fatalf("LoadDocument failed: %v", err)
	}
	if doc != "Hello world." {
		t.Errorf("expected 'Hello world.', got %q", doc)
	}
}

func TestInMemoryStorageDeleteSession(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	if err := storage.SaveTranscript(ctx, "test-session", sampleTranscript()); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	exists, err := storage.Exists(ctx, "test-session")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("expected session to exist")
	}

	if err := storage.Delete(ctx, "test-session"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err = storage.Exists(ctx, "test-session")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected session to be gone")
	}
}

func TestInMemoryStorageListSessions(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	_ = storage.SaveDocument(ctx, "a", "doc a")
	_ = storage.SaveDocument(ctx, "b", "doc b")

	sessions, err := storage.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("expected 2 sessions, got %d", len(sessions))
	}
}

func TestInMemoryStorageCopiesOnSaveAndLoad(t *testing.T) {
	storage := NewInMemoryStorage()
	ctx := context.Background()

	original := sampleTranscript()
	if err := storage.SaveTranscript(ctx, "s", original); err != nil {
		t.Fatalf("SaveTranscript failed: %v", err)
	}

	// Mutating the caller's slice must not affect stored data.
	original[0].Content = "mutated"

	loaded, err := storage.LoadTranscript(ctx, "s")
	if err != nil {
		t.Fatalf("LoadTranscript failed: %v", err)
	}
	if loaded[0].Content != "make it formal" {
		t.Errorf("stored data was mutated externally: %q", loaded[0].Content)
	}
}
