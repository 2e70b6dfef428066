package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/recall-cli/recall/internal/model"
)

func TestEditCreatesNewVersion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	old, _ := s.Add(ctx, "draft", []string{"work", "notes"})

	edited, err := s.Edit(ctx, old.ID, "final")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.ID == old.ID {
		t.Fatal("edit must produce a new id")
	}
	if edited.Content != "final" {
		t.Errorf("expected new content, got %q", edited.Content)
	}
	// Tags carry over without archived.
	if !reflect.DeepEqual(edited.Tags, []string{"notes", "work"}) {
		t.Errorf("expected [notes work], got %v", edited.Tags)
	}

	// The original is untouched except for the archived tag.
	got, err := s.Get(ctx, old.ID)
	if err != nil {
		t.Fatalf("old version must stay retrievable: %v", err)
	}
	if got.Content != "draft" {
		t.Errorf("original content mutated: %q", got.Content)
	}
	if !got.Archived() {
		t.Error("original must be archived after edit")
	}
}

func TestEditArchivedMemory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	old, _ := s.Add(ctx, "draft", []string{"work"})
	s.Archive(ctx, old.ID)

	edited, err := s.Edit(ctx, old.ID, "revived")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	// The archived marker is not copied to the new version.
	if edited.Archived() {
		t.Error("new version must not inherit archived")
	}
	if !reflect.DeepEqual(edited.Tags, []string{"work"}) {
		t.Errorf("expected [work], got %v", edited.Tags)
	}
}

func TestEditNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Edit(ctx, 99, "whatever"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestEditEmbedsNewVersion(t *testing.T) {
	ctx := context.Background()
	s := newSimilarStore(t)

	old, _ := s.Add(ctx, "apples", nil)
	edited, err := s.Edit(ctx, old.ID, "oranges")
	if err != nil {
		t.Fatal(err)
	}
	if !edited.HasVector {
		t.Error("expected edit to embed the new version")
	}
}

func TestArchiveRestoreCycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mem, _ := s.Add(ctx, "note", []string{"keep"})

	already, err := s.Archive(ctx, mem.ID)
	if err != nil || already {
		t.Fatalf("first archive: already=%v err=%v", already, err)
	}
	already, err = s.Archive(ctx, mem.ID)
	if err != nil {
		t.Fatalf("re-archive: %v", err)
	}
	if !already {
		t.Error("expected re-archive to report already archived")
	}

	res, _ := s.List(ctx, Filter{}, Page{})
	if res.Total != 0 {
		t.Errorf("archived memory visible in default listing")
	}

	was, err := s.Restore(ctx, mem.ID)
	if err != nil || !was {
		t.Fatalf("restore: was=%v err=%v", was, err)
	}
	was, err = s.Restore(ctx, mem.ID)
	if err != nil {
		t.Fatalf("re-restore: %v", err)
	}
	if was {
		t.Error("expected re-restore to report not archived")
	}

	// The rest of the tag set survives the cycle.
	got, _ := s.Get(ctx, mem.ID)
	if !reflect.DeepEqual(got.Tags, []string{"keep"}) {
		t.Errorf("expected [keep], got %v", got.Tags)
	}
	if got.HasTag(model.TagArchived) {
		t.Error("archived tag must be gone after restore")
	}
}

func TestArchiveNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Archive(ctx, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Restore(ctx, 5); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
