package store

import (
	"context"
	"errors"
	"testing"
)

func TestFindTokenConjunction(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Add(ctx, "Go is a compiled language with goroutines", nil)
	s.Add(ctx, "Python is an interpreted language", nil)
	s.Add(ctx, "Rust has a borrow checker", nil)

	// Single token.
	res, err := s.Find(ctx, "language", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Fatalf("expected 2 results, got %d", res.Total)
	}

	// Every token must occur; "compiled language" matches only Go.
	res, err = s.Find(ctx, "compiled language", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 {
		t.Fatalf("expected 1 result, got %d", res.Total)
	}
	if res.Memories[0].Content[:2] != "Go" {
		t.Errorf("wrong match: %q", res.Memories[0].Content)
	}

	// Conjunction, not OR: one missing token kills the match.
	res, _ = s.Find(ctx, "language borrow", Filter{}, Page{})
	if res.Total != 0 {
		t.Fatalf("expected 0 results, got %d", res.Total)
	}
}

func TestFindCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Add(ctx, "Deploy checklist for the API gateway", nil)

	res, err := s.Find(ctx, "DEPLOY api", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 1 {
		t.Errorf("expected case-insensitive match, total %d", res.Total)
	}
}

func TestFindSubstringNotWord(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.Add(ctx, "rollback procedure", nil)

	// Substring containment, no word boundaries.
	res, _ := s.Find(ctx, "roll", Filter{}, Page{})
	if res.Total != 1 {
		t.Errorf("expected substring match, total %d", res.Total)
	}
}

func TestFindChronologicalOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	a, _ := s.Add(ctx, "meeting notes one", nil)
	b, _ := s.Add(ctx, "meeting notes two", nil)

	res, _ := s.Find(ctx, "meeting", Filter{}, Page{})
	got := ids(res)
	if len(got) != 2 || got[0] != a.ID || got[1] != b.ID {
		t.Errorf("expected chronological [%d %d], got %v", a.ID, b.ID, got)
	}
}

func TestFindRespectsFilters(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tagged, _ := s.Add(ctx, "shared word", []string{"work"})
	s.Add(ctx, "shared word untagged", nil)
	archived, _ := s.Add(ctx, "shared word archived", nil)
	s.Archive(ctx, archived.ID)

	res, _ := s.Find(ctx, "shared", Filter{Tags: []string{"work"}}, Page{})
	if got := ids(res); len(got) != 1 || got[0] != tagged.ID {
		t.Errorf("expected tag filter to apply, got %v", got)
	}

	res, _ = s.Find(ctx, "shared", Filter{}, Page{})
	if res.Total != 2 {
		t.Errorf("expected archived excluded, total %d", res.Total)
	}

	res, _ = s.Find(ctx, "shared", Filter{IncludeArchived: true}, Page{})
	if res.Total != 3 {
		t.Errorf("expected archived included, total %d", res.Total)
	}
}

func TestFindEmptyQuery(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Find(ctx, "   ", Filter{}, Page{}); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestFindWorksWithoutProvider(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t) // no embedder configured

	s.Add(ctx, "keyword-only operation", nil)

	res, err := s.Find(ctx, "keyword", Filter{}, Page{})
	if err != nil {
		t.Fatalf("find without provider: %v", err)
	}
	if res.Total != 1 {
		t.Errorf("expected 1, got %d", res.Total)
	}
}
