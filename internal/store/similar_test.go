package store

import (
	"context"
	"errors"
	"testing"

	"github.com/recall-cli/recall/internal/embedding"
)

func newSimilarStore(t *testing.T) *SQLiteStore {
	t.Helper()
	e := &stubEmbedder{vecs: map[string]embedding.Vector{
		"apples":     {1, 0, 0},
		"oranges":    {0.9, 0.1, 0},
		"databases":  {0, 0, 1},
		"fruit":      {1, 0.05, 0},
		"irrelevant": {0, 1, 0},
	}}
	return newTestStore(t, WithEmbedder(e))
}

func scoredIDs(res *SimilarResult) []int64 {
	var out []int64
	for _, r := range res.Results {
		out = append(out, r.ID)
	}
	return out
}

func TestSimilarRanking(t *testing.T) {
	ctx := context.Background()
	s := newSimilarStore(t)

	db, _ := s.Add(ctx, "databases", nil)
	or, _ := s.Add(ctx, "oranges", nil)
	ap, _ := s.Add(ctx, "apples", nil)

	res, err := s.Similar(ctx, "fruit", Filter{}, Page{})
	if err != nil {
		t.Fatalf("similar: %v", err)
	}
	got := scoredIDs(res)
	if len(got) != 3 || got[0] != ap.ID || got[1] != or.ID || got[2] != db.ID {
		t.Errorf("expected [%d %d %d], got %v", ap.ID, or.ID, db.ID, got)
	}
	if res.Results[0].Score <= res.Results[1].Score {
		t.Error("expected strictly descending scores for distinct vectors")
	}
	if res.Total != 3 {
		t.Errorf("expected total 3, got %d", res.Total)
	}
}

func TestSimilarTiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newSimilarStore(t)

	first, _ := s.Add(ctx, "apples", nil)
	second, _ := s.Add(ctx, "apples", nil)

	res, err := s.Similar(ctx, "fruit", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	got := scoredIDs(res)
	if len(got) != 2 || got[0] != first.ID || got[1] != second.ID {
		t.Errorf("expected tie order [%d %d], got %v", first.ID, second.ID, got)
	}
}

func TestSimilarPaginationAfterSort(t *testing.T) {
	ctx := context.Background()
	s := newSimilarStore(t)

	s.Add(ctx, "databases", nil)
	or, _ := s.Add(ctx, "oranges", nil)
	s.Add(ctx, "apples", nil)

	// Offset applies to the fully sorted set: skip the best match.
	res, err := s.Similar(ctx, "fruit", Filter{}, Page{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatal(err)
	}
	got := scoredIDs(res)
	if len(got) != 1 || got[0] != or.ID {
		t.Errorf("expected second-best [%d], got %v", or.ID, got)
	}
	if res.Total != 3 || res.Remaining != 1 {
		t.Errorf("expected total 3 remaining 1, got %d %d", res.Total, res.Remaining)
	}
}

func TestSimilarRespectsFilters(t *testing.T) {
	ctx := context.Background()
	s := newSimilarStore(t)

	ap, _ := s.Add(ctx, "apples", []string{"food"})
	s.Add(ctx, "oranges", nil)
	arch, _ := s.Add(ctx, "fruit", nil)
	s.Archive(ctx, arch.ID)

	res, _ := s.Similar(ctx, "fruit", Filter{Tags: []string{"food"}}, Page{})
	if got := scoredIDs(res); len(got) != 1 || got[0] != ap.ID {
		t.Errorf("expected tag-filtered [%d], got %v", ap.ID, got)
	}

	res, _ = s.Similar(ctx, "fruit", Filter{}, Page{})
	if res.Total != 2 {
		t.Errorf("expected archived excluded from scan, total %d", res.Total)
	}
}

func TestSimilarWithoutProvider(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Similar(ctx, "anything", Filter{}, Page{}); !errors.Is(err, ErrNoEmbedder) {
		t.Errorf("expected ErrNoEmbedder, got %v", err)
	}
}

func TestReembedAll(t *testing.T) {
	ctx := context.Background()
	dbPath := t.TempDir() + "/test.db"

	// Seed without a provider: no vectors stored.
	s, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	s.Add(ctx, "apples", nil)
	s.Add(ctx, "databases", nil)
	s.Close()

	e := &stubEmbedder{vecs: map[string]embedding.Vector{
		"apples":    {1, 0, 0},
		"databases": {0, 0, 1},
		"fruit":     {1, 0.05, 0},
	}}
	s2, err := Open(dbPath, WithEmbedder(e))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	// Nothing has a vector yet, so similar sees no candidates.
	res, err := s2.Similar(ctx, "fruit", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 {
		t.Fatalf("expected 0 candidates before reembed, got %d", res.Total)
	}

	n, err := s2.ReembedAll(ctx)
	if err != nil {
		t.Fatalf("reembed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 reembedded, got %d", n)
	}

	res, err = s2.Similar(ctx, "fruit", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 2 {
		t.Errorf("expected 2 candidates after reembed, got %d", res.Total)
	}

	// Idempotent: a second pass has nothing left to do.
	n, err = s2.ReembedAll(ctx)
	if err != nil || n != 0 {
		t.Errorf("expected 0 on second pass, got %d %v", n, err)
	}
}

func TestSimilarModelScoping(t *testing.T) {
	ctx := context.Background()
	dbPath := t.TempDir() + "/test.db"

	v1 := &stubEmbedder{model: "stub-v1", vecs: map[string]embedding.Vector{
		"apples": {1, 0, 0}, "fruit": {1, 0.05, 0},
	}}
	s, err := Open(dbPath, WithEmbedder(v1))
	if err != nil {
		t.Fatal(err)
	}
	s.Add(ctx, "apples", nil)
	s.Close()

	// Under a different model, old vectors must not be compared.
	v2 := &stubEmbedder{model: "stub-v2", vecs: v1.vecs}
	s2, err := Open(dbPath, WithEmbedder(v2))
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()

	res, err := s2.Similar(ctx, "fruit", Filter{}, Page{})
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 0 {
		t.Fatalf("expected stale-model vectors to be ignored, total %d", res.Total)
	}

	// Re-embed is the sanctioned migration path.
	if n, err := s2.ReembedAll(ctx); err != nil || n != 1 {
		t.Fatalf("expected 1 reembedded, got %d %v", n, err)
	}
	res, _ = s2.Similar(ctx, "fruit", Filter{}, Page{})
	if res.Total != 1 {
		t.Errorf("expected 1 candidate after migration, got %d", res.Total)
	}
}
