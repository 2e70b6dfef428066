package store

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recall-cli/recall/internal/model"
)

// Export is a portable snapshot of the store, archived memories included.
type Export struct {
	ID         string         `json:"id"`
	ExportedAt time.Time      `json:"exported_at"`
	Memories   []model.Memory `json:"memories"`
}

// ExportAll snapshots every memory with its tags.
func (s *SQLiteStore) ExportAll(ctx context.Context) (*Export, error) {
	res, err := s.runList(ctx, Filter{IncludeArchived: true}, Page{Limit: 1 << 30}, listQuery{})
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Export{
		ID:         ulid.MustNew(ulid.Timestamp(now), s.entropy).String(),
		ExportedAt: now,
		Memories:   res.Memories,
	}, nil
}

// Import re-adds content and tags through the normal write path. Imported
// memories get fresh ids and, when a provider is configured, fresh
// embeddings. Returns the number imported.
func (s *SQLiteStore) Import(ctx context.Context, memories []model.Memory) (int, error) {
	imported := 0
	for _, m := range memories {
		if _, err := s.insert(ctx, m.Content, m.Tags); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}
