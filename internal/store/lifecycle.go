package store

import (
	"context"
	"fmt"

	"github.com/recall-cli/recall/internal/model"
)

// Edit archives the memory and inserts a new version carrying its content.
// The original row is never mutated; it only gains the archived tag. The
// new memory receives the old tag set minus archived, plus a fresh
// embedding when a provider is configured. The whole sequence commits as
// one transaction.
func (s *SQLiteStore) Edit(ctx context.Context, id int64, content string) (*model.Memory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	old, err := s.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	var carried []string
	for _, t := range old.Tags {
		if t != model.TagArchived {
			carried = append(carried, t)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO tags (memory_id, tag) VALUES (?, ?)`,
		id, model.TagArchived); err != nil {
		return nil, fmt.Errorf("archive old version: %w", err)
	}

	mem, err := s.insertTx(ctx, tx, content, carried)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.logger.Debug("edited memory", "old", id, "new", mem.ID)
	return mem, nil
}

// Archive soft-deletes a memory by tagging it archived. Reports whether it
// was already archived; either way is success.
func (s *SQLiteStore) Archive(ctx context.Context, id int64) (bool, error) {
	changed, err := s.AddTag(ctx, id, model.TagArchived)
	if err != nil {
		return false, err
	}
	return !changed, nil
}

// Restore removes the archived tag. Reports whether the memory was
// archived; restoring a non-archived memory is a no-op success.
func (s *SQLiteStore) Restore(ctx context.Context, id int64) (bool, error) {
	return s.RemoveTag(ctx, id, model.TagArchived)
}
