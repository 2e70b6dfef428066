package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/recall-cli/recall/internal/model"
)

// CreateTask stores a new memory tagged as a task starting at status todo,
// plus any caller-supplied tags.
func (s *SQLiteStore) CreateTask(ctx context.Context, content string, tags []string) (*model.Memory, error) {
	all := append([]string{model.TagTask, model.StatusTodo}, tags...)
	return s.insert(ctx, content, all)
}

// ListTasks lists task memories, optionally restricted to one status.
func (s *SQLiteStore) ListTasks(ctx context.Context, status string, f Filter, p Page) (*ListResult, error) {
	if status != "" && !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q (valid: %s)",
			ErrValidation, status, strings.Join(model.StatusTags, ", "))
	}

	q := listQuery{}
	q.and(`EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = m.id AND t.tag = ?)`, model.TagTask)
	if status != "" {
		q.and(`EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = m.id AND t.tag = ?)`, status)
	}
	return s.runList(ctx, f, p, q)
}

// Mark moves a task to the given status, removing whichever status tag is
// currently present. The removal and addition commit atomically so a task
// never carries two status tags.
func (s *SQLiteStore) Mark(ctx context.Context, id int64, status string) (*model.Memory, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q (valid: %s)",
			ErrValidation, status, strings.Join(model.StatusTags, ", "))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	mem, err := s.get(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if !mem.IsTask() {
		return nil, fmt.Errorf("%w: memory %d has no task tag", ErrNotTask, id)
	}

	ph := strings.TrimSuffix(strings.Repeat("?,", len(model.StatusTags)), ",")
	args := []interface{}{id}
	for _, st := range model.StatusTags {
		args = append(args, st)
	}
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM tags WHERE memory_id = ? AND tag IN (%s)`, ph),
		args...); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO tags (memory_id, tag) VALUES (?, ?)`, id, status); err != nil {
		return nil, err
	}

	mem.Tags, err = s.tagsFor(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.logger.Debug("marked task", "id", id, "status", status)
	return mem, nil
}

// StatusSummary returns all open (not done) tasks plus the five most
// recent memories.
func (s *SQLiteStore) StatusSummary(ctx context.Context) (*Summary, error) {
	open := listQuery{}
	open.and(`EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = m.id AND t.tag = ?)`, model.TagTask)
	open.and(`NOT EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = m.id AND t.tag = ?)`, model.StatusDone)

	openTasks, err := s.runList(ctx, Filter{}, Page{Limit: 100}, open)
	if err != nil {
		return nil, err
	}

	recent, err := s.runList(ctx, Filter{}, Page{Tail: 5}, listQuery{})
	if err != nil {
		return nil, err
	}

	return &Summary{OpenTasks: openTasks.Memories, Recent: recent.Memories}, nil
}
