package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/recall-cli/recall/internal/model"
)

// whereClause builds the SQL predicate for a Filter over alias m.
func (f Filter) whereClause() (where []string, args []interface{}) {
	if !f.IncludeArchived {
		where = append(where,
			`NOT EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = m.id AND t.tag = ?)`)
		args = append(args, model.TagArchived)
	}
	if len(f.Tags) > 0 {
		ph := strings.TrimSuffix(strings.Repeat("?,", len(f.Tags)), ",")
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = m.id AND t.tag IN (%s))`, ph))
		for _, tag := range f.Tags {
			args = append(args, tag)
		}
	}
	if f.From != "" {
		where = append(where, `m.created_at >= ?`)
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, `m.created_at <= ?`)
		args = append(args, f.To)
	}
	if len(where) == 0 {
		where = append(where, "1=1")
	}
	return where, args
}

// listQuery describes one listing: filter predicate, extra joins, and extra
// conditions contributed by the caller (full-text tokens, task tags).
type listQuery struct {
	joins string
	where []string
	args  []interface{}
}

func (q *listQuery) and(cond string, args ...interface{}) {
	q.where = append(q.where, cond)
	q.args = append(q.args, args...)
}

// runList executes the shared count+page pipeline. Rows come back in
// ascending chronological order regardless of the window mode; tail windows
// are selected descending and reversed.
func (s *SQLiteStore) runList(ctx context.Context, f Filter, p Page, q listQuery) (*ListResult, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}

	where, args := f.whereClause()
	where = append(where, q.where...)
	args = append(args, q.args...)
	cond := strings.Join(where, " AND ")

	var total int
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM memories m %s WHERE %s`, q.joins, cond)
	if err := s.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, err
	}

	order := "ASC"
	window := p.Limit
	if p.Tail > 0 {
		order = "DESC"
		window = p.Tail
	}

	pageSQL := fmt.Sprintf(`
		SELECT m.id, m.content, m.created_at,
		       EXISTS(SELECT 1 FROM embeddings e WHERE e.memory_id = m.id)
		FROM memories m %s
		WHERE %s
		ORDER BY m.created_at %s, m.id %s
		LIMIT ? OFFSET ?`, q.joins, cond, order, order)
	pageArgs := append(append([]interface{}{}, args...), window, p.Offset)

	rows, err := s.db.QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memories []model.Memory
	for rows.Next() {
		var m model.Memory
		var createdAt string
		if err := rows.Scan(&m.ID, &m.Content, &createdAt, &m.HasVector); err != nil {
			return nil, err
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		memories = append(memories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range memories {
		memories[i].Tags, err = s.tagsFor(ctx, s.db, memories[i].ID)
		if err != nil {
			return nil, err
		}
	}

	if p.Tail > 0 {
		for i, j := 0, len(memories)-1; i < j; i, j = i+1, j-1 {
			memories[i], memories[j] = memories[j], memories[i]
		}
	}

	remaining := total - p.Offset - len(memories)
	if remaining < 0 {
		remaining = 0
	}

	return &ListResult{Memories: memories, Total: total, Remaining: remaining}, nil
}

// List returns memories matching the filter in chronological order.
func (s *SQLiteStore) List(ctx context.Context, f Filter, p Page) (*ListResult, error) {
	return s.runList(ctx, f, p, listQuery{})
}
