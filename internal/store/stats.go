package store

import (
	"context"
	"os"

	"github.com/recall-cli/recall/internal/model"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string         `json:"db_path"`
	DBSizeBytes int64          `json:"db_size_bytes"`
	Total       int            `json:"total_memories"`
	Active      int            `json:"active_memories"`
	Archived    int            `json:"archived_memories"`
	Embedded    int            `json:"embedded_memories"`
	Tasks       map[string]int `json:"tasks_by_status"`
	Tags        []TagCount     `json:"tags"`
}

// TagCount holds per-tag usage counts.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath, Tasks: map[string]int{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM memories`).Scan(&st.Total)
	s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tags WHERE tag = ?`, model.TagArchived).Scan(&st.Archived)
	st.Active = st.Total - st.Archived
	s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT memory_id) FROM embeddings`).Scan(&st.Embedded)

	for _, status := range model.StatusTags {
		var n int
		s.db.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM tags st
			WHERE st.tag = ?
			  AND EXISTS (SELECT 1 FROM tags t WHERE t.memory_id = st.memory_id AND t.tag = ?)`,
			status, model.TagTask).Scan(&n)
		st.Tasks[status] = n
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT tag, COUNT(*) AS cnt FROM tags
		GROUP BY tag ORDER BY cnt DESC, tag`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var tc TagCount
		rows.Scan(&tc.Tag, &tc.Count)
		st.Tags = append(st.Tags, tc)
	}

	return st, rows.Err()
}
