package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/recall-cli/recall/internal/embedding"
	"github.com/recall-cli/recall/internal/model"
)

// packVector encodes a float32 vector as little-endian bytes.
func packVector(v embedding.Vector) []byte {
	buf := make([]byte, 4*len(v))
	for i, x := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(x))
	}
	return buf
}

// unpackVector decodes a little-endian float32 vector.
func unpackVector(b []byte) embedding.Vector {
	v := make(embedding.Vector, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

// storeVector upserts the memory's embedding for the current model.
func (s *SQLiteStore) storeVector(ctx context.Context, q querier, id int64, vec embedding.Vector) error {
	if s.embedder != nil && len(vec) != s.embedder.Dims() {
		return fmt.Errorf("embedding dimension %d, want %d", len(vec), s.embedder.Dims())
	}
	_, err := q.ExecContext(ctx,
		`INSERT OR REPLACE INTO embeddings (memory_id, model, dims, vector) VALUES (?, ?, ?, ?)`,
		id, s.embedder.Model(), len(vec), packVector(vec))
	if err != nil {
		return fmt.Errorf("store embedding: %w", err)
	}
	return nil
}

// Similar ranks filter-matching memories by cosine similarity to the query
// text. The scan is linear over every eligible vector; scores are dot
// products of pre-normalized vectors. Ties keep insertion order.
func (s *SQLiteStore) Similar(ctx context.Context, query string, f Filter, p Page) (*SimilarResult, error) {
	p, err := p.normalize()
	if err != nil {
		return nil, err
	}
	if s.embedder == nil {
		return nil, ErrNoEmbedder
	}
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: query is empty", ErrValidation)
	}

	q, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	where, args := f.whereClause()
	cond := strings.Join(where, " AND ")
	args = append(args, s.embedder.Model())

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT m.id, m.content, m.created_at, e.vector
		FROM memories m
		JOIN embeddings e ON e.memory_id = m.id
		WHERE %s AND e.model = ?
		ORDER BY m.id`, cond), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scored []model.Scored
	for rows.Next() {
		var m model.Memory
		var createdAt string
		var blob []byte
		if err := rows.Scan(&m.ID, &m.Content, &createdAt, &blob); err != nil {
			return nil, err
		}
		m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		m.HasVector = true
		scored = append(scored, model.Scored{
			Memory: m,
			Score:  embedding.Dot(q, unpackVector(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.logger.Debug("similarity scan", "candidates", len(scored))

	// Stable sort over rows already in insertion order: ties keep it.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	total := len(scored)
	page := window(scored, p)
	for i := range page {
		page[i].Tags, err = s.tagsFor(ctx, s.db, page[i].ID)
		if err != nil {
			return nil, err
		}
	}

	remaining := total - p.Offset - len(page)
	if remaining < 0 {
		remaining = 0
	}

	return &SimilarResult{Results: page, Total: total, Remaining: remaining}, nil
}

// window slices one page out of the fully sorted result set.
func window(scored []model.Scored, p Page) []model.Scored {
	n := len(scored)
	if p.Tail > 0 {
		// Last Tail entries, shifted back by Offset from the end.
		end := n - p.Offset
		if end < 0 {
			end = 0
		}
		start := end - p.Tail
		if start < 0 {
			start = 0
		}
		return scored[start:end]
	}
	start := p.Offset
	if start > n {
		start = n
	}
	end := start + p.Limit
	if end > n {
		end = n
	}
	return scored[start:end]
}

// ReembedAll embeds every memory lacking a vector for the current model.
// It is the only sanctioned migration path after a model change.
func (s *SQLiteStore) ReembedAll(ctx context.Context) (int, error) {
	if s.embedder == nil {
		return 0, ErrNoEmbedder
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.content
		FROM memories m
		LEFT JOIN embeddings e ON e.memory_id = m.id AND e.model = ?
		WHERE e.memory_id IS NULL
		ORDER BY m.id`, s.embedder.Model())
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	type pending struct {
		id      int64
		content string
	}
	var todo []pending
	for rows.Next() {
		var p pending
		if err := rows.Scan(&p.id, &p.content); err != nil {
			return 0, err
		}
		todo = append(todo, p)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	count := 0
	for _, p := range todo {
		vec, err := s.embedder.Embed(ctx, p.content)
		if err != nil {
			return count, fmt.Errorf("embed memory %d: %w", p.id, err)
		}
		if err := s.storeVector(ctx, s.db, p.id, vec); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Debug("reembedded memories", "count", count, "model", s.embedder.Model())
	return count, nil
}
