package store

import (
	"context"
	"fmt"
	"strings"
)

// Find returns memories whose indexed content contains every
// whitespace-split token of query as a case-insensitive substring.
// Results come back in chronological order, not relevance order.
func (s *SQLiteStore) Find(ctx context.Context, query string, f Filter, p Page) (*ListResult, error) {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: search query is empty", ErrValidation)
	}

	q := listQuery{joins: `JOIN content_index ci ON ci.memory_id = m.id`}
	for _, tok := range tokens {
		// Exact substring containment; instr avoids LIKE wildcard escaping.
		q.and(`instr(ci.text_lc, ?) > 0`, strings.ToLower(tok))
	}

	res, err := s.runList(ctx, f, p, q)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("full-text search", "tokens", len(tokens), "total", res.Total)
	return res, nil
}
