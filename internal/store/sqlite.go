package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"github.com/recall-cli/recall/internal/embedding"
	"github.com/recall-cli/recall/internal/model"
)

// SQLiteStore implements Store using a single SQLite file.
type SQLiteStore struct {
	db       *sql.DB
	embedder embedding.Embedder
	logger   *log.Logger
	entropy  *rand.Rand
}

// Option configures a SQLiteStore.
type Option func(*SQLiteStore)

// WithEmbedder sets the embedding provider. Without one, keyword and
// listing operations work normally and similarity operations fail.
func WithEmbedder(e embedding.Embedder) Option {
	return func(s *SQLiteStore) { s.embedder = e }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *SQLiteStore) { s.logger = l }
}

// Open opens or creates a SQLite database at the given path.
func Open(dbPath string, opts ...Option) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		logger:  log.New(io.Discard),
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.logger.Debug("opened database", "path", dbPath)

	return s, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS memories (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		content     TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_memories_created ON memories(created_at);

	CREATE TABLE IF NOT EXISTS tags (
		memory_id  INTEGER NOT NULL REFERENCES memories(id),
		tag        TEXT NOT NULL,
		PRIMARY KEY (memory_id, tag)
	);
	CREATE INDEX IF NOT EXISTS idx_tags_tag ON tags(tag);

	CREATE TABLE IF NOT EXISTS content_index (
		memory_id  INTEGER PRIMARY KEY REFERENCES memories(id),
		text_lc    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS embeddings (
		memory_id  INTEGER PRIMARY KEY REFERENCES memories(id),
		model      TEXT NOT NULL,
		dims       INTEGER NOT NULL,
		vector     BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_embeddings_model ON embeddings(model);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Keep the lowercase shadow of content in sync on insert. Content is
	// immutable, so no update or delete triggers exist.
	s.db.Exec(`CREATE TRIGGER IF NOT EXISTS memories_ai AFTER INSERT ON memories BEGIN
		INSERT INTO content_index(memory_id, text_lc) VALUES (new.id, lower(new.content));
	END`)

	// Upgrade path: embeddings written before model tracking gain the column.
	s.db.Exec(`ALTER TABLE embeddings ADD COLUMN model TEXT NOT NULL DEFAULT ''`)

	// Backfill the content index for rows inserted before the trigger existed.
	_, err := s.db.Exec(`INSERT OR IGNORE INTO content_index(memory_id, text_lc)
		SELECT id, lower(content) FROM memories`)
	return err
}

// querier abstracts *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Add stores a new memory, tags it, and embeds it when a provider is
// configured. All steps commit atomically.
func (s *SQLiteStore) Add(ctx context.Context, content string, tags []string) (*model.Memory, error) {
	return s.insert(ctx, content, tags)
}

func (s *SQLiteStore) insert(ctx context.Context, content string, tags []string) (*model.Memory, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	mem, err := s.insertTx(ctx, tx, content, tags)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	s.logger.Debug("stored memory", "id", mem.ID, "tags", len(mem.Tags))
	return mem, nil
}

// insertTx performs the insert+tag+embed sequence inside an open transaction,
// so edit can compose it with the archival of the prior version.
func (s *SQLiteStore) insertTx(ctx context.Context, tx *sql.Tx, content string, tags []string) (*model.Memory, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is empty", ErrValidation)
	}

	now := time.Now().UTC()
	createdAt := now.Format(time.RFC3339)

	res, err := tx.ExecContext(ctx,
		`INSERT INTO memories (content, created_at) VALUES (?, ?)`, content, createdAt)
	if err != nil {
		return nil, fmt.Errorf("insert memory: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO tags (memory_id, tag) VALUES (?, ?)`, id, tag); err != nil {
			return nil, fmt.Errorf("insert tag: %w", err)
		}
	}

	mem := &model.Memory{ID: id, Content: content, CreatedAt: now}
	mem.Tags, err = s.tagsFor(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if s.embedder != nil {
		vec, err := s.embedder.Embed(ctx, content)
		if err != nil {
			return nil, fmt.Errorf("embed memory %d: %w", id, err)
		}
		if err := s.storeVector(ctx, tx, id, vec); err != nil {
			return nil, err
		}
		mem.HasVector = true
	}

	return mem, nil
}

// Get retrieves a memory by id.
func (s *SQLiteStore) Get(ctx context.Context, id int64) (*model.Memory, error) {
	return s.get(ctx, s.db, id)
}

func (s *SQLiteStore) get(ctx context.Context, q querier, id int64) (*model.Memory, error) {
	var m model.Memory
	var createdAt string
	err := q.QueryRowContext(ctx,
		`SELECT m.id, m.content, m.created_at,
		        EXISTS(SELECT 1 FROM embeddings e WHERE e.memory_id = m.id)
		 FROM memories m WHERE m.id = ?`, id).
		Scan(&m.ID, &m.Content, &createdAt, &m.HasVector)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	m.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	m.Tags, err = s.tagsFor(ctx, q, id)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// tagsFor returns the memory's tag set in lexicographic order.
func (s *SQLiteStore) tagsFor(ctx context.Context, q querier, id int64) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT tag FROM tags WHERE memory_id = ? ORDER BY tag`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// exists reports whether a memory id is present.
func (s *SQLiteStore) exists(ctx context.Context, q querier, id int64) error {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM memories WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return err
}

// AddTag idempotently adds a tag. Reports whether the tag set changed.
func (s *SQLiteStore) AddTag(ctx context.Context, id int64, tag string) (bool, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, fmt.Errorf("%w: tag is empty", ErrValidation)
	}
	if err := s.exists(ctx, s.db, id); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO tags (memory_id, tag) VALUES (?, ?)`, id, tag)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveTag idempotently removes a tag. Reports whether the tag was present.
func (s *SQLiteStore) RemoveTag(ctx context.Context, id int64, tag string) (bool, error) {
	if err := s.exists(ctx, s.db, id); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM tags WHERE memory_id = ? AND tag = ?`, id, tag)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Close closes the store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
