// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-ask/models"
)

var ErrNotFound = errors.New("question not found")

// Store keeps questions in one SQL table per subject
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database. The driver for the dialect must be
// registered by the caller.
func Open(dialect Dialect, dsn string) (*Store, error) {
	conn, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}
	return NewStore(conn, dialect), nil
}

func NewStore(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateSchema creates every subject table on the store's connection
func (s *Store) CreateSchema() error {
	return CreateSchema(s.db)
}

func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// EnsureCollection creates the subject's table if it is missing
func (s *Store) EnsureCollection(ctx context.Context, subject models.Subject) (bool, error) {
	exists, err := s.tableExists(ctx, subject.Collection())
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	if _, err := s.db.ExecContext(ctx, tableSchema(subject)); err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", subject.Collection(), err)
	}
	return true, nil
}

func (s *Store) tableExists(ctx context.Context, table string) (bool, error) {
	query := `SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`
	if s.dialect == SQLite {
		query = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`
	}

	var count int
	if err := s.db.QueryRowContext(ctx, s.rebind(query), table).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return count > 0, nil
}

// Search does a case-insensitive substring match on the question text,
// newest first. Matching runs against search_text, which Create fills
// with the Unicode lowercase of the question.
func (s *Store) Search(ctx context.Context, subject models.Subject, query string, limit int) ([]models.Question, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT id, question, answer, subject
		FROM `+subject.Collection()+`
		WHERE search_text LIKE ? ESCAPE '\'
		ORDER BY created_at DESC, id
		LIMIT ?
	`), pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", subject.Collection(), err)
	}
	defer rows.Close()

	results := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.Subject); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		results = append(results, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	return results, nil
}

func (s *Store) Create(ctx context.Context, q models.Question) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO `+q.Subject.Collection()+` (id, question, answer, subject, search_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), q.ID, q.Question, q.Answer, string(q.Subject), strings.ToLower(q.Question), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, subject models.Subject, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`
		DELETE FROM `+subject.Collection()+` WHERE id = ?
	`), id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
