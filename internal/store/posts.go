// Package store is the governance post document store. Posts land here from
// the forum scrapers; the analysis pipeline only ever reads.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mkrv/govimpact/internal/model"
)

// DB represents a database connection.
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters.
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection and ensures the schema exists.
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS governance_posts (
			post_id TEXT PRIMARY KEY,
			protocol TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			discussion_link TEXT
		)
	`)
	return err
}

// ListPosts returns every stored post, newest first.
func (db *DB) ListPosts(ctx context.Context) ([]model.Post, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT post_id, protocol, created_at, title,
		       COALESCE(description, ''), COALESCE(discussion_link, '')
		FROM governance_posts
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.PostID, &p.Protocol, &p.Timestamp, &p.Title, &p.Description, &p.DiscussionLink); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		p.Timestamp = p.Timestamp.UTC()
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// SavePosts upserts a batch of posts keyed by post_id.
func (db *DB) SavePosts(ctx context.Context, posts []model.Post) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO governance_posts (
			post_id, protocol, created_at, title, description, discussion_link
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (post_id)
		DO UPDATE SET
			protocol = EXCLUDED.protocol,
			created_at = EXCLUDED.created_at,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			discussion_link = EXCLUDED.discussion_link
	`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, p := range posts {
		if _, err := stmt.ExecContext(ctx, p.PostID, p.Protocol, p.Timestamp, p.Title, p.Description, p.DiscussionLink); err != nil {
			return fmt.Errorf("upsert post %s: %w", p.PostID, err)
		}
	}
	return tx.Commit()
}

// Protocols returns the distinct protocol names present in the store.
func (db *DB) Protocols(ctx context.Context) ([]string, error) {
	rows, err := db.QueryContext(ctx, `SELECT DISTINCT protocol FROM governance_posts ORDER BY protocol`)
	if err != nil {
		return nil, fmt.Errorf("query protocols: %w", err)
	}
	defer rows.Close()

	var protocols []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan protocol: %w", err)
		}
		protocols = append(protocols, p)
	}
	return protocols, rows.Err()
}
