package store

import (
	"database/sql"
	"errors"
	"time"
)

// Fact represents a cached fact text keyed by topic.
type Fact struct {
	Topic     string
	Content   string
	FetchedAt time.Time
}

// FactRepository provides cache operations for fetched facts.
type FactRepository struct {
	db *sql.DB
}

// Facts returns the fact repository for this store.
func (s *Store) Facts() *FactRepository {
	return &FactRepository{db: s.db}
}

// Get retrieves a cached fact by topic.
func (r *FactRepository) Get(topic string) (*Fact, error) {
	f := &Fact{}

	err := r.db.QueryRow(
		`SELECT topic, content, fetched_at FROM facts WHERE topic = ?`,
		topic,
	).Scan(&f.Topic, &f.Content, &f.FetchedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return f, nil
}

// Put stores a fact, replacing any earlier entry for the same topic.
func (r *FactRepository) Put(topic, content string) error {
	_, err := r.db.Exec(
		`INSERT INTO facts (topic, content, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(topic) DO UPDATE SET content = excluded.content, fetched_at = excluded.fetched_at`,
		topic, content, time.Now(),
	)
	return err
}

// Purge removes all cached facts.
func (r *FactRepository) Purge() error {
	_, err := r.db.Exec(`DELETE FROM facts`)
	return err
}
