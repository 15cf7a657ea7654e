package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Item represents a selectable card stored in the database.
type Item struct {
	ID        string
	Title     string
	ImageRef  string
	Position  int
	CreatedAt time.Time
}

// ItemRepository provides CRUD operations for catalog items.
type ItemRepository struct {
	db *sql.DB
}

// Items returns the item repository for this store.
func (s *Store) Items() *ItemRepository {
	return &ItemRepository{db: s.db}
}

// Create inserts a new item into the database.
func (r *ItemRepository) Create(it *Item) error {
	it.CreatedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO items (id, title, image_ref, position, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		it.ID, it.Title, it.ImageRef, it.Position, it.CreatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves an item by its ID.
func (r *ItemRepository) GetByID(id string) (*Item, error) {
	it := &Item{}

	err := r.db.QueryRow(
		`SELECT id, title, image_ref, position, created_at
		 FROM items WHERE id = ?`,
		id,
	).Scan(&it.ID, &it.Title, &it.ImageRef, &it.Position, &it.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return it, nil
}

// List retrieves all items ordered by their catalog position.
func (r *ItemRepository) List() ([]*Item, error) {
	rows, err := r.db.Query(
		`SELECT id, title, image_ref, position, created_at
		 FROM items ORDER BY position ASC, created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it := &Item{}
		if err := rows.Scan(&it.ID, &it.Title, &it.ImageRef, &it.Position, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Delete removes an item from the database by its ID.
func (r *ItemRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Count returns the number of items in the catalog.
func (r *ItemRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM items`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Seed inserts the given items if the catalog is empty. It is a no-op when
// any item already exists, so startup seeding never clobbers admin edits.
func (r *ItemRepository) Seed(items []*Item) error {
	n, err := r.Count()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	for i, it := range items {
		it.Position = i
		if err := r.Create(it); err != nil {
			return err
		}
	}

	return nil
}
