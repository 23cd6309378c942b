package pantry

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an item id does not exist in the store.
var ErrNotFound = errors.New("pantry item not found")

// Store manages the pantry_items SQLite table.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the SQLite database at path and ensures
// the pantry_items table exists.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open pantry db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS pantry_items (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		category         TEXT NOT NULL DEFAULT 'others',
		current_quantity REAL NOT NULL DEFAULT 0,
		min_quantity     REAL NOT NULL DEFAULT 0,
		unit             TEXT NOT NULL DEFAULT 'un',
		updated_at       INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create pantry_items table: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

const itemColumns = `id, name, category, current_quantity, min_quantity, unit, updated_at`

func scanItem(row interface{ Scan(...any) error }) (Item, error) {
	var it Item
	var unit string
	var updated int64
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.CurrentQuantity, &it.MinQuantity, &unit, &updated)
	if err != nil {
		return Item{}, err
	}
	it.Unit = Unit(unit)
	it.UpdatedAt = time.Unix(updated, 0).UTC()
	return it, nil
}

// List returns all items ordered by name.
func (s *Store) List() ([]Item, error) {
	rows, err := s.db.Query(`SELECT ` + itemColumns + ` FROM pantry_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Get returns a single item by id.
func (s *Store) Get(id string) (Item, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM pantry_items WHERE id = ?`, id)
	it, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Item{}, ErrNotFound
	}
	if err != nil {
		return Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return it, nil
}

// Insert stores a new item. A missing id is generated; UpdatedAt is set
// to now. The stored item is returned.
func (s *Store) Insert(it Item) (Item, error) {
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.UpdatedAt = time.Now().UTC()

	_, err := s.db.Exec(
		`INSERT INTO pantry_items (`+itemColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Category, it.CurrentQuantity, it.MinQuantity, string(it.Unit), it.UpdatedAt.Unix(),
	)
	if err != nil {
		return Item{}, fmt.Errorf("insert item %q: %w", it.Name, err)
	}
	return it, nil
}

// Update replaces all mutable fields of an existing item.
func (s *Store) Update(it Item) error {
	res, err := s.db.Exec(
		`UPDATE pantry_items SET name = ?, category = ?, current_quantity = ?, min_quantity = ?, unit = ?, updated_at = ? WHERE id = ?`,
		it.Name, it.Category, it.CurrentQuantity, it.MinQuantity, string(it.Unit), time.Now().UTC().Unix(), it.ID,
	)
	if err != nil {
		return fmt.Errorf("update item %s: %w", it.ID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateQuantity sets the current quantity of an item and bumps its
// timestamp. Negative quantities are clamped to zero.
func (s *Store) UpdateQuantity(id string, qty float64) error {
	if qty < 0 {
		qty = 0
	}
	res, err := s.db.Exec(
		`UPDATE pantry_items SET current_quantity = ?, updated_at = ? WHERE id = ?`,
		qty, time.Now().UTC().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("update quantity for %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an item by id.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM pantry_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ShoppingList returns every item whose current quantity is below its
// minimum, with the quantity needed to restock, ordered by category
// then name.
func (s *Store) ShoppingList() ([]ShoppingItem, error) {
	rows, err := s.db.Query(`SELECT ` + itemColumns + ` FROM pantry_items
		WHERE current_quantity < min_quantity ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("shopping list: %w", err)
	}
	defer rows.Close()

	var out []ShoppingItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, ShoppingItem{Item: it, NeededQuantity: it.MinQuantity - it.CurrentQuantity})
	}
	return out, rows.Err()
}

// Count returns the number of stored items.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM pantry_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return n, nil
}
