// Package catalog stores parsed product records in a PostGIS table and searches them.
package catalog

import (
	"database/sql"

	"github.com/venicegeo/bf-satmeta/util"
)

// Store runs catalog operations in their own transactions
type Store struct {
	DB *sql.DB
}

// NewStore opens a database connection with provider
func NewStore(provider ConnectionProvider) (*Store, error) {
	db, err := provider(&util.BasicLogContext{})
	if err != nil {
		return nil, err
	}
	return &Store{DB: db}, nil
}

// InTx runs fn in a transaction, committed when fn succeeds and rolled back otherwise
func (s *Store) InTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// SaveProducts upserts products in a single transaction
func (s *Store) SaveProducts(products []*Product) error {
	return s.InTx(func(tx *sql.Tx) error {
		for _, p := range products {
			if err := Upsert(tx, p); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByTitle returns one product, or sql.ErrNoRows
func (s *Store) GetByTitle(title string) (*Product, error) {
	var product *Product
	err := s.InTx(func(tx *sql.Tx) (err error) {
		product, err = GetByTitle(tx, title)
		return err
	})
	return product, err
}

// Discover returns the products matching q
func (s *Store) Discover(q Query) ([]*Product, error) {
	var products []*Product
	err := s.InTx(func(tx *sql.Tx) (err error) {
		products, err = Discover(tx, q)
		return err
	})
	return products, err
}

// Close releases the connection
func (s *Store) Close() error {
	return s.DB.Close()
}
