package store

import (
	"encoding/json"
	"fmt"
	"os"

	"shop-analytics/internal/models"
)

// Dataset holds the five collections the analytics endpoints read from.
type Dataset struct {
	Users      []models.User     `json:"users"`
	Products   []models.Product  `json:"products"`
	Categories []models.Category `json:"categories"`
	Orders     []models.Order    `json:"orders"`
	Reviews    []models.Review   `json:"reviews"`
}

// Store is an immutable in-memory snapshot of the dataset. All handlers
// share one instance; nothing mutates it after construction, so concurrent
// reads are safe without locking.
type Store struct {
	data Dataset
}

func New(data Dataset) *Store {
	return &Store{data: data}
}

// LoadFile reads a JSON seed file shaped like Dataset.
func LoadFile(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var data Dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	return New(data), nil
}

func (s *Store) Users() []models.User          { return s.data.Users }
func (s *Store) Products() []models.Product    { return s.data.Products }
func (s *Store) Categories() []models.Category { return s.data.Categories }
func (s *Store) Orders() []models.Order        { return s.data.Orders }
func (s *Store) Reviews() []models.Review      { return s.data.Reviews }
