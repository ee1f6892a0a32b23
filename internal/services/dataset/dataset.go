// Package dataset loads and serves the read-only reference data: farmer
// profiles keyed by farmer_id and the agri-input product catalog. The store
// is populated once at startup (local JSON files or S3 objects) and never
// mutated afterwards, so concurrent reads need no coordination.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"agri-bnpl-engine/internal/models"
)

// Default file names inside the data directory.
const (
	FarmersFile  = "farmers.json"
	ProductsFile = "products.json"
)

// Store holds the in-memory reference data.
type Store struct {
	farmers  []models.FarmerProfile
	byID     map[string]*models.FarmerProfile
	products []models.ProductCatalogEntry
}

// New builds a store from already-decoded collections.
func New(farmers []models.FarmerProfile, products []models.ProductCatalogEntry) *Store {
	byID := make(map[string]*models.FarmerProfile, len(farmers))
	for i := range farmers {
		byID[farmers[i].FarmerID] = &farmers[i]
	}
	return &Store{farmers: farmers, byID: byID, products: products}
}

// Load reads farmers.json and products.json from dir.
func Load(dir string) (*Store, error) {
	farmersRaw, err := os.ReadFile(filepath.Join(dir, FarmersFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read farmers dataset: %w", err)
	}
	productsRaw, err := os.ReadFile(filepath.Join(dir, ProductsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read product catalog: %w", err)
	}
	return Decode(farmersRaw, productsRaw)
}

// Decode builds a store from raw JSON payloads, regardless of whether they
// came from disk or object storage.
func Decode(farmersRaw, productsRaw []byte) (*Store, error) {
	var farmers []models.FarmerProfile
	if err := json.Unmarshal(farmersRaw, &farmers); err != nil {
		return nil, fmt.Errorf("failed to decode farmers dataset: %w", err)
	}

	var products []models.ProductCatalogEntry
	if err := json.Unmarshal(productsRaw, &products); err != nil {
		return nil, fmt.Errorf("failed to decode product catalog: %w", err)
	}

	return New(farmers, products), nil
}

// Farmers returns all farmer profiles.
func (s *Store) Farmers() []models.FarmerProfile {
	return s.farmers
}

// FarmerByID looks up a profile; the second return is false when the
// identifier is unknown.
func (s *Store) FarmerByID(id string) (*models.FarmerProfile, bool) {
	f, ok := s.byID[id]
	return f, ok
}

// Products returns the full product catalog.
func (s *Store) Products() []models.ProductCatalogEntry {
	return s.products
}
