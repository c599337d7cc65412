// internal/storage/records.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/norruva/dpp-backend/internal/models"
)

const (
	UserProductsKey  = "norruvaUserProducts"
	UserSuppliersKey = "norruvaUserSuppliers"
)

// RecordStore keeps the user-created products and suppliers as two JSON
// lists under fixed keys. Every save overwrites the whole list.
type RecordStore struct {
	kv KVStore
}

func NewRecordStore(kv KVStore) *RecordStore {
	return &RecordStore{kv: kv}
}

func (r *RecordStore) Close() error {
	return r.kv.Close()
}

func (r *RecordStore) LoadProducts(ctx context.Context) ([]models.StoredProduct, error) {
	var products []models.StoredProduct
	if err := r.load(ctx, UserProductsKey, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.StoredProduct{}
	}
	return products, nil
}

func (r *RecordStore) SaveProducts(ctx context.Context, products []models.StoredProduct) error {
	return r.save(ctx, UserProductsKey, products)
}

// FindProduct returns the stored product with the given id.
func (r *RecordStore) FindProduct(ctx context.Context, id string) (models.StoredProduct, bool, error) {
	products, err := r.LoadProducts(ctx)
	if err != nil {
		return models.StoredProduct{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.StoredProduct{}, false, nil
}

// UpsertProduct replaces the product with the same id or appends it.
func (r *RecordStore) UpsertProduct(ctx context.Context, product models.StoredProduct) error {
	products, err := r.LoadProducts(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}
	return r.SaveProducts(ctx, products)
}

func (r *RecordStore) LoadSuppliers(ctx context.Context) ([]models.Supplier, error) {
	var suppliers []models.Supplier
	if err := r.load(ctx, UserSuppliersKey, &suppliers); err != nil {
		return nil, err
	}
	if suppliers == nil {
		suppliers = []models.Supplier{}
	}
	return suppliers, nil
}

func (r *RecordStore) SaveSuppliers(ctx context.Context, suppliers []models.Supplier) error {
	return r.save(ctx, UserSuppliersKey, suppliers)
}

func (r *RecordStore) load(ctx context.Context, key string, dst interface{}) error {
	data, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func (r *RecordStore) save(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
