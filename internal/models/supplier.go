// internal/models/supplier.go
package models

type Supplier struct {
	ID                string         `json:"id" validate:"required"`
	Name              string         `json:"name" validate:"required,min=2,max=200"`
	ContactPerson     string         `json:"contactPerson,omitempty"`
	Email             string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string         `json:"phone,omitempty"`
	Location          string         `json:"location,omitempty"`
	MaterialsSupplied string         `json:"materialsSupplied"`
	Status            SupplierStatus `json:"status" validate:"required,oneof=Active 'Pending Review' Inactive"`
	LastUpdated       string         `json:"lastUpdated"`
}

// SupplyChainLink ties a product to a supplier for one supplied item. The
// pair (SupplierID, SuppliedItem) identifies a link within a product.
type SupplyChainLink struct {
	SupplierID   string `json:"supplierId" validate:"required"`
	SuppliedItem string `json:"suppliedItem" validate:"required,max=200"`
	Notes        string `json:"notes,omitempty" validate:"max=1000"`
}

// KVEntry is one row of the key-value table backing the record store.
type KVEntry struct {
	Key   string `json:"key" gorm:"primaryKey;size:191"`
	Value JSONB  `json:"value" gorm:"type:text;not null"`
	BaseModel
}

func (KVEntry) TableName() string {
	return "kv_entries"
}
