// internal/services/supplier_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/norruva/dpp-backend/internal/models"
	"github.com/norruva/dpp-backend/internal/storage"
	"github.com/norruva/dpp-backend/internal/utils"
)

var ErrSupplierNotFound = errors.New("supplier not found")

type SupplierService struct {
	records *storage.RecordStore
	now     func() time.Time
	mu      sync.Mutex
}

type CreateSupplierRequest struct {
	Name              string                `json:"name" validate:"required,min=2,max=200"`
	ContactPerson     string                `json:"contactPerson,omitempty" validate:"max=200"`
	Email             string                `json:"email,omitempty" validate:"omitempty,email"`
	Phone             string                `json:"phone,omitempty" validate:"max=50"`
	Location          string                `json:"location,omitempty" validate:"max=200"`
	MaterialsSupplied string                `json:"materialsSupplied" validate:"required,max=1000"`
	Status            models.SupplierStatus `json:"status,omitempty" validate:"omitempty,oneof=Active 'Pending Review' Inactive"`
}

func NewSupplierService(records *storage.RecordStore) *SupplierService {
	return &SupplierService{records: records, now: time.Now}
}

// ListSuppliers returns the built-in suppliers not overridden by a user
// supplier with the same id, followed by the user suppliers.
func (s *SupplierService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	userSuppliers, err := s.records.LoadSuppliers(ctx)
	if err != nil {
		return nil, err
	}

	overridden := make(map[string]bool, len(userSuppliers))
	for _, sup := range userSuppliers {
		overridden[sup.ID] = true
	}

	combined := make([]models.Supplier, 0, len(userSuppliers)+5)
	for _, sup := range catalogSuppliers() {
		if !overridden[sup.ID] {
			combined = append(combined, sup)
		}
	}
	return append(combined, userSuppliers...), nil
}

func (s *SupplierService) GetSupplier(ctx context.Context, id string) (*models.Supplier, error) {
	suppliers, err := s.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		if suppliers[i].ID == id {
			return &suppliers[i], nil
		}
	}
	return nil, ErrSupplierNotFound
}

func (s *SupplierService) CreateSupplier(ctx context.Context, req *CreateSupplierRequest) (*models.Supplier, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.SupplierStatusPendingReview
	}

	supplier := models.Supplier{
		ID:                "USER_SUP" + strings.ToUpper(uuid.New().String()[:8]),
		Name:              strings.TrimSpace(req.Name),
		ContactPerson:     strings.TrimSpace(req.ContactPerson),
		Email:             strings.TrimSpace(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		Location:          strings.TrimSpace(req.Location),
		MaterialsSupplied: strings.TrimSpace(req.MaterialsSupplied),
		Status:            status,
		LastUpdated:       s.now().UTC().Format("2006-01-02"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	suppliers, err := s.records.LoadSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.records.SaveSuppliers(ctx, append(suppliers, supplier)); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"supplier_id": supplier.ID,
		"name":        supplier.Name,
	}).Info("Supplier created")

	return &supplier, nil
}
