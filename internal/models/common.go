// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Base model with common fields
type BaseModel struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB []byte

func (j JSONB) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSONB) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], v...)
	case string:
		*j = JSONB(v)
	}
	return nil
}

func (j JSONB) MarshalJSON() ([]byte, error) {
	if len(j) == 0 {
		return []byte("null"), nil
	}
	return j, nil
}

// Origin is the provenance tag of a single editable field. The zero value
// means the field has never been tagged.
type Origin uint8

const (
	OriginUnset Origin = iota
	OriginAIExtracted
	OriginManual
)

func (o Origin) String() string {
	switch o {
	case OriginAIExtracted:
		return "AI_EXTRACTED"
	case OriginManual:
		return "manual"
	default:
		return ""
	}
}

func (o Origin) MarshalJSON() ([]byte, error) {
	if o == OriginUnset {
		return []byte("null"), nil
	}
	return json.Marshal(o.String())
}

// UnmarshalJSON accepts "AI_EXTRACTED", "manual" or null. Anything else
// decodes to OriginUnset.
func (o *Origin) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		*o = OriginUnset
		return nil
	}
	*o = ParseOrigin(s)
	return nil
}

func ParseOrigin(s *string) Origin {
	if s == nil {
		return OriginUnset
	}
	switch *s {
	case "AI_EXTRACTED":
		return OriginAIExtracted
	case "manual":
		return OriginManual
	default:
		return OriginUnset
	}
}

// Enums
type ComplianceStatus string

const (
	ComplianceStatusCompliant     ComplianceStatus = "compliant"
	ComplianceStatusNonCompliant  ComplianceStatus = "non_compliant"
	ComplianceStatusPendingReview ComplianceStatus = "pending_review"
	ComplianceStatusNotApplicable ComplianceStatus = "not_applicable"
	ComplianceStatusInProgress    ComplianceStatus = "in_progress"
)

type PhaseStatus string

const (
	PhaseStatusCompleted  PhaseStatus = "completed"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusUpcoming   PhaseStatus = "upcoming"
	PhaseStatusIssue      PhaseStatus = "issue"
)

type NotificationType string

const (
	NotificationTypeInfo    NotificationType = "info"
	NotificationTypeWarning NotificationType = "warning"
	NotificationTypeError   NotificationType = "error"
)

type SupplierStatus string

const (
	SupplierStatusActive        SupplierStatus = "Active"
	SupplierStatusPendingReview SupplierStatus = "Pending Review"
	SupplierStatusInactive      SupplierStatus = "Inactive"
)
