package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Grievance categories.
const (
	GrievanceDelay         = "delay"
	GrievanceWrongAmount   = "wrong_amount"
	GrievanceNotReceived   = "not_received"
	GrievanceDocumentation = "documentation"
	GrievanceOther         = "other"
)

// Grievance priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Grievance statuses.
const (
	GrievanceOpen       = "open"
	GrievanceInProgress = "in_progress"
	GrievanceResolved   = "resolved"
	GrievanceClosed     = "closed"
)

// Grievance is a complaint filed by a profile, optionally linked to at most
// one case and at most one disbursement.
type Grievance struct {
	ID                    string  `gorm:"type:uuid;primaryKey" json:"id"`
	GrievanceNumber       string  `gorm:"uniqueIndex;not null" json:"grievance_number"`
	UserID                string  `gorm:"type:uuid;not null;index" json:"user_id"`
	RelatedCaseID         *string `gorm:"type:uuid" json:"related_case_id,omitempty"`
	RelatedDisbursementID *string `gorm:"type:uuid" json:"related_disbursement_id,omitempty"`
	// GrievanceType is delay, wrong_amount, not_received, documentation or other.
	GrievanceType string `gorm:"not null" json:"grievance_type"`
	Description   string `gorm:"type:text;not null" json:"description"`
	// Priority is low, medium, high or urgent.
	Priority string `gorm:"not null;default:medium" json:"priority"`
	// Status is open, in_progress, resolved or closed.
	Status      string         `gorm:"not null;default:open;index" json:"status"`
	Attachments pq.StringArray `gorm:"type:text[]" json:"attachments"`
	AssignedTo  *string        `gorm:"type:uuid" json:"assigned_to,omitempty"`
	// ResolutionNotes is only populated when the status is resolved or closed.
	ResolutionNotes *string    `gorm:"type:text" json:"resolution_notes,omitempty"`
	ResolvedAt      *time.Time `json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the grievance if one is not set.
func (g *Grievance) BeforeCreate(tx *gorm.DB) (err error) {
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	return
}
