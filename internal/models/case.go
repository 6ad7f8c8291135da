package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Case types under the tracked welfare schemes.
const (
	CaseTypePCR      = "PCR"
	CaseTypePoA      = "PoA"
	CaseTypeMarriage = "Inter-caste Marriage"
)

// Case statuses, in order of progress.
const (
	CaseRegistered         = "registered"
	CaseUnderInvestigation = "under_investigation"
	CaseInTrial            = "in_trial"
	CaseClosed             = "closed"
)

// Case is one legal proceeding registered for a victim. It is owned by the
// issuing authority; the linked victim's user can only read it.
type Case struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	CaseNumber string `gorm:"uniqueIndex;not null" json:"case_number"`
	VictimID   string `gorm:"type:uuid;not null;index" json:"victim_id"`
	Victim     Victim `gorm:"foreignKey:VictimID" json:"-"`
	// CaseType is PCR, PoA or Inter-caste Marriage.
	CaseType            string     `gorm:"not null" json:"case_type"`
	IncidentDate        *time.Time `json:"incident_date,omitempty"`
	IncidentDescription string     `gorm:"type:text;not null" json:"incident_description"`
	FIRNumber           *string    `json:"fir_number,omitempty"`
	PoliceStation       *string    `json:"police_station,omitempty"`
	CourtName           *string    `json:"court_name,omitempty"`
	// CaseStatus is registered, under_investigation, in_trial or closed.
	CaseStatus          string         `gorm:"not null;default:registered;index" json:"case_status"`
	SupportingDocuments pq.StringArray `gorm:"type:text[]" json:"supporting_documents"`
	CCTNSReference      *string        `json:"cctns_reference,omitempty"`
	ECourtReference     *string        `json:"ecourt_reference,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the case if one is not set.
func (c *Case) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}
