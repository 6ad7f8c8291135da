package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Caste categories covered by the PCR/PoA schemes.
const (
	CasteSC = "SC"
	CasteST = "ST"
)

// Victim verification states.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

// Victim holds the beneficiary identity linked one-to-one with a user-role
// Profile. It is the join key that scopes a user's cases and disbursements.
type Victim struct {
	ID            string  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        string  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	VictimName    string  `gorm:"not null" json:"victim_name"`
	AadhaarNumber string  `gorm:"not null" json:"aadhaar_number"`
	Phone         string  `gorm:"not null" json:"phone"`
	Email         *string `json:"email,omitempty"`
	Address       string  `gorm:"type:text;not null" json:"address"`
	State         string  `gorm:"not null" json:"state"`
	District      string  `gorm:"not null" json:"district"`
	// CasteCategory is SC or ST.
	CasteCategory string `gorm:"not null" json:"caste_category"`
	// VerificationStatus is pending, verified or rejected.
	VerificationStatus    string         `gorm:"not null;default:pending;index" json:"verification_status"`
	VerificationDocuments pq.StringArray `gorm:"type:text[]" json:"verification_documents"`
	DigilockerVerified    bool           `gorm:"not null;default:false" json:"digilocker_verified"`
	VerifiedBy            *string        `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt            *time.Time     `json:"verified_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID for the victim if one is not set.
func (v *Victim) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}
