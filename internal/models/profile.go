package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles a Profile may hold. The role is assigned at signup and is never
// writable through the API afterwards.
const (
	RoleUser            = "user"
	RoleAdmin           = "admin"
	RoleDistrictOfficer = "district_officer"
	RoleSocialWelfare   = "social_welfare"
)

// OfficerRoles are the roles that administer cases and disbursements.
var OfficerRoles = []string{RoleAdmin, RoleDistrictOfficer, RoleSocialWelfare}

// IsOfficerRole reports whether role is one of the administrative roles.
func IsOfficerRole(role string) bool {
	for _, r := range OfficerRoles {
		if r == role {
			return true
		}
	}
	return false
}

// Profile is the identity record behind every authenticated caller.
type Profile struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	FullName     string `gorm:"not null" json:"full_name"`
	Phone        *string `json:"phone,omitempty"`
	// Role is one of user/admin/district_officer/social_welfare.
	Role               string  `gorm:"not null;default:user;index" json:"role"`
	AadhaarNumber      *string `json:"aadhaar_number,omitempty"`
	State              *string `json:"state,omitempty"`
	District           *string `json:"district,omitempty"`
	LanguagePreference string  `gorm:"not null;default:en" json:"language_preference"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the profile if one is not set.
func (p *Profile) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}
