package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relief types a disbursement may be sanctioned under.
const (
	ReliefImmediate      = "immediate_relief"
	ReliefRehabilitation = "rehabilitation"
	ReliefMarriage       = "marriage_incentive"
)

// Disbursement statuses. A disbursement can only fail while processing.
const (
	DisbursementSanctioned = "sanctioned"
	DisbursementProcessing = "processing"
	DisbursementDisbursed  = "disbursed"
	DisbursementFailed     = "failed"
)

// Disbursement is a monetary sanction tied to exactly one case and one
// victim. It is a bookkeeping record; no funds move through this system.
type Disbursement struct {
	ID                 string `gorm:"type:uuid;primaryKey" json:"id"`
	DisbursementNumber string `gorm:"uniqueIndex;not null" json:"disbursement_number"`
	CaseID             string `gorm:"type:uuid;not null;index" json:"case_id"`
	VictimID           string `gorm:"type:uuid;not null;index" json:"victim_id"`
	// ReliefType is immediate_relief, rehabilitation or marriage_incentive.
	ReliefType string `gorm:"not null" json:"relief_type"`
	// SanctionAmount is set at creation and never updated.
	SanctionAmount      float64    `gorm:"not null" json:"sanction_amount"`
	SanctionedBy        *string    `gorm:"type:uuid" json:"sanctioned_by,omitempty"`
	SanctionDate        *time.Time `json:"sanction_date,omitempty"`
	SanctionOrderNumber *string    `json:"sanction_order_number,omitempty"`
	// DisbursementStatus is sanctioned, processing, disbursed or failed.
	DisbursementStatus string `gorm:"not null;default:sanctioned;index" json:"disbursement_status"`
	// DisbursedAmount is only populated once the status reaches disbursed.
	DisbursedAmount   *float64   `json:"disbursed_amount,omitempty"`
	DisbursementDate  *time.Time `json:"disbursement_date,omitempty"`
	TransactionID     *string    `json:"transaction_id,omitempty"`
	BankAccountNumber *string    `json:"bank_account_number,omitempty"`
	IFSCCode          *string    `json:"ifsc_code,omitempty"`
	BeneficiaryName   string     `gorm:"not null" json:"beneficiary_name"`
	Remarks           *string    `gorm:"type:text" json:"remarks,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the disbursement if one is not set.
func (d *Disbursement) BeforeCreate(tx *gorm.DB) (err error) {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return
}
