package handler

import (
	"errors"
	"net/http"
	"time"

	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/storage"
	"nyayadhaar/backend/internal/tracker"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

// ListCases returns the caller's visible cases with presentation metadata,
// newest first.
func (h *Handler) ListCases(c *gin.Context) {
	views, err := h.Tracker.ListCases(currentProfile(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_cases"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cases": views})
}

// ListDisbursements returns the caller's visible disbursements.
func (h *Handler) ListDisbursements(c *gin.Context) {
	views, err := h.Tracker.ListDisbursements(currentProfile(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_disbursements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"disbursements": views})
}

// ListGrievances returns the caller's visible grievances.
func (h *Handler) ListGrievances(c *gin.Context) {
	views, err := h.Tracker.ListGrievances(currentProfile(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_grievances"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"grievances": views})
}

type registerCaseRequest struct {
	VictimID            string     `json:"victim_id" binding:"required"`
	CaseType            string     `json:"case_type" binding:"required"`
	IncidentDate        *time.Time `json:"incident_date"`
	IncidentDescription string     `json:"incident_description" binding:"required"`
	FIRNumber           *string    `json:"fir_number"`
	PoliceStation       *string    `json:"police_station"`
	CourtName           *string    `json:"court_name"`
	SupportingDocuments []string   `json:"supporting_documents"`
}

// RegisterCase creates a case (officer roles only).
func (h *Handler) RegisterCase(c *gin.Context) {
	var req registerCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	record := &models.Case{
		VictimID:            req.VictimID,
		CaseType:            req.CaseType,
		IncidentDate:        req.IncidentDate,
		IncidentDescription: req.IncidentDescription,
		FIRNumber:           req.FIRNumber,
		PoliceStation:       req.PoliceStation,
		CourtName:           req.CourtName,
		SupportingDocuments: pq.StringArray(req.SupportingDocuments),
	}
	if err := h.Tracker.RegisterCase(currentProfile(c), record); err != nil {
		h.writeTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"case": record})
}

type sanctionDisbursementRequest struct {
	CaseID              string  `json:"case_id" binding:"required"`
	VictimID            string  `json:"victim_id" binding:"required"`
	ReliefType          string  `json:"relief_type" binding:"required"`
	SanctionAmount      float64 `json:"sanction_amount" binding:"required"`
	SanctionOrderNumber *string `json:"sanction_order_number"`
	BankAccountNumber   *string `json:"bank_account_number"`
	IFSCCode            *string `json:"ifsc_code"`
	BeneficiaryName     string  `json:"beneficiary_name" binding:"required"`
	Remarks             *string `json:"remarks"`
}

// SanctionDisbursement records a new sanction (officer roles only).
func (h *Handler) SanctionDisbursement(c *gin.Context) {
	var req sanctionDisbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	record := &models.Disbursement{
		CaseID:              req.CaseID,
		VictimID:            req.VictimID,
		ReliefType:          req.ReliefType,
		SanctionAmount:      req.SanctionAmount,
		SanctionOrderNumber: req.SanctionOrderNumber,
		BankAccountNumber:   req.BankAccountNumber,
		IFSCCode:            req.IFSCCode,
		BeneficiaryName:     req.BeneficiaryName,
		Remarks:             req.Remarks,
	}
	if err := h.Tracker.SanctionDisbursement(currentProfile(c), record); err != nil {
		h.writeTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"disbursement": record})
}

type submitGrievanceRequest struct {
	RelatedCaseID         *string  `json:"related_case_id"`
	RelatedDisbursementID *string  `json:"related_disbursement_id"`
	GrievanceType         string   `json:"grievance_type" binding:"required"`
	Description           string   `json:"description" binding:"required"`
	Priority              string   `json:"priority"`
	Attachments           []string `json:"attachments"`
}

// SubmitGrievance files a grievance for the caller.
func (h *Handler) SubmitGrievance(c *gin.Context) {
	var req submitGrievanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	record := &models.Grievance{
		RelatedCaseID:         req.RelatedCaseID,
		RelatedDisbursementID: req.RelatedDisbursementID,
		GrievanceType:         req.GrievanceType,
		Description:           req.Description,
		Priority:              req.Priority,
		Attachments:           pq.StringArray(req.Attachments),
	}
	if err := h.Tracker.SubmitGrievance(currentProfile(c), record); err != nil {
		h.writeTrackerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"grievance": record})
}

func (h *Handler) writeTrackerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tracker.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, tracker.ErrInvalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid_input"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
