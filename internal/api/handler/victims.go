package handler

import (
	"net/http"
	"time"

	"nyayadhaar/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type createVictimRequest struct {
	UserID                string   `json:"user_id" binding:"required"`
	VictimName            string   `json:"victim_name" binding:"required"`
	AadhaarNumber         string   `json:"aadhaar_number" binding:"required"`
	Phone                 string   `json:"phone" binding:"required"`
	Email                 *string  `json:"email"`
	Address               string   `json:"address" binding:"required"`
	State                 string   `json:"state" binding:"required"`
	District              string   `json:"district" binding:"required"`
	CasteCategory         string   `json:"caste_category" binding:"required,oneof=SC ST"`
	VerificationDocuments []string `json:"verification_documents"`
}

// CreateVictim links a victim record to a beneficiary profile (officer roles
// only). The record starts pending verification.
func (h *Handler) CreateVictim(c *gin.Context) {
	if !models.IsOfficerRole(currentProfile(c).Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req createVictimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	linked, err := h.Storage.GetProfileByID(req.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	if linked == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile_not_found"})
		return
	}

	victim := &models.Victim{
		UserID:                req.UserID,
		VictimName:            req.VictimName,
		AadhaarNumber:         req.AadhaarNumber,
		Phone:                 req.Phone,
		Email:                 req.Email,
		Address:               req.Address,
		State:                 req.State,
		District:              req.District,
		CasteCategory:         req.CasteCategory,
		VerificationStatus:    models.VerificationPending,
		VerificationDocuments: pq.StringArray(req.VerificationDocuments),
	}
	if err := h.Storage.SaveVictim(victim); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_victim"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"victim": victim})
}

type verifyVictimRequest struct {
	Status string `json:"status" binding:"required,oneof=verified rejected"`
}

// VerifyVictim records the outcome of identity verification (officer roles
// only). This is a status flag; document checking happens outside.
func (h *Handler) VerifyVictim(c *gin.Context) {
	profile := currentProfile(c)
	if !models.IsOfficerRole(profile.Role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var req verifyVictimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	victim, err := h.Storage.GetVictimByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	if victim == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	now := time.Now()
	victim.VerificationStatus = req.Status
	victim.VerifiedBy = &profile.ID
	victim.VerifiedAt = &now
	if err := h.Storage.SaveVictim(victim); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_save_victim"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"victim": victim})
}

// MyVictim returns the caller's own victim record, if any.
func (h *Handler) MyVictim(c *gin.Context) {
	profile := currentProfile(c)
	victimID, err := h.Storage.FindVictimIDForUser(profile.ID)
	if err != nil {
		// No linked record and lookup trouble both render as absent.
		c.JSON(http.StatusOK, gin.H{"victim": nil})
		return
	}
	victim, err := h.Storage.GetVictimByID(victimID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"victim": victim})
}
