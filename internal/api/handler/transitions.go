package handler

import (
	"errors"
	"net/http"

	"nyayadhaar/backend/internal/lifecycle"
	"nyayadhaar/backend/internal/storage"
	"nyayadhaar/backend/internal/tracker"

	"github.com/gin-gonic/gin"
)

type transitionRequest struct {
	Entity     string `json:"entity" binding:"required"`
	EntityID   string `json:"entity_id" binding:"required"`
	FromStatus string `json:"from_status" binding:"required"`
	ToStatus   string `json:"to_status" binding:"required"`

	ResolutionNotes *string  `json:"resolution_notes"`
	DisbursedAmount *float64 `json:"disbursed_amount"`
	TransactionID   *string  `json:"transaction_id"`
}

// RequestTransition moves an entity between lifecycle statuses. An illegal
// pair or role is rejected with 403 and nothing is written; a stale
// from_status surfaces as 409 so the client knows to refresh.
func (h *Handler) RequestTransition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_payload"})
		return
	}

	entity := lifecycle.Entity(req.Entity)
	switch entity {
	case lifecycle.EntityCase, lifecycle.EntityDisbursement, lifecycle.EntityGrievance:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_entity"})
		return
	}

	err := h.Tracker.RequestTransition(currentProfile(c), entity, req.EntityID, req.FromStatus, req.ToStatus, tracker.TransitionOptions{
		ResolutionNotes: req.ResolutionNotes,
		DisbursedAmount: req.DisbursedAmount,
		TransactionID:   req.TransactionID,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": req.ToStatus})
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		c.JSON(http.StatusForbidden, gin.H{"error": "illegal_transition"})
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	case errors.Is(err, storage.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "state_changed_refresh"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
