package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DashboardStats returns the caller's four summary counts. A beneficiary
// with no victim record gets zeros, never an error.
func (h *Handler) DashboardStats(c *gin.Context) {
	stats, err := h.Dashboard.ComputeStats(currentProfile(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_compute_stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Labels returns the localized display strings for the caller's language,
// so clients render labels from keys without shipping their own tables.
func (h *Handler) Labels(c *gin.Context) {
	profile := currentProfile(c)
	keys := c.QueryArray("key")
	labels := make(map[string]string, len(keys))
	for _, key := range keys {
		labels[key] = h.Locale.Label(profile.LanguagePreference, key)
	}
	c.JSON(http.StatusOK, gin.H{"labels": labels})
}
