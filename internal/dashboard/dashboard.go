// Package dashboard reduces the current entity set to the four summary
// counts shown on the landing view. Counts are measured by filtering, never
// inferred.
package dashboard

import (
	"nyayadhaar/backend/internal/lifecycle"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"
	"nyayadhaar/backend/internal/storage"
)

// Stats are the dashboard summary counts for one caller.
type Stats struct {
	TotalCases           int64 `json:"total_cases"`
	PendingDisbursements int64 `json:"pending_disbursements"`
	ActiveGrievances     int64 `json:"active_grievances"`
	VerifiedVictims      int64 `json:"verified_victims"`
}

// pendingDisbursementStatuses and activeGrievanceStatuses define which
// statuses count as pending/active on the dashboard.
var (
	pendingDisbursementStatuses = []string{models.DisbursementSanctioned, models.DisbursementProcessing}
	activeGrievanceStatuses     = []string{models.GrievanceOpen, models.GrievanceInProgress}
)

// Service computes dashboard statistics.
type Service struct {
	Storage storage.Storage
	Scope   *scope.Resolver
}

// NewService creates the dashboard service.
func NewService(s storage.Storage, r *scope.Resolver) *Service {
	return &Service{Storage: s, Scope: r}
}

// ComputeStats counts the caller's visible cases, pending disbursements,
// active grievances and verified victims. A user-role caller with no linked
// victim gets all zeros without an error. For a user the verified-victims
// figure is their own record: 1 when it is verified, else 0; officers see
// the system-wide verified count.
func (s *Service) ComputeStats(profile *models.Profile) (Stats, error) {
	var stats Stats

	totalCases, err := s.Storage.CountCases(s.Scope.Filter(profile, lifecycle.EntityCase))
	if err != nil {
		return stats, err
	}
	pending, err := s.Storage.CountDisbursementsByStatus(
		s.Scope.Filter(profile, lifecycle.EntityDisbursement), pendingDisbursementStatuses)
	if err != nil {
		return stats, err
	}
	active, err := s.Storage.CountGrievancesByStatus(
		s.Scope.Filter(profile, lifecycle.EntityGrievance), activeGrievanceStatuses)
	if err != nil {
		return stats, err
	}

	var verified int64
	if profile.Role == models.RoleUser {
		if victimID := s.Scope.VictimID(profile); victimID != "" {
			victim, err := s.Storage.GetVictimByID(victimID)
			if err != nil {
				return stats, err
			}
			if victim != nil && victim.VerificationStatus == models.VerificationVerified {
				verified = 1
			}
		}
	} else {
		verified, err = s.Storage.CountVerifiedVictims()
		if err != nil {
			return stats, err
		}
	}

	stats = Stats{
		TotalCases:           totalCases,
		PendingDisbursements: pending,
		ActiveGrievances:     active,
		VerifiedVictims:      verified,
	}
	return stats, nil
}
