// Package tracker exposes the core case-tracking operations: scoped listing
// with presentation metadata, status transition requests, and record
// creation. Every read goes through the scope resolver; every transition
// through the lifecycle table.
package tracker

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"nyayadhaar/backend/internal/lifecycle"
	"nyayadhaar/backend/internal/metrics"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"
	"nyayadhaar/backend/internal/storage"

	"github.com/google/uuid"
)

var (
	// ErrForbidden means the caller's role may not perform the operation.
	ErrForbidden = errors.New("operation not allowed for role")
	// ErrInvalid means the request payload violates a record invariant.
	ErrInvalid = errors.New("invalid input")
)

// Service implements the tracking operations over storage and the resolver.
type Service struct {
	Storage storage.Storage
	Scope   *scope.Resolver
}

// NewService creates the tracker service.
func NewService(s storage.Storage, r *scope.Resolver) *Service {
	return &Service{Storage: s, Scope: r}
}

// CaseView is a case annotated with its status presentation.
type CaseView struct {
	models.Case
	Presentation lifecycle.Presentation `json:"presentation"`
}

// DisbursementView is a disbursement annotated with its status presentation.
type DisbursementView struct {
	models.Disbursement
	Presentation lifecycle.Presentation `json:"presentation"`
}

// GrievanceView is a grievance annotated with its status and priority
// presentation.
type GrievanceView struct {
	models.Grievance
	Presentation  lifecycle.Presentation `json:"presentation"`
	PriorityColor string                 `json:"priority_color"`
}

// ListCases returns the cases visible to the caller, newest first.
func (s *Service) ListCases(profile *models.Profile) ([]CaseView, error) {
	pred := s.Scope.Filter(profile, lifecycle.EntityCase)
	cases, err := s.Storage.ListCases(pred)
	if err != nil {
		return nil, err
	}
	views := make([]CaseView, 0, len(cases))
	for _, c := range cases {
		views = append(views, CaseView{Case: c, Presentation: presentationFor(lifecycle.EntityCase, c.ID, c.CaseStatus)})
	}
	return views, nil
}

// ListDisbursements returns the disbursements visible to the caller, newest first.
func (s *Service) ListDisbursements(profile *models.Profile) ([]DisbursementView, error) {
	pred := s.Scope.Filter(profile, lifecycle.EntityDisbursement)
	disbursements, err := s.Storage.ListDisbursements(pred)
	if err != nil {
		return nil, err
	}
	views := make([]DisbursementView, 0, len(disbursements))
	for _, d := range disbursements {
		views = append(views, DisbursementView{
			Disbursement: d,
			Presentation: presentationFor(lifecycle.EntityDisbursement, d.ID, d.DisbursementStatus),
		})
	}
	return views, nil
}

// ListGrievances returns the grievances visible to the caller, newest first.
func (s *Service) ListGrievances(profile *models.Profile) ([]GrievanceView, error) {
	pred := s.Scope.Filter(profile, lifecycle.EntityGrievance)
	grievances, err := s.Storage.ListGrievances(pred)
	if err != nil {
		return nil, err
	}
	views := make([]GrievanceView, 0, len(grievances))
	for _, g := range grievances {
		views = append(views, GrievanceView{
			Grievance:     g,
			Presentation:  presentationFor(lifecycle.EntityGrievance, g.ID, g.Status),
			PriorityColor: lifecycle.PriorityColor(g.Priority),
		})
	}
	return views, nil
}

// presentationFor annotates a row, degrading to the neutral fallback when
// the stored status is outside the defined set. That situation is a data
// defect worth a log line, never a request failure.
func presentationFor(entity lifecycle.Entity, id, status string) lifecycle.Presentation {
	p, err := lifecycle.StatusMetadata(entity, status)
	if err != nil {
		log.Printf("ERROR: %s %s carries unknown status %q, rendering fallback", entity, id, status)
	}
	return p
}

// TransitionOptions carries the optional side-effect values a transition may
// record: resolution notes for grievances, settlement details for
// disbursements reaching disbursed.
type TransitionOptions struct {
	ResolutionNotes *string
	DisbursedAmount *float64
	TransactionID   *string
}

// RequestTransition asks the store to move an entity between statuses. The
// lifecycle table is checked first: an illegal pair or an unauthorized role
// is rejected without touching storage. For a user-role grievance withdrawal
// the grievance must be visible through the caller's own scope. The store's
// conditional-update outcome (applied, conflict, not-found) is surfaced as
// is; two racing requests are arbitrated by the store alone.
func (s *Service) RequestTransition(profile *models.Profile, entity lifecycle.Entity, id, from, to string, opts TransitionOptions) error {
	if !lifecycle.CanTransition(entity, from, to, profile.Role) {
		metrics.TransitionsTotal.WithLabelValues(string(entity), "illegal").Inc()
		return lifecycle.ErrIllegalTransition
	}

	if entity == lifecycle.EntityGrievance && profile.Role == models.RoleUser {
		pred := s.Scope.Filter(profile, lifecycle.EntityGrievance)
		grievance, err := s.Storage.FindGrievanceByID(pred, id)
		if err != nil {
			metrics.TransitionsTotal.WithLabelValues(string(entity), "error").Inc()
			return err
		}
		if grievance == nil {
			// Out of scope is indistinguishable from absent.
			metrics.TransitionsTotal.WithLabelValues(string(entity), "not_found").Inc()
			return storage.ErrNotFound
		}
	}

	var err error
	switch entity {
	case lifecycle.EntityCase:
		err = s.Storage.UpdateCaseStatus(id, from, to)
	case lifecycle.EntityDisbursement:
		err = s.Storage.UpdateDisbursementStatus(id, from, to, opts.DisbursedAmount, opts.TransactionID)
	case lifecycle.EntityGrievance:
		err = s.Storage.UpdateGrievanceStatus(id, from, to, opts.ResolutionNotes)
	default:
		err = lifecycle.ErrIllegalTransition
	}

	metrics.TransitionsTotal.WithLabelValues(string(entity), transitionOutcome(err)).Inc()
	return err
}

func transitionOutcome(err error) string {
	switch {
	case err == nil:
		return "applied"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrConflict):
		return "conflict"
	case errors.Is(err, lifecycle.ErrIllegalTransition):
		return "illegal"
	default:
		return "error"
	}
}

// displayNumber mints a human-facing record number, e.g. CASE-2026-4F2A1B9C.
func displayNumber(prefix string) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Year(), suffix)
}

// RegisterCase creates a case for a victim. Only officer roles register
// cases; the linked victim's user reads them but never writes.
func (s *Service) RegisterCase(profile *models.Profile, c *models.Case) error {
	if !models.IsOfficerRole(profile.Role) {
		return ErrForbidden
	}
	if c.VictimID == "" || c.CaseType == "" || c.IncidentDescription == "" {
		return ErrInvalid
	}
	victim, err := s.Storage.GetVictimByID(c.VictimID)
	if err != nil {
		return err
	}
	if victim == nil {
		return storage.ErrNotFound
	}
	if c.CaseNumber == "" {
		c.CaseNumber = displayNumber("CASE")
	}
	c.CaseStatus = models.CaseRegistered
	return s.Storage.SaveCase(c)
}

// SanctionDisbursement creates a disbursement record against a case. The
// sanction amount must be positive; it is immutable afterwards.
func (s *Service) SanctionDisbursement(profile *models.Profile, d *models.Disbursement) error {
	if !models.IsOfficerRole(profile.Role) {
		return ErrForbidden
	}
	if d.CaseID == "" || d.VictimID == "" || d.ReliefType == "" || d.BeneficiaryName == "" {
		return ErrInvalid
	}
	if d.SanctionAmount <= 0 {
		return ErrInvalid
	}
	if d.DisbursementNumber == "" {
		d.DisbursementNumber = displayNumber("DBT")
	}
	d.DisbursementStatus = models.DisbursementSanctioned
	d.SanctionedBy = &profile.ID
	now := time.Now()
	d.SanctionDate = &now
	// A disbursed amount can only appear once the status reaches disbursed.
	d.DisbursedAmount = nil
	return s.Storage.SaveDisbursement(d)
}

// SubmitGrievance files a grievance for the caller. A grievance may link to
// at most one case and at most one disbursement.
func (s *Service) SubmitGrievance(profile *models.Profile, g *models.Grievance) error {
	if g.GrievanceType == "" || g.Description == "" {
		return ErrInvalid
	}
	if g.Priority == "" {
		g.Priority = models.PriorityMedium
	}
	if g.GrievanceNumber == "" {
		g.GrievanceNumber = displayNumber("GRV")
	}
	g.UserID = profile.ID
	g.Status = models.GrievanceOpen
	g.ResolutionNotes = nil
	g.ResolvedAt = nil
	return s.Storage.SaveGrievance(g)
}
