// Package lifecycle defines the status sets of every tracked entity, the
// legal transitions between them, and the presentation metadata derived from
// a status. It is a lookup table shared by every consumer; it never touches
// storage itself.
package lifecycle

import (
	"errors"

	"nyayadhaar/backend/internal/models"
)

// Entity identifies which status table applies.
type Entity string

const (
	EntityCase         Entity = "case"
	EntityDisbursement Entity = "disbursement"
	EntityGrievance    Entity = "grievance"
)

var (
	// ErrUnknownStatus means a stored status is outside the defined set for
	// its entity. This is a data-integrity defect, not a user error; callers
	// render FallbackPresentation instead of failing.
	ErrUnknownStatus = errors.New("unknown status for entity")

	// ErrIllegalTransition means the requested status change is not in the
	// adjacency table or the caller's role may not initiate it. Nothing is
	// mutated when it is returned.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Presentation is the display metadata derived from a status. LabelKey is a
// localization key; the rendered text comes from the label provider.
type Presentation struct {
	Icon       string `json:"icon"`
	LabelKey   string `json:"label_key"`
	ColorClass string `json:"color_class"`
}

// FallbackPresentation is rendered for a status outside the defined set.
var FallbackPresentation = Presentation{
	Icon:       "file-text",
	LabelKey:   "status.unknown",
	ColorClass: "bg-slate-50 dark:bg-slate-700 text-slate-600 dark:text-slate-300",
}

type statusKey struct {
	entity Entity
	status string
}

// presentations maps (entity, status) to its display metadata. Icon names and
// color classes match what the views render for each badge.
var presentations = map[statusKey]Presentation{
	{EntityCase, models.CaseRegistered}:         {"clock", "case.registered", "bg-blue-50 dark:bg-blue-900/20 text-blue-600 dark:text-blue-400"},
	{EntityCase, models.CaseUnderInvestigation}: {"alert-circle", "case.investigation", "bg-amber-50 dark:bg-amber-900/20 text-amber-600 dark:text-amber-400"},
	{EntityCase, models.CaseInTrial}:            {"file-text", "case.trial", "bg-violet-50 dark:bg-violet-900/20 text-violet-600 dark:text-violet-400"},
	{EntityCase, models.CaseClosed}:             {"check-circle", "case.closed", "bg-green-50 dark:bg-green-900/20 text-green-600 dark:text-green-400"},

	{EntityDisbursement, models.DisbursementSanctioned}: {"clock", "disbursement.sanctioned", "bg-blue-50 dark:bg-blue-900/20 text-blue-600 dark:text-blue-400"},
	{EntityDisbursement, models.DisbursementProcessing}: {"trending-up", "disbursement.processing", "bg-amber-50 dark:bg-amber-900/20 text-amber-600 dark:text-amber-400"},
	{EntityDisbursement, models.DisbursementDisbursed}:  {"check-circle", "disbursement.disbursed", "bg-green-50 dark:bg-green-900/20 text-green-600 dark:text-green-400"},
	{EntityDisbursement, models.DisbursementFailed}:     {"x-circle", "disbursement.failed", "bg-red-50 dark:bg-red-900/20 text-red-600 dark:text-red-400"},

	{EntityGrievance, models.GrievanceOpen}:       {"alert-circle", "grievance.open", "bg-red-50 dark:bg-red-900/20 text-red-600 dark:text-red-400"},
	{EntityGrievance, models.GrievanceInProgress}: {"clock", "grievance.in_progress", "bg-amber-50 dark:bg-amber-900/20 text-amber-600 dark:text-amber-400"},
	{EntityGrievance, models.GrievanceResolved}:   {"check-circle", "grievance.resolved", "bg-green-50 dark:bg-green-900/20 text-green-600 dark:text-green-400"},
	{EntityGrievance, models.GrievanceClosed}:     {"x-circle", "grievance.closed", "bg-slate-50 dark:bg-slate-700 text-slate-600 dark:text-slate-300"},
}

// transitions is the adjacency table. A (from, to) pair absent here is
// illegal for every role. Note failed is only reachable from processing, and
// a grievance can be closed straight from open (withdrawal).
var transitions = map[Entity]map[string][]string{
	EntityCase: {
		models.CaseRegistered:         {models.CaseUnderInvestigation},
		models.CaseUnderInvestigation: {models.CaseInTrial},
		models.CaseInTrial:            {models.CaseClosed},
		models.CaseClosed:             {},
	},
	EntityDisbursement: {
		models.DisbursementSanctioned: {models.DisbursementProcessing},
		models.DisbursementProcessing: {models.DisbursementDisbursed, models.DisbursementFailed},
		models.DisbursementDisbursed:  {},
		models.DisbursementFailed:     {},
	},
	EntityGrievance: {
		models.GrievanceOpen:       {models.GrievanceInProgress, models.GrievanceClosed},
		models.GrievanceInProgress: {models.GrievanceResolved, models.GrievanceClosed},
		models.GrievanceResolved:   {},
		models.GrievanceClosed:     {},
	},
}

// priorityColors maps a grievance priority to its badge color class.
var priorityColors = map[string]string{
	models.PriorityUrgent: "bg-red-100 dark:bg-red-900/30 text-red-700 dark:text-red-300",
	models.PriorityHigh:   "bg-orange-100 dark:bg-orange-900/30 text-orange-700 dark:text-orange-300",
	models.PriorityMedium: "bg-yellow-100 dark:bg-yellow-900/30 text-yellow-700 dark:text-yellow-300",
	models.PriorityLow:    "bg-blue-100 dark:bg-blue-900/30 text-blue-700 dark:text-blue-300",
}

// PriorityColor returns the badge color class for a grievance priority, with
// a neutral class for anything outside the defined set.
func PriorityColor(priority string) string {
	if c, ok := priorityColors[priority]; ok {
		return c
	}
	return "bg-slate-100 dark:bg-slate-700 text-slate-700 dark:text-slate-300"
}

// Statuses returns the defined status set for an entity, in progress order.
func Statuses(entity Entity) []string {
	switch entity {
	case EntityCase:
		return []string{models.CaseRegistered, models.CaseUnderInvestigation, models.CaseInTrial, models.CaseClosed}
	case EntityDisbursement:
		return []string{models.DisbursementSanctioned, models.DisbursementProcessing, models.DisbursementDisbursed, models.DisbursementFailed}
	case EntityGrievance:
		return []string{models.GrievanceOpen, models.GrievanceInProgress, models.GrievanceResolved, models.GrievanceClosed}
	}
	return nil
}

// StatusMetadata returns the presentation for a status, or ErrUnknownStatus
// if the status is not in the entity's defined set.
func StatusMetadata(entity Entity, status string) (Presentation, error) {
	p, ok := presentations[statusKey{entity, status}]
	if !ok {
		return FallbackPresentation, ErrUnknownStatus
	}
	return p, nil
}

// CanTransition reports whether callerRole may move an entity from one status
// to another. Only officer roles transition cases and disbursements. For
// grievances, officer roles may initiate any legal move while a user may only
// withdraw (open to closed); ownership of the grievance is the caller's
// responsibility to verify before instructing the store.
func CanTransition(entity Entity, from, to, callerRole string) bool {
	adj, ok := transitions[entity]
	if !ok {
		return false
	}
	legal := false
	for _, next := range adj[from] {
		if next == to {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	if models.IsOfficerRole(callerRole) {
		return true
	}
	// A user-role caller may only withdraw their own grievance.
	return entity == EntityGrievance &&
		callerRole == models.RoleUser &&
		from == models.GrievanceOpen && to == models.GrievanceClosed
}
