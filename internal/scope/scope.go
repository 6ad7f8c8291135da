// Package scope computes the row-filter predicate for a caller. It is the
// single authorization surface for reads: every query path goes through
// Filter instead of duplicating role checks per view.
package scope

import (
	"errors"
	"log"

	"nyayadhaar/backend/internal/lifecycle"
	"nyayadhaar/backend/internal/models"

	"gorm.io/gorm"
)

// Predicate narrows a query to the rows the caller may observe. It is a GORM
// scope, applied with db.Scopes(pred).
type Predicate func(*gorm.DB) *gorm.DB

// ErrNoVictim is returned by a VictimDirectory when a user has no linked
// victim record. It is not a failure: the resolver maps it to the empty set.
var ErrNoVictim = errors.New("no victim record for user")

// VictimDirectory resolves the victim id linked to a user-role profile.
// Implementations may cache; the cache must be invalidated when the linked
// victim record changes.
type VictimDirectory interface {
	FindVictimIDForUser(userID string) (string, error)
}

// Resolver computes scope predicates from a caller's profile.
type Resolver struct {
	Victims VictimDirectory
}

// NewResolver creates a resolver backed by the given victim directory.
func NewResolver(victims VictimDirectory) *Resolver {
	return &Resolver{Victims: victims}
}

// Unrestricted passes every row through.
func Unrestricted(db *gorm.DB) *gorm.DB { return db }

// Empty yields no rows. It is the safe default when a user has no victim
// record or the victim lookup fails.
func Empty(db *gorm.DB) *gorm.DB { return db.Where("1 = 0") }

// Filter returns the predicate restricting entity rows to what profile may
// see. Officer roles see everything. A user-role caller sees cases and
// disbursements of their linked victim and their own grievances; with no
// victim record the case/disbursement predicate is the empty set, never an
// error. A failed victim lookup also degrades to the empty set so the caller
// is not blocked from the rest of the interface.
func (r *Resolver) Filter(profile *models.Profile, entity lifecycle.Entity) Predicate {
	if models.IsOfficerRole(profile.Role) {
		return Unrestricted
	}

	switch entity {
	case lifecycle.EntityGrievance:
		userID := profile.ID
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("user_id = ?", userID)
		}
	case lifecycle.EntityCase, lifecycle.EntityDisbursement:
		victimID, err := r.Victims.FindVictimIDForUser(profile.ID)
		if errors.Is(err, ErrNoVictim) {
			return Empty
		}
		if err != nil {
			log.Printf("WARNING: victim lookup failed for user %s, scoping to empty set: %v", profile.ID, err)
			return Empty
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("victim_id = ?", victimID)
		}
	}

	// Unknown entity: nothing is visible.
	return Empty
}

// VictimID resolves the caller's victim id directly, for consumers that need
// the record itself (the dashboard's verified-victim count). The empty string
// means no victim is linked.
func (r *Resolver) VictimID(profile *models.Profile) string {
	if profile.Role != models.RoleUser {
		return ""
	}
	victimID, err := r.Victims.FindVictimIDForUser(profile.ID)
	if errors.Is(err, ErrNoVictim) {
		return ""
	}
	if err != nil {
		log.Printf("WARNING: victim lookup failed for user %s: %v", profile.ID, err)
		return ""
	}
	return victimID
}
