package scope_test

import (
	"errors"
	"testing"

	"nyayadhaar/backend/internal/lifecycle"
	"nyayadhaar/backend/internal/models"
	"nyayadhaar/backend/internal/scope"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type fakeDirectory struct {
	victimID string
	err      error
	calls    int
}

func (f *fakeDirectory) FindVictimIDForUser(userID string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.victimID, nil
}

// renderSQL applies a predicate to a dry-run query so the generated WHERE
// clause can be inspected without a database.
func renderSQL(t *testing.T, pred scope.Predicate) (string, []interface{}) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	tx := pred(db.Model(&models.Case{})).Find(&[]models.Case{})
	return tx.Statement.SQL.String(), tx.Statement.Vars
}

func officerProfile() *models.Profile {
	return &models.Profile{ID: "officer-1", Role: models.RoleDistrictOfficer}
}

func userProfile() *models.Profile {
	return &models.Profile{ID: "user-1", Role: models.RoleUser}
}

func TestFilterOfficerIsUnrestricted(t *testing.T) {
	r := scope.NewResolver(&fakeDirectory{victimID: "v-1"})

	for _, entity := range []lifecycle.Entity{lifecycle.EntityCase, lifecycle.EntityDisbursement, lifecycle.EntityGrievance} {
		sql, _ := renderSQL(t, r.Filter(officerProfile(), entity))
		assert.NotContains(t, sql, "victim_id =")
		assert.NotContains(t, sql, "user_id =")
		assert.NotContains(t, sql, "1 = 0")
	}
}

func TestFilterUserCasesScopedToVictim(t *testing.T) {
	dir := &fakeDirectory{victimID: "v-42"}
	r := scope.NewResolver(dir)

	sql, vars := renderSQL(t, r.Filter(userProfile(), lifecycle.EntityCase))
	assert.Contains(t, sql, "victim_id")
	assert.Contains(t, vars, "v-42")
}

func TestFilterUserGrievancesScopedToSelf(t *testing.T) {
	dir := &fakeDirectory{victimID: "v-42"}
	r := scope.NewResolver(dir)

	sql, vars := renderSQL(t, r.Filter(userProfile(), lifecycle.EntityGrievance))
	assert.Contains(t, sql, "user_id")
	assert.Contains(t, vars, "user-1")
	// The grievance predicate never needs the victim directory.
	assert.Zero(t, dir.calls)
}

// TestFilterUserWithoutVictim verifies the empty-set predicate, not an
// error, when no victim record is linked.
func TestFilterUserWithoutVictim(t *testing.T) {
	r := scope.NewResolver(&fakeDirectory{err: scope.ErrNoVictim})

	sql, _ := renderSQL(t, r.Filter(userProfile(), lifecycle.EntityCase))
	assert.Contains(t, sql, "1 = 0")
}

// TestFilterLookupFailureDegradesToEmpty verifies a broken victim lookup
// scopes to nothing instead of propagating the failure.
func TestFilterLookupFailureDegradesToEmpty(t *testing.T) {
	r := scope.NewResolver(&fakeDirectory{err: errors.New("directory down")})

	sql, _ := renderSQL(t, r.Filter(userProfile(), lifecycle.EntityDisbursement))
	assert.Contains(t, sql, "1 = 0")
}

func TestFilterUnknownEntityIsEmpty(t *testing.T) {
	r := scope.NewResolver(&fakeDirectory{victimID: "v-1"})

	sql, _ := renderSQL(t, r.Filter(userProfile(), lifecycle.Entity("ledger")))
	assert.Contains(t, sql, "1 = 0")
}

func TestVictimID(t *testing.T) {
	r := scope.NewResolver(&fakeDirectory{victimID: "v-7"})
	assert.Equal(t, "v-7", r.VictimID(userProfile()))

	// Officers resolve directly against storage, not through the directory.
	assert.Empty(t, r.VictimID(officerProfile()))

	r = scope.NewResolver(&fakeDirectory{err: scope.ErrNoVictim})
	assert.Empty(t, r.VictimID(userProfile()))

	r = scope.NewResolver(&fakeDirectory{err: errors.New("boom")})
	assert.Empty(t, r.VictimID(userProfile()))
}
